package storage

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"time"
)

// objectKey builds a collision-avoiding object name: the uploader's ID plus
// a millisecond timestamp and a random suffix, keeping the original file
// extension. Collisions are avoided, not impossible; nothing retries.
func objectKey(ownerID, filename string) string {
	var b [4]byte
	suffix := uint32(time.Now().UnixNano())
	if _, err := rand.Read(b[:]); err == nil {
		suffix = binary.BigEndian.Uint32(b[:])
	}
	return fmt.Sprintf("%s-%d-%09d%s", ownerID, time.Now().UnixMilli(), suffix%1e9, filepath.Ext(filename))
}
