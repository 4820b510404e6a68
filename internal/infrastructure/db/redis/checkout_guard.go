package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 24 * time.Hour

// CheckoutGuard provides checkout idempotency checks backed by Redis.
// Key format: checkout:<buyer_id>:<idempotency_key>
type CheckoutGuard struct {
	client *redis.Client
}

// NewCheckoutGuard creates a CheckoutGuard wrapping the given Redis client.
func NewCheckoutGuard(client *redis.Client) *CheckoutGuard {
	return &CheckoutGuard{client: client}
}

// IsDuplicate reports whether this buyer already checked out under key.
func (g *CheckoutGuard) IsDuplicate(ctx context.Context, buyerID, key string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(buyerID, key)).Result()
	if err != nil {
		return false, fmt.Errorf("checkout guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records a completed checkout under key (expires after guardTTL).
func (g *CheckoutGuard) Mark(ctx context.Context, buyerID, key string) error {
	return g.client.Set(ctx, g.key(buyerID, key), "1", guardTTL).Err()
}

func (g *CheckoutGuard) key(buyerID, key string) string {
	return fmt.Sprintf("checkout:%s:%s", buyerID, key)
}
