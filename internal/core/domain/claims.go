package domain

import "github.com/golang-jwt/jwt/v5"

// Claims is the signed session payload ("claims bundle"). It embeds mutable
// profile fields on purpose: the token is a capability that stays valid
// until expiry or reissue, so role and picture changes only take effect once
// the client adopts the reissued token. Subject carries the user ID.
type Claims struct {
	Username       string   `json:"username"`
	Roles          []string `json:"roles"`
	ActiveRole     string   `json:"active_role"`
	ProfilePicture string   `json:"profile_picture,omitempty"`
	BannerPicture  string   `json:"banner_picture,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claims carry the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
