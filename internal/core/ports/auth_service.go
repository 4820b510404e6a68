package ports

import (
	"context"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

// Session pairs a freshly signed token with its decoded claims so handlers
// can return both to the client in one response.
type Session struct {
	Token  string
	Claims *domain.Claims
}

// AuthService covers account lifecycle and everything that reissues claims.
// Any operation that mutates a field embedded in the token returns a new
// Session; the old token stays valid until it expires.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	ApplySeller(ctx context.Context, userID string) (*Session, error)
	SwitchRole(ctx context.Context, userID, newRole string) (*Session, error)
	SetProfilePicture(ctx context.Context, userID, url string) (*Session, error)
	SetBannerPicture(ctx context.Context, userID, url string) (*Session, error)
}
