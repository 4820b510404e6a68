package ports

import (
	"context"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence operations on user documents.
// Mutators return the updated document so callers can reissue claims
// without a second read.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	AddRole(ctx context.Context, id, role string) (*domain.User, error)
	SetActiveRole(ctx context.Context, id, role string) (*domain.User, error)
	SetProfilePicture(ctx context.Context, id, url string) (*domain.User, error)
	SetBannerPicture(ctx context.Context, id, url string) (*domain.User, error)

	// PushCart appends productID to the cart array. Uniqueness is the
	// caller's job; the store does not enforce it.
	PushCart(ctx context.Context, id, productID string) error
	// PullCart removes productID from the cart array. Removing an absent
	// entry is not an error.
	PullCart(ctx context.Context, id, productID string) error
	ClearCart(ctx context.Context, id string) error

	// UsernamesByIDs resolves user IDs to usernames for cross-store joins.
	UsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}
