package domain

import (
	"errors"
	"time"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrRoleNotGranted = errors.New("role not granted")
var ErrAlreadySeller = errors.New("seller role already granted")

// User models a marketplace account. Every account starts as a buyer; the
// seller role is appended on application, and ActiveRole selects which hat
// the current session wears. ActiveRole is always a member of Roles.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Roles          []string  `json:"roles"`
	ActiveRole     string    `json:"active_role"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	BannerPicture  string    `json:"banner_picture,omitempty"`
	Cart           []string  `json:"cart,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasRole reports whether the user has been granted the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// InCart reports whether the product is already a cart line.
func (u *User) InCart(productID string) bool {
	for _, id := range u.Cart {
		if id == productID {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one the system knows.
func ValidRole(role string) bool {
	return role == RoleBuyer || role == RoleSeller
}
