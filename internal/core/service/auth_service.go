package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/digiloka/marketplace-api/internal/core/domain"
	"github.com/digiloka/marketplace-api/internal/core/ports"
)

// tokenTTL is fixed: a session is valid for one hour or until the client
// adopts a reissued token, whichever comes first.
const tokenTTL = time.Hour

// AuthService implements registration, login, role management, and profile
// media updates. Every mutation of a claims-embedded field reissues the
// token.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
}

func NewAuthService(users ports.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleBuyer},
		ActiveRole:   domain.RoleBuyer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Do not reveal whether the email exists.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// ApplySeller grants the seller role. The active role is untouched; the
// client switches explicitly once it holds the reissued token.
func (s *AuthService) ApplySeller(ctx context.Context, userID string) (*ports.Session, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasRole(domain.RoleSeller) {
		return nil, domain.ErrAlreadySeller
	}

	updated, err := s.users.AddRole(ctx, userID, domain.RoleSeller)
	if err != nil {
		return nil, err
	}
	return s.issueSession(updated)
}

func (s *AuthService) SwitchRole(ctx context.Context, userID, newRole string) (*ports.Session, error) {
	if !domain.ValidRole(newRole) {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasRole(newRole) {
		return nil, domain.ErrRoleNotGranted
	}

	updated, err := s.users.SetActiveRole(ctx, userID, newRole)
	if err != nil {
		return nil, err
	}
	return s.issueSession(updated)
}

func (s *AuthService) SetProfilePicture(ctx context.Context, userID, url string) (*ports.Session, error) {
	updated, err := s.users.SetProfilePicture(ctx, userID, url)
	if err != nil {
		return nil, err
	}
	return s.issueSession(updated)
}

func (s *AuthService) SetBannerPicture(ctx context.Context, userID, url string) (*ports.Session, error) {
	updated, err := s.users.SetBannerPicture(ctx, userID, url)
	if err != nil {
		return nil, err
	}
	return s.issueSession(updated)
}

func (s *AuthService) issueSession(user *domain.User) (*ports.Session, error) {
	now := time.Now()
	claims := &domain.Claims{
		Username:       user.Username,
		Roles:          user.Roles,
		ActiveRole:     user.ActiveRole,
		ProfilePicture: user.ProfilePicture,
		BannerPicture:  user.BannerPicture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, Claims: claims}, nil
}
