package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/digiloka/marketplace-api/internal/core/domain"
)

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	user, err := svc.Register(context.Background(), "alice", "Alice@Example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if !user.HasRole(domain.RoleBuyer) || user.ActiveRole != domain.RoleBuyer {
		t.Fatalf("new account should start as buyer, got roles=%v active=%s", user.Roles, user.ActiveRole)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	if _, err := svc.Register(context.Background(), "", "a@b.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	_, _ = svc.Register(context.Background(), "bob", "bob@example.com", "pass")
	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	if _, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if session.Claims.Username != "carol" {
		t.Fatalf("unexpected claims: %+v", session.Claims)
	}

	claims := &domain.Claims{}
	parsed, err := jwt.ParseWithClaims(session.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.ActiveRole != domain.RoleBuyer {
		t.Fatalf("expected active role buyer, got %q", claims.ActiveRole)
	}
	if claims.ExpiresAt == nil {
		t.Fatalf("token should carry an expiry")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	_, _ = svc.Register(context.Background(), "dave", "dave@example.com", "goodpass")
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIsNotDisclosed(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthService_ApplySeller(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	user, _ := svc.Register(context.Background(), "erin", "erin@example.com", "pass")

	session, err := svc.ApplySeller(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ApplySeller returned error: %v", err)
	}
	if !session.Claims.HasRole(domain.RoleSeller) {
		t.Fatalf("reissued claims should carry the seller role: %v", session.Claims.Roles)
	}
	if session.Claims.ActiveRole != domain.RoleBuyer {
		t.Fatalf("active role must not change on apply, got %q", session.Claims.ActiveRole)
	}

	if _, err := svc.ApplySeller(context.Background(), user.ID); err != domain.ErrAlreadySeller {
		t.Fatalf("expected ErrAlreadySeller on second apply, got %v", err)
	}
}

func TestAuthService_SwitchRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	user, _ := svc.Register(context.Background(), "frank", "frank@example.com", "pass")

	if _, err := svc.SwitchRole(context.Background(), user.ID, "admin"); err != domain.ErrInvalidRole {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := svc.SwitchRole(context.Background(), user.ID, domain.RoleSeller); err != domain.ErrRoleNotGranted {
		t.Fatalf("expected ErrRoleNotGranted before applying, got %v", err)
	}

	if _, err := svc.ApplySeller(context.Background(), user.ID); err != nil {
		t.Fatalf("ApplySeller failed: %v", err)
	}
	session, err := svc.SwitchRole(context.Background(), user.ID, domain.RoleSeller)
	if err != nil {
		t.Fatalf("SwitchRole failed: %v", err)
	}
	if session.Claims.ActiveRole != domain.RoleSeller {
		t.Fatalf("expected active role seller, got %q", session.Claims.ActiveRole)
	}
}

func TestAuthService_SetProfilePicture_ReissuesClaims(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret")

	user, _ := svc.Register(context.Background(), "gina", "gina@example.com", "pass")

	session, err := svc.SetProfilePicture(context.Background(), user.ID, "/uploads/gina.png")
	if err != nil {
		t.Fatalf("SetProfilePicture failed: %v", err)
	}
	if session.Claims.ProfilePicture != "/uploads/gina.png" {
		t.Fatalf("claims should carry the new picture, got %q", session.Claims.ProfilePicture)
	}
}
