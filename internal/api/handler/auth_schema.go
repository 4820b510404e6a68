package handler

import "github.com/digiloka/marketplace-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerResponse struct {
	UserID string `json:"user_id"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// sessionResponse pairs a fresh token with the decoded claims so the client
// can adopt both without a second round trip.
type sessionResponse struct {
	Token string         `json:"token"`
	User  *domain.Claims `json:"user,omitempty"`
}

type switchRoleRequest struct {
	NewRole string `json:"new_role" validate:"required"`
}
