package dto

import "agrostock/internal/domain/auth"

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest rotates the account password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// AuthResponse carries the issued token and the account it belongs to.
type AuthResponse struct {
	Token     string     `json:"token"`
	TokenType string     `json:"tokenType"`
	ExpiresIn int        `json:"expiresIn"`
	User      *auth.User `json:"user"`
}

// NewAuthResponse assembles the login/register payload.
func NewAuthResponse(user *auth.User, pair *auth.TokenPair) AuthResponse {
	return AuthResponse{
		Token:     pair.Token,
		TokenType: "Bearer",
		ExpiresIn: pair.ExpiresIn,
		User:      user,
	}
}
