package identity

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=1"`
}

// RefreshTokenRequest represents a token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterUserRequest represents a request to create a user within an agency
type RegisterUserRequest struct {
	Username    string        `json:"username" binding:"required,min=1,max=100"`
	Password    string        `json:"password" binding:"required,min=8,max=100"`
	DisplayName string        `json:"display_name" binding:"max=200"`
	Role        identity.Role `json:"role" binding:"required"`
}

// UserResponse represents a user in responses
type UserResponse struct {
	ID          uuid.UUID     `json:"id"`
	AgencyID    uuid.UUID     `json:"agency_id"`
	Username    string        `json:"username"`
	DisplayName string        `json:"display_name,omitempty"`
	Role        identity.Role `json:"role"`
	Active      bool          `json:"active"`
	LastLoginAt *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		AgencyID:    u.AgencyID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
