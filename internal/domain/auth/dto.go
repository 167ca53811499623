package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/domain/user"
)

// RegisterRequest for POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest for POST /auth/refresh and /auth/logout
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse returned after login/register
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	ExpiresIn    int          `json:"expiresIn"` // seconds until access token expires
	User         UserResponse `json:"user"`
}

// UserResponse represents user in API response
type UserResponse struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	Email                  string    `json:"email"`
	TrustScore             int       `json:"trustScore"`
	TotalSessionsCompleted int       `json:"totalSessionsCompleted"`
	Status                 string    `json:"status"`
	CreatedAt              string    `json:"createdAt"`
}

// NewUserResponse creates UserResponse from a user entity
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:                     u.ID,
		Name:                   u.Name,
		Email:                  u.Email,
		TrustScore:             u.TrustScore,
		TotalSessionsCompleted: u.TotalSessionsCompleted,
		Status:                 string(u.Status),
		CreatedAt:              u.CreatedAt.Format(time.RFC3339),
	}
}
