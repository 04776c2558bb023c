package auth

import (
	"time"

	"github.com/google/uuid"

	domainUser "contact-keeper/internal/domain/user"
)

type SignupRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Passwd string `json:"passwd" validate:"required"`
}

type LoginRequest struct {
	Username string `form:"username" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// TokenResponse mirrors the OAuth2-style token body issued on login and
// refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserResponse is the externally visible user view. Password material and
// the pending OTP are never echoed.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"modified_at"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
