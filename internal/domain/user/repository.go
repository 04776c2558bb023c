package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user persistence operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)

	// UpdateOTP replaces the user's pending one-time password. nil clears it.
	UpdateOTP(ctx context.Context, userID uuid.UUID, otp *string) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	SetAvatarURL(ctx context.Context, userID uuid.UUID, url string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
