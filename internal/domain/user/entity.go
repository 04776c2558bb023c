package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record. A user is created inactive on signup and
// becomes active once the emailed OTP is confirmed.
type User struct {
	ID         uuid.UUID
	Email      string
	PasswdHash string
	Salt       string
	IsActive   bool
	OTP        *string
	AvatarURL  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
