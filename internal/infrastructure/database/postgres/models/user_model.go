package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswdHash string    `gorm:"type:varchar(255);not null"`
	Salt       string    `gorm:"type:varchar(65);not null"`
	IsActive   bool      `gorm:"default:false;not null"`
	OTP        *string   `gorm:"type:varchar(6)"`
	AvatarURL  *string   `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
