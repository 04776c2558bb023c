package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel represents the database model for Contact
type ContactModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName string    `gorm:"type:varchar(40)"`
	LastName  string    `gorm:"type:varchar(45)"`
	Email     string    `gorm:"type:varchar(50)"`
	BirthDate time.Time `gorm:"type:date;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Owner UserModel `gorm:"foreignKey:CreatedBy;references:ID"`
}

func (ContactModel) TableName() string {
	return "contacts"
}
