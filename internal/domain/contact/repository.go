package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for contact persistence operations.
// Every method takes the owning user's ID and must conjunct it into the
// query so one user can never see another's contacts.
type Repository interface {
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Contact, error)
	Get(ctx context.Context, ownerID, contactID uuid.UUID) (*Contact, error)
	Create(ctx context.Context, c *Contact) error
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, ownerID, contactID uuid.UUID) error

	SearchByName(ctx context.Context, ownerID uuid.UUID, query string) ([]*Contact, error)
	SearchByEmail(ctx context.Context, ownerID uuid.UUID, query string) ([]*Contact, error)
	// BirthdaysBetween returns contacts whose birth date falls inside the
	// inclusive [from, to] date range.
	BirthdaysBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*Contact, error)
}
