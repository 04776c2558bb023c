package contact

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an owned entity: every contact belongs to exactly one user and
// every read, write and search is scoped by CreatedBy.
type Contact struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	BirthDate time.Time
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch carries a partial update. Only non-nil fields overwrite the stored
// contact; the merge is an explicit per-field check.
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
	BirthDate *time.Time
}

// Apply merges the patch into c and reports whether anything changed.
func (p *Patch) Apply(c *Contact) bool {
	changed := false
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
		changed = true
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
		changed = true
	}
	if p.Email != nil {
		c.Email = *p.Email
		changed = true
	}
	if p.BirthDate != nil {
		c.BirthDate = *p.BirthDate
		changed = true
	}
	return changed
}
