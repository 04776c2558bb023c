package contact

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainContact "contact-keeper/internal/domain/contact"
)

// Date is a calendar date serialized as "2006-01-02", matching the wire
// format of the previous deployment.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type CreateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=40"`
	LastName  string `json:"last_name" validate:"required,max=45"`
	Email     string `json:"email" validate:"required,email,max=50"`
	BirthDate Date   `json:"birth_date" validate:"required"`
}

// EditRequest is a partial update; only non-nil fields overwrite.
type EditRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=40"`
	LastName  *string `json:"last_name" validate:"omitempty,max=45"`
	Email     *string `json:"email" validate:"omitempty,email,max=50"`
	BirthDate *Date   `json:"birth_date"`
}

type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	BirthDate Date      `json:"birth_date"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"modified_at"`
}

func ToContactResponse(c *domainContact.Contact) *ContactResponse {
	if c == nil {
		return nil
	}
	return &ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		BirthDate: Date{c.BirthDate},
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToContactResponses(contacts []*domainContact.Contact) []*ContactResponse {
	out := make([]*ContactResponse, len(contacts))
	for i, c := range contacts {
		out[i] = ToContactResponse(c)
	}
	return out
}
