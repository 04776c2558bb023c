package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"contact-keeper/internal/domain/contact"
	"contact-keeper/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository implements the contact domain Repository interface.
// Every query carries a created_by predicate so contacts never leak across
// user boundaries.
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *DB) contact.Repository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*contact.Contact, error) {
	var dbModels []models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Limit(limit).
		Offset(offset).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return toContactEntities(dbModels), nil
}

func (r *ContactRepository) Get(ctx context.Context, ownerID, contactID uuid.UUID) (*contact.Contact, error) {
	var dbModel models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("created_by = ?", ownerID).
		First(&dbModel, "id = ?", contactID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, contact.ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return toContactEntity(&dbModel), nil
}

func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	dbModel := toContactModel(c)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	c.ID = dbModel.ID
	c.CreatedAt = dbModel.CreatedAt
	c.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	c.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.ContactModel{}).
		Where("id = ? AND created_by = ?", c.ID, c.CreatedBy).
		Updates(map[string]interface{}{
			"first_name": c.FirstName,
			"last_name":  c.LastName,
			"email":      c.Email,
			"birth_date": c.BirthDate,
			"updated_at": c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return contact.ErrContactNotFound
	}

	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, contactID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Delete(&models.ContactModel{}, "id = ?", contactID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return contact.ErrContactNotFound
	}

	return nil
}

func (r *ContactRepository) SearchByName(ctx context.Context, ownerID uuid.UUID, query string) ([]*contact.Contact, error) {
	pattern := "%" + query + "%"

	var dbModels []models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts by name: %w", err)
	}

	return toContactEntities(dbModels), nil
}

func (r *ContactRepository) SearchByEmail(ctx context.Context, ownerID uuid.UUID, query string) ([]*contact.Contact, error) {
	var dbModels []models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Where("email ILIKE ?", "%"+query+"%").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts by email: %w", err)
	}

	return toContactEntities(dbModels), nil
}

func (r *ContactRepository) BirthdaysBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*contact.Contact, error) {
	var dbModels []models.ContactModel
	err := r.db.DB.WithContext(ctx).
		Where("created_by = ?", ownerID).
		Where("birth_date BETWEEN ? AND ?", from, to).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}

	return toContactEntities(dbModels), nil
}

func toContactModel(c *contact.Contact) *models.ContactModel {
	return &models.ContactModel{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		BirthDate: c.BirthDate,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toContactEntity(m *models.ContactModel) *contact.Contact {
	return &contact.Contact{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		BirthDate: m.BirthDate,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toContactEntities(dbModels []models.ContactModel) []*contact.Contact {
	contacts := make([]*contact.Contact, len(dbModels))
	for i := range dbModels {
		contacts[i] = toContactEntity(&dbModels[i])
	}
	return contacts
}
