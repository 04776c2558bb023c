package contact

import (
	"context"
	"time"

	domainContact "contact-keeper/internal/domain/contact"
	appErrors "contact-keeper/pkg/errors"
	"contact-keeper/pkg/utils"

	"github.com/google/uuid"
)

const (
	minLimit = 10
	maxLimit = 500

	birthdayHorizonDays = 7
)

// Service implements contact use cases. Every operation is scoped to the
// owning user's ID.
type Service struct {
	repo domainContact.Repository
	now  func() time.Time
}

// NewService creates a new contact service
func NewService(repo domainContact.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// List returns a page of the owner's contacts. The limit is clamped to
// [10,500] and a negative offset is treated as zero.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*ContactResponse, error) {
	if limit < minLimit {
		limit = minLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	contacts, err := s.repo.List(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	return ToContactResponses(contacts), nil
}

func (s *Service) Get(ctx context.Context, ownerID, contactID uuid.UUID) (*ContactResponse, error) {
	c, err := s.repo.Get(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	return ToContactResponse(c), nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateRequest) (*ContactResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	c := &domainContact.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: req.BirthDate.Time,
		CreatedBy: ownerID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	return ToContactResponse(c), nil
}

// Edit applies a partial update: only the request's non-nil fields
// overwrite the stored contact.
func (s *Service) Edit(ctx context.Context, ownerID, contactID uuid.UUID, req *EditRequest) (*ContactResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	c, err := s.repo.Get(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	patch := &domainContact.Patch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.BirthDate != nil {
		patch.BirthDate = &req.BirthDate.Time
	}

	patch.Apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return ToContactResponse(c), nil
}

// Delete removes the contact and returns its last state.
func (s *Service) Delete(ctx context.Context, ownerID, contactID uuid.UUID) (*ContactResponse, error) {
	c, err := s.repo.Get(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, ownerID, contactID); err != nil {
		return nil, err
	}

	return ToContactResponse(c), nil
}

func (s *Service) SearchByName(ctx context.Context, ownerID uuid.UUID, query string) ([]*ContactResponse, error) {
	if query == "" {
		return []*ContactResponse{}, nil
	}

	contacts, err := s.repo.SearchByName(ctx, ownerID, query)
	if err != nil {
		return nil, err
	}

	return ToContactResponses(contacts), nil
}

func (s *Service) SearchByEmail(ctx context.Context, ownerID uuid.UUID, query string) ([]*ContactResponse, error) {
	if query == "" {
		return []*ContactResponse{}, nil
	}

	contacts, err := s.repo.SearchByEmail(ctx, ownerID, query)
	if err != nil {
		return nil, err
	}

	return ToContactResponses(contacts), nil
}

// UpcomingBirthdays returns the owner's contacts with birthdays in the
// inclusive range [today, today+7d].
func (s *Service) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID) ([]*ContactResponse, error) {
	year, month, day := s.now().Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	horizon := today.AddDate(0, 0, birthdayHorizonDays)

	contacts, err := s.repo.BirthdaysBetween(ctx, ownerID, today, horizon)
	if err != nil {
		return nil, err
	}

	return ToContactResponses(contacts), nil
}
