package contact

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainContact "contact-keeper/internal/domain/contact"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactRepo struct {
	contacts []*domainContact.Contact

	lastLimit  int
	lastOffset int
	lastFrom   time.Time
	lastTo     time.Time
}

func (r *fakeContactRepo) owned(ownerID uuid.UUID) []*domainContact.Contact {
	var out []*domainContact.Contact
	for _, c := range r.contacts {
		if c.CreatedBy == ownerID {
			out = append(out, c)
		}
	}
	return out
}

func (r *fakeContactRepo) List(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*domainContact.Contact, error) {
	r.lastLimit = limit
	r.lastOffset = offset

	owned := r.owned(ownerID)
	if offset >= len(owned) {
		return nil, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (r *fakeContactRepo) Get(_ context.Context, ownerID, contactID uuid.UUID) (*domainContact.Contact, error) {
	for _, c := range r.owned(ownerID) {
		if c.ID == contactID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, domainContact.ErrContactNotFound
}

func (r *fakeContactRepo) Create(_ context.Context, c *domainContact.Contact) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	r.contacts = append(r.contacts, c)
	return nil
}

func (r *fakeContactRepo) Update(_ context.Context, updated *domainContact.Contact) error {
	for i, c := range r.contacts {
		if c.ID == updated.ID && c.CreatedBy == updated.CreatedBy {
			updated.UpdatedAt = time.Now()
			copied := *updated
			r.contacts[i] = &copied
			return nil
		}
	}
	return domainContact.ErrContactNotFound
}

func (r *fakeContactRepo) Delete(_ context.Context, ownerID, contactID uuid.UUID) error {
	for i, c := range r.contacts {
		if c.ID == contactID && c.CreatedBy == ownerID {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return domainContact.ErrContactNotFound
}

func (r *fakeContactRepo) SearchByName(_ context.Context, ownerID uuid.UUID, query string) ([]*domainContact.Contact, error) {
	q := strings.ToLower(query)
	var out []*domainContact.Contact
	for _, c := range r.owned(ownerID) {
		if strings.Contains(strings.ToLower(c.FirstName), q) || strings.Contains(strings.ToLower(c.LastName), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) SearchByEmail(_ context.Context, ownerID uuid.UUID, query string) ([]*domainContact.Contact, error) {
	q := strings.ToLower(query)
	var out []*domainContact.Contact
	for _, c := range r.owned(ownerID) {
		if strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) BirthdaysBetween(_ context.Context, ownerID uuid.UUID, from, to time.Time) ([]*domainContact.Contact, error) {
	r.lastFrom = from
	r.lastTo = to

	var out []*domainContact.Contact
	for _, c := range r.owned(ownerID) {
		if !c.BirthDate.Before(from) && !c.BirthDate.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedContact(repo *fakeContactRepo, ownerID uuid.UUID, first, last, email string, birth time.Time) *domainContact.Contact {
	c := &domainContact.Contact{
		ID:        uuid.New(),
		FirstName: first,
		LastName:  last,
		Email:     email,
		BirthDate: birth,
		CreatedBy: ownerID,
	}
	repo.contacts = append(repo.contacts, c)
	return c
}

func TestListClampsLimitAndOffset(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	owner := uuid.New()

	_, err := svc.List(context.Background(), owner, 3, -5)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit, "limit below 10 clamps up")
	assert.Equal(t, 0, repo.lastOffset, "negative offset clamps to zero")

	_, err = svc.List(context.Background(), owner, 10000, 20)
	require.NoError(t, err)
	assert.Equal(t, 500, repo.lastLimit, "limit above 500 clamps down")
	assert.Equal(t, 20, repo.lastOffset)
}

func TestListScopedToOwner(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	userA := uuid.New()
	userB := uuid.New()

	seedContact(repo, userA, "Ann", "Lee", "ann@example.com", date(1990, 5, 1))
	seedContact(repo, userB, "Bob", "Roe", "bob@example.com", date(1985, 7, 2))

	contacts, err := svc.List(context.Background(), userA, 10, 0)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ann", contacts[0].FirstName)
}

func TestGetMissReturnsNotFound(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	assert.True(t, errors.Is(err, domainContact.ErrContactNotFound))
}

func TestGetDoesNotCrossOwners(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	userA := uuid.New()
	userB := uuid.New()

	c := seedContact(repo, userA, "Ann", "Lee", "ann@example.com", date(1990, 5, 1))

	_, err := svc.Get(context.Background(), userB, c.ID)
	assert.True(t, errors.Is(err, domainContact.ErrContactNotFound),
		"another user's contact must look like it does not exist")
}

func TestCreateAssignsOwner(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, &CreateRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@example.com",
		BirthDate: Date{date(1990, 5, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, owner, resp.CreatedBy)
	assert.NotEqual(t, uuid.Nil, resp.ID)
}

func TestEditMergesOnlyProvidedFields(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	owner := uuid.New()

	c := seedContact(repo, owner, "Ann", "Lee", "ann@example.com", date(1990, 5, 1))

	newLast := "Lively"
	resp, err := svc.Edit(context.Background(), owner, c.ID, &EditRequest{
		LastName: &newLast,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", resp.FirstName, "omitted field keeps its value")
	assert.Equal(t, "Lively", resp.LastName)
	assert.Equal(t, "ann@example.com", resp.Email)
	assert.Equal(t, date(1990, 5, 1), resp.BirthDate.Time)
}

func TestEditUnknownContact(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)

	first := "X"
	_, err := svc.Edit(context.Background(), uuid.New(), uuid.New(), &EditRequest{FirstName: &first})
	assert.True(t, errors.Is(err, domainContact.ErrContactNotFound))
}

func TestDeleteReturnsDeletedContact(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	owner := uuid.New()

	c := seedContact(repo, owner, "Ann", "Lee", "ann@example.com", date(1990, 5, 1))

	resp, err := svc.Delete(context.Background(), owner, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", resp.FirstName)
	assert.Empty(t, repo.contacts)

	_, err = svc.Delete(context.Background(), owner, c.ID)
	assert.True(t, errors.Is(err, domainContact.ErrContactNotFound))
}

func TestSearchEmptyQueryReturnsEmptyList(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	owner := uuid.New()

	seedContact(repo, owner, "Ann", "Lee", "ann@example.com", date(1990, 5, 1))

	byName, err := svc.SearchByName(context.Background(), owner, "")
	require.NoError(t, err)
	assert.Empty(t, byName)

	byMail, err := svc.SearchByEmail(context.Background(), owner, "")
	require.NoError(t, err)
	assert.Empty(t, byMail)
}

func TestSearchScopedToOwner(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	userA := uuid.New()
	userB := uuid.New()

	seedContact(repo, userA, "Ann", "Lee", "ann@example.com", date(1990, 5, 1))
	seedContact(repo, userB, "Anna", "Leeds", "anna@example.com", date(1992, 3, 9))

	contacts, err := svc.SearchByName(context.Background(), userA, "Lee")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "ann@example.com", contacts[0].Email)

	contacts, err = svc.SearchByEmail(context.Background(), userA, "ann")
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ann", contacts[0].FirstName)
}

func TestUpcomingBirthdaysWindow(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)
	}

	userA := uuid.New()
	userB := uuid.New()

	seedContact(repo, userA, "Ann", "Lee", "ann@example.com", date(2024, 6, 13))   // today+3
	seedContact(repo, userA, "Cara", "Day", "cara@example.com", date(2024, 6, 17)) // today+7, inclusive edge
	seedContact(repo, userA, "Dan", "Far", "dan@example.com", date(2024, 6, 18))   // past the horizon
	seedContact(repo, userB, "Bob", "Roe", "bob@example.com", date(2024, 6, 12))   // other owner

	contacts, err := svc.UpcomingBirthdays(context.Background(), userA)
	require.NoError(t, err)

	assert.Equal(t, date(2024, 6, 10), repo.lastFrom)
	assert.Equal(t, date(2024, 6, 17), repo.lastTo)

	require.Len(t, contacts, 2)
	names := []string{contacts[0].FirstName, contacts[1].FirstName}
	assert.ElementsMatch(t, []string{"Ann", "Cara"}, names)
}
