package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	domainContact "contact-keeper/internal/domain/contact"
	domainUser "contact-keeper/internal/domain/user"
	"contact-keeper/internal/logger"
	"contact-keeper/internal/usecase/contact"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("production"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type memContactRepo struct {
	contacts map[uuid.UUID]*domainContact.Contact
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{contacts: make(map[uuid.UUID]*domainContact.Contact)}
}

func (r *memContactRepo) List(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]*domainContact.Contact, error) {
	var out []*domainContact.Contact
	for _, c := range r.contacts {
		if c.CreatedBy == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContactRepo) Get(_ context.Context, ownerID, contactID uuid.UUID) (*domainContact.Contact, error) {
	c, ok := r.contacts[contactID]
	if !ok || c.CreatedBy != ownerID {
		return nil, domainContact.ErrContactNotFound
	}
	return c, nil
}

func (r *memContactRepo) Create(_ context.Context, c *domainContact.Contact) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.contacts[c.ID] = c
	return nil
}

func (r *memContactRepo) Update(_ context.Context, c *domainContact.Contact) error {
	r.contacts[c.ID] = c
	return nil
}

func (r *memContactRepo) Delete(_ context.Context, ownerID, contactID uuid.UUID) error {
	c, ok := r.contacts[contactID]
	if !ok || c.CreatedBy != ownerID {
		return domainContact.ErrContactNotFound
	}
	delete(r.contacts, contactID)
	return nil
}

func (r *memContactRepo) SearchByName(_ context.Context, ownerID uuid.UUID, query string) ([]*domainContact.Contact, error) {
	return r.List(context.Background(), ownerID, 0, 0)
}

func (r *memContactRepo) SearchByEmail(_ context.Context, ownerID uuid.UUID, query string) ([]*domainContact.Contact, error) {
	return r.List(context.Background(), ownerID, 0, 0)
}

func (r *memContactRepo) BirthdaysBetween(_ context.Context, ownerID uuid.UUID, from, to time.Time) ([]*domainContact.Contact, error) {
	return r.List(context.Background(), ownerID, 0, 0)
}

// injectUser bypasses token auth so the handler tests exercise routing and
// response shaping in isolation.
func injectUser(u *domainUser.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", u)
		c.Next()
	}
}

func newContactTestRouter(repo *memContactRepo, u *domainUser.User) *gin.Engine {
	router := gin.New()
	h := NewContactHandler(contact.NewService(repo))
	group := router.Group("/contact", injectUser(u))
	h.RegisterRoutes(group)
	return router
}

func testUser() *domainUser.User {
	return &domainUser.User{ID: uuid.New(), Email: "owner@example.com", IsActive: true}
}

func TestContactGetMissReturnsStructured404(t *testing.T) {
	router := newContactTestRouter(newMemContactRepo(), testUser())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contact/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "contact not found", body["detail"])
}

func TestContactGetRejectsMalformedID(t *testing.T) {
	router := newContactTestRouter(newMemContactRepo(), testUser())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contact/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactAddReturns201WithBody(t *testing.T) {
	repo := newMemContactRepo()
	router := newContactTestRouter(repo, testUser())

	payload := `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","birth_date":"1815-12-10"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact/add", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp contact.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ada", resp.FirstName)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Len(t, repo.contacts, 1)
}

func TestContactAddRejectsMissingFields(t *testing.T) {
	router := newContactTestRouter(newMemContactRepo(), testUser())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact/add", bytes.NewBufferString(`{"first_name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactEditReturns202(t *testing.T) {
	repo := newMemContactRepo()
	owner := testUser()
	existing := &domainContact.Contact{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		BirthDate: time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
		CreatedBy: owner.ID,
	}
	repo.contacts[existing.ID] = existing

	router := newContactTestRouter(repo, owner)

	w := httptest.NewRecorder()
	url := fmt.Sprintf("/contact/%s/edit", existing.ID)
	req := httptest.NewRequest(http.MethodPatch, url, bytes.NewBufferString(`{"first_name":"Augusta"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var resp contact.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Augusta", resp.FirstName)
	assert.Equal(t, "Lovelace", resp.LastName, "unset fields keep their values")
}

func TestContactDeleteReturnsRemovedContact(t *testing.T) {
	repo := newMemContactRepo()
	owner := testUser()
	existing := &domainContact.Contact{
		ID:        uuid.New(),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		BirthDate: time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
		CreatedBy: owner.ID,
	}
	repo.contacts[existing.ID] = existing

	router := newContactTestRouter(repo, owner)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/contact/%s/delete", existing.ID), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp contact.ContactResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Empty(t, repo.contacts)
}

func TestContactListRejectsNonIntegerLimit(t *testing.T) {
	router := newContactTestRouter(newMemContactRepo(), testUser())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/contact/?limit=abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
