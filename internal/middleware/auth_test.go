package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	domainUser "contact-keeper/internal/domain/user"
	"contact-keeper/internal/logger"
	"contact-keeper/pkg/token"

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

type stubUserRepo struct {
	users map[string]*domainUser.User
}

func (r *stubUserRepo) Create(context.Context, *domainUser.User) error { return nil }

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetByID(context.Context, uuid.UUID) (*domainUser.User, error) {
	return nil, domainUser.ErrUserNotFound
}
func (r *stubUserRepo) UpdateOTP(context.Context, uuid.UUID, *string) error   { return nil }
func (r *stubUserRepo) SetActive(context.Context, uuid.UUID, bool) error      { return nil }
func (r *stubUserRepo) SetAvatarURL(context.Context, uuid.UUID, string) error { return nil }
func (r *stubUserRepo) Delete(context.Context, uuid.UUID) error               { return nil }

func newAuthTestRouter(t *testing.T) (*gin.Engine, *token.Manager) {
	t.Helper()

	repo := &stubUserRepo{users: map[string]*domainUser.User{
		"alice@example.com": {ID: uuid.New(), Email: "alice@example.com", IsActive: true},
	}}
	tokens := token.NewManager("test-secret", 30*time.Minute, 1000*time.Minute)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokens, repo), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": u.Email})
	})

	return router, tokens
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsRefreshScope(t *testing.T) {
	router, tokens := newAuthTestRouter(t)

	refresh, err := tokens.IssueRefresh("alice@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code,
		"refresh token must not authenticate API calls")
}

func TestAuthMiddlewareRejectsUnknownSubject(t *testing.T) {
	router, tokens := newAuthTestRouter(t)

	access, err := tokens.IssueAccess("ghost@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	router, tokens := newAuthTestRouter(t)

	access, err := tokens.IssueAccess("alice@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestFixedWindowMiddlewareReturns429(t *testing.T) {
	limiter := NewFixedWindowLimiter(1, time.Minute)

	router := gin.New()
	router.GET("/ping", FixedWindowMiddleware(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
