package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "contact-keeper/pkg/errors"
)

// Scope discriminates access tokens from refresh tokens. A token is only
// accepted by operations expecting its scope, so a refresh token can never
// be replayed as an access token or vice versa.
type Scope string

const (
	ScopeAccess  Scope = "access_token"
	ScopeRefresh Scope = "refresh_token"
)

// Claims carries the subject email and the token scope on top of the
// registered JWT claim set.
type Claims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HMAC-signed access and refresh tokens.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess signs a short-lived access token for the given subject email.
func (m *Manager) IssueAccess(email string) (string, error) {
	return m.issue(email, ScopeAccess, m.accessTTL)
}

// IssueRefresh signs a longer-lived refresh token for the given subject email.
func (m *Manager) IssueRefresh(email string) (string, error) {
	return m.issue(email, ScopeRefresh, m.refreshTTL)
}

func (m *Manager) issue(email string, scope Scope, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", scope, err)
	}

	return signed, nil
}

// Decode verifies signature and expiry, then checks that the token carries
// the wanted scope before the subject may be trusted. Every failure surfaces
// as ErrInvalidToken; callers treat it as an authentication failure.
func (m *Manager) Decode(tokenString string, want Scope) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, appErrors.ErrInvalidToken
	}
	if claims.Scope != want {
		return nil, appErrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, appErrors.ErrInvalidToken
	}

	return claims, nil
}
