package session

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AdminEmail:           "admin",
		AdminPassword:        "123456",
		AdminBearer:          "admin_token",
		SessionCookie:        "helpdesk_session",
		SessionTTLMinutes:    60,
		RememberMeTTLMinutes: 10080,
	}
}

func TestIsAdminSentinel(t *testing.T) {
	manager, err := NewManager(nil, testAuthConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.True(t, manager.IsAdminSentinel("admin", "123456"))
	assert.False(t, manager.IsAdminSentinel("admin", "wrong"))
	assert.False(t, manager.IsAdminSentinel("alice@example.com", "123456"))
	assert.False(t, manager.IsAdminSentinel("", ""))
}

func TestAdminBearerAndCookieName(t *testing.T) {
	manager, err := NewManager(nil, testAuthConfig(), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "admin_token", manager.AdminBearer())
	assert.Equal(t, "helpdesk_session", manager.CookieName())
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenLifetimeReadsExpClaim(t *testing.T) {
	ttl, ok := tokenLifetime(signedToken(t, time.Now().Add(2*time.Hour)))

	require.True(t, ok)
	assert.InDelta(t, (2 * time.Hour).Seconds(), ttl.Seconds(), 5)
}

func TestTokenLifetimeExpiredToken(t *testing.T) {
	_, ok := tokenLifetime(signedToken(t, time.Now().Add(-time.Hour)))
	assert.False(t, ok)
}

func TestTokenLifetimeMalformedToken(t *testing.T) {
	_, ok := tokenLifetime("not-a-jwt")
	assert.False(t, ok)

	_, ok = tokenLifetime("")
	assert.False(t, ok)
}

func TestTokenLifetimeWithoutExpClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, ok := tokenLifetime(signed)
	assert.False(t, ok)
}
