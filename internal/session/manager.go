// Package session owns the server-side browser state: authenticated
// sessions, user preferences and transient flash messages, all kept in
// Redis. It also provides the guard middleware protecting console pages.
package session

import (
	"context"
	"encoding/json"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"
	prefsKeyPrefix   = "prefs:"

	// Flash messages outlive one redirect, not a browsing session.
	flashTTL = 10 * time.Minute
)

// Manager creates, loads and destroys sessions and owns the preference and
// flash stores.
type Manager struct {
	redis     *Redis
	cfg       config.AuthConfig
	adminHash []byte
	logger    *zap.Logger
}

// NewManager builds the manager. When no bcrypt hash is configured for the
// admin sentinel, the configured plaintext is hashed once here so every
// comparison still goes through bcrypt.
func NewManager(r *Redis, cfg config.AuthConfig, logger *zap.Logger) (*Manager, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		generated, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = generated
	}
	return &Manager{redis: r, cfg: cfg, adminHash: hash, logger: logger}, nil
}

// IsAdminSentinel reports whether the credential pair designates the
// administrator. Admin login never contacts the backend.
func (m *Manager) IsAdminSentinel(email, password string) bool {
	if email != m.cfg.AdminEmail {
		return false
	}
	return bcrypt.CompareHashAndPassword(m.adminHash, []byte(password)) == nil
}

// AdminBearer returns the fixed placeholder bearer the backend expects on
// admin endpoints.
func (m *Manager) AdminBearer() string {
	return m.cfg.AdminBearer
}

// CookieName returns the session cookie name.
func (m *Manager) CookieName() string {
	return m.cfg.SessionCookie
}

// Create stores a new session and returns it. The lifetime is the
// configured TTL for the remember-me choice, shortened to the backend
// token's expiry when the token carries a parseable exp claim.
func (m *Manager) Create(ctx context.Context, token string, user domain.User, admin, rememberMe bool) (*domain.Session, error) {
	sess := &domain.Session{
		ID:         uuid.NewString(),
		Token:      token,
		User:       user,
		Admin:      admin,
		RememberMe: rememberMe,
		CreatedAt:  time.Now(),
	}

	ttl := m.cfg.SessionTTL(rememberMe)
	if tokenTTL, ok := tokenLifetime(token); ok && tokenTTL < ttl {
		ttl = tokenTTL
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := m.redis.Client.Set(ctx, sessionKeyPrefix+sess.ID, payload, ttl).Err(); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	m.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.Bool("admin", admin),
		zap.Duration("ttl", ttl))
	return sess, nil
}

// Load fetches a session by ID. A missing or expired session is an
// unauthorized error, not an internal one.
func (m *Manager) Load(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, apperrors.NewUnauthorized("no session")
	}
	payload, err := m.redis.Client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		return nil, apperrors.NewUnauthorized("session expired or unknown")
	}
	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &sess, nil
}

// Destroy removes a session.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.redis.Client.Del(ctx, sessionKeyPrefix+id).Err()
}

// UpdateUser rewrites the cached user snapshot of an existing session,
// preserving its remaining lifetime.
func (m *Manager) UpdateUser(ctx context.Context, sess *domain.Session, user domain.User) error {
	sess.User = user
	payload, err := json.Marshal(sess)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	key := sessionKeyPrefix + sess.ID
	ttl, err := m.redis.Client.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = m.cfg.SessionTTL(sess.RememberMe)
	}
	if err := m.redis.Client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// PushFlash appends a transient notification for the session.
func (m *Manager) PushFlash(ctx context.Context, sessionID, message string) error {
	key := flashKeyPrefix + sessionID
	if err := m.redis.Client.RPush(ctx, key, message).Err(); err != nil {
		return err
	}
	return m.redis.Client.Expire(ctx, key, flashTTL).Err()
}

// PopFlashes drains and returns the pending notifications for the session.
func (m *Manager) PopFlashes(ctx context.Context, sessionID string) []string {
	key := flashKeyPrefix + sessionID
	messages, err := m.redis.Client.LRange(ctx, key, 0, -1).Result()
	if err != nil || len(messages) == 0 {
		return nil
	}
	_ = m.redis.Client.Del(ctx, key).Err()
	return messages
}

// Preferences loads the stored preference bag for a user, with defaults
// applied for absent keys.
func (m *Manager) Preferences(ctx context.Context, email string) domain.Preferences {
	stored, err := m.redis.Client.HGetAll(ctx, prefsKeyPrefix+email).Result()
	if err != nil {
		m.logger.Warn("preference load failed", zap.String("email", email), zap.Error(err))
		stored = nil
	}
	return domain.Preferences(stored).WithDefaults()
}

// SavePreferences merges the given keys into the stored preference bag.
func (m *Manager) SavePreferences(ctx context.Context, email string, prefs domain.Preferences) error {
	if len(prefs) == 0 {
		return nil
	}
	values := make(map[string]string, len(prefs))
	for key, val := range prefs {
		if _, known := domain.PreferenceDefaults[key]; !known {
			return apperrors.NewValidationError("unknown preference key", map[string]any{"key": key})
		}
		values[key] = val
	}
	return m.redis.Client.HSet(ctx, prefsKeyPrefix+email, values).Err()
}

// ClearPreferences deletes every stored preference for a user.
func (m *Manager) ClearPreferences(ctx context.Context, email string) error {
	return m.redis.Client.Del(ctx, prefsKeyPrefix+email).Err()
}

// tokenLifetime reads the exp claim of a backend-issued JWT without
// verifying its signature; the backend holds the secret and remains the
// verifier. A token without a usable exp claim yields ok=false.
func tokenLifetime(token string) (time.Duration, bool) {
	if token == "" {
		return 0, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	remaining := time.Until(exp.Time)
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}
