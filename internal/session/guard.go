package session

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

const sessionLocalsKey = "console_session"

// Loader resolves a session ID to a session. *Manager implements it; tests
// substitute fakes.
type Loader interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
}

// Guard protects console pages. A request without a valid session is
// redirected to the landing view before any data is fetched; no partial
// render happens.
type Guard struct {
	sessions Loader
	cookie   string
}

// NewGuard constructs the middleware.
func NewGuard(sessions Loader, cookieName string) *Guard {
	return &Guard{sessions: sessions, cookie: cookieName}
}

// RequireUser admits authenticated end-users. Admin sessions take
// precedence over the user check and are forwarded to the admin console.
func (g *Guard) RequireUser(c *fiber.Ctx) error {
	sess, err := g.sessions.Load(c.Context(), c.Cookies(g.cookie))
	if err != nil {
		return c.Redirect("/", fiber.StatusFound)
	}
	if sess.Admin {
		return c.Redirect("/admin", fiber.StatusFound)
	}
	c.Locals(sessionLocalsKey, sess)
	return c.Next()
}

// RequireAdmin admits only administrator sessions.
func (g *Guard) RequireAdmin(c *fiber.Ctx) error {
	sess, err := g.sessions.Load(c.Context(), c.Cookies(g.cookie))
	if err != nil || !sess.Admin {
		return c.Redirect("/", fiber.StatusFound)
	}
	c.Locals(sessionLocalsKey, sess)
	return c.Next()
}

// Current returns the session when one exists, without enforcing it. Used
// by the landing page to forward already-authenticated visitors.
func (g *Guard) Current(c *fiber.Ctx) (*domain.Session, bool) {
	sess, err := g.sessions.Load(c.Context(), c.Cookies(g.cookie))
	if err != nil {
		return nil, false
	}
	return sess, true
}

// FromContext retrieves the session stored by the guard.
func FromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionLocalsKey)
	if val == nil {
		return nil, false
	}
	sess, ok := val.(*domain.Session)
	return sess, ok
}
