package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/backend"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/tickets"
	"github.com/spec-kit/helpdesk-console/internal/view"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

const minPasswordLength = 6

// AuthHandler serves the landing and auth screens and the login, signup and
// logout actions.
type AuthHandler struct {
	backend   *backend.Client
	sessions  *session.Manager
	guard     *session.Guard
	snapshots *tickets.Store
	renderer  *view.Renderer
	logger    *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(client *backend.Client, sessions *session.Manager, guard *session.Guard, snapshots *tickets.Store, renderer *view.Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{backend: client, sessions: sessions, guard: guard, snapshots: snapshots, renderer: renderer, logger: logger}
}

// Landing GET /. Already-authenticated visitors are forwarded straight to
// their console, admin first.
func (h *AuthHandler) Landing(c *fiber.Ctx) error {
	if sess, ok := h.guard.Current(c); ok {
		if sess.Admin {
			return c.Redirect("/admin", fiber.StatusFound)
		}
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return h.renderer.Render(c, "landing", view.Page{Title: "Welcome"})
}

// LoginPage GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if sess, ok := h.guard.Current(c); ok {
		if sess.Admin {
			return c.Redirect("/admin", fiber.StatusFound)
		}
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return h.renderer.Render(c, "auth", view.AuthPage{Page: view.Page{Title: "Sign In"}})
}

// Login POST /auth/login. The admin sentinel credential pair elevates to an
// admin session without contacting the backend.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return h.authError(c, req.Email, "invalid login payload")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return h.authError(c, email, "email and password are required")
	}

	if h.sessions.IsAdminSentinel(email, req.Password) {
		sess, err := h.sessions.Create(c.Context(), "", domain.User{Name: "Administrator"}, true, req.Remember())
		if err != nil {
			return err
		}
		h.setSessionCookie(c, sess, req.Remember())
		h.logger.Info("admin login", zap.String("session_id", sess.ID))
		return c.Redirect("/admin", fiber.StatusFound)
	}

	token, user, err := h.backend.Login(c.Context(), email, req.Password)
	if err != nil {
		return h.authError(c, email, apperrors.ToDomainError(err).Message)
	}

	sess, err := h.sessions.Create(c.Context(), token, user, false, req.Remember())
	if err != nil {
		return err
	}
	h.setSessionCookie(c, sess, req.Remember())
	return c.Redirect("/dashboard", fiber.StatusFound)
}

// Signup POST /auth/signup. A fresh account is logged straight in, exactly
// like login.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return h.authError(c, req.Email, "invalid signup payload")
	}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" {
		return h.authError(c, email, "name and email are required")
	}
	if len(req.Password) < minPasswordLength {
		return h.authError(c, email, "password must be at least 6 characters long")
	}

	token, user, err := h.backend.Signup(c.Context(), name, email, req.Password)
	if err != nil {
		return h.authError(c, email, apperrors.ToDomainError(err).Message)
	}

	sess, err := h.sessions.Create(c.Context(), token, user, false, false)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, sess, false)
	return c.Redirect("/dashboard", fiber.StatusFound)
}

// Logout POST /logout destroys the session from any page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	cookie := c.Cookies(h.sessions.CookieName())
	if cookie != "" {
		if err := h.sessions.Destroy(c.Context(), cookie); err != nil {
			h.logger.Warn("session destroy failed", zap.Error(err))
		}
		h.snapshots.Drop(cookie)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.sessions.CookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/", fiber.StatusFound)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, sess *domain.Session, rememberMe bool) {
	cookie := &fiber.Cookie{
		Name:     h.sessions.CookieName(),
		Value:    sess.ID,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if rememberMe {
		cookie.Expires = time.Now().Add(30 * 24 * time.Hour)
	}
	c.Cookie(cookie)
}

func (h *AuthHandler) authError(c *fiber.Ctx, email, message string) error {
	c.Status(fiber.StatusUnauthorized)
	return h.renderer.Render(c, "auth", view.AuthPage{
		Page:  view.Page{Title: "Sign In"},
		Error: message,
		Email: email,
	})
}
