package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/backend"
	"github.com/spec-kit/helpdesk-console/internal/render"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/stats"
	"github.com/spec-kit/helpdesk-console/internal/view"
)

// ProfileHandler serves the profile view.
type ProfileHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	renderer *view.Renderer
	logger   *zap.Logger
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(client *backend.Client, sessions *session.Manager, renderer *view.Renderer, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{backend: client, sessions: sessions, renderer: renderer, logger: logger}
}

// Profile GET /profile. Identity comes from the session snapshot; the
// counters and the activity feed are fetched independently and each
// degrades to a placeholder on failure.
func (h *ProfileHandler) Profile(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	now := time.Now()

	page := view.ProfilePage{
		Page:        chrome("Profile", sess, h.sessions.PopFlashes(c.Context(), sess.ID)),
		Email:       sess.User.Email,
		MemberSince: render.FormatFullDate(sess.User.CreatedAt),
	}

	list, err := h.backend.ListTickets(c.Context(), sess.Token)
	if err != nil {
		page.StatsError = placeholder(err)
	} else {
		page.Stats = stats.Summarize(list)
	}

	activities, err := h.backend.ListActivities(c.Context(), sess.Token, recentTicketLimit)
	if err != nil {
		page.ActivitiesError = placeholder(err)
	} else {
		page.Activities = render.ActivityViews(activities, now)
	}

	return h.renderer.Render(c, "profile", page)
}
