package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/backend"
	"github.com/spec-kit/helpdesk-console/internal/render"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/stats"
	"github.com/spec-kit/helpdesk-console/internal/tickets"
	"github.com/spec-kit/helpdesk-console/internal/view"
)

const recentTicketLimit = 5

// DashboardHandler serves the user dashboard.
type DashboardHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	renderer *view.Renderer
	logger   *zap.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(client *backend.Client, sessions *session.Manager, renderer *view.Renderer, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{backend: client, sessions: sessions, renderer: renderer, logger: logger}
}

// Dashboard GET /dashboard. The ticket and activity sections load
// independently; a failure in one leaves the other intact.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	now := time.Now()

	page := view.DashboardPage{
		Page: chrome("Dashboard", sess, h.sessions.PopFlashes(c.Context(), sess.ID)),
	}

	list, err := h.backend.ListTickets(c.Context(), sess.Token)
	if err != nil {
		page.TicketsError = placeholder(err)
	} else {
		page.Stats = stats.Summarize(list)
		recent := tickets.Sort(list, tickets.SortCreatedDesc)
		if len(recent) > recentTicketLimit {
			recent = recent[:recentTicketLimit]
		}
		page.Tickets = render.TicketViews(recent, now)
	}

	activities, err := h.backend.ListActivities(c.Context(), sess.Token, recentTicketLimit)
	if err != nil {
		page.ActivitiesError = placeholder(err)
	} else {
		page.Activities = render.ActivityViews(activities, now)
	}

	return h.renderer.Render(c, "dashboard", page)
}
