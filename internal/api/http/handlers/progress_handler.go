package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/backend"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/render"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/stats"
	"github.com/spec-kit/helpdesk-console/internal/tickets"
	"github.com/spec-kit/helpdesk-console/internal/view"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

// ProgressHandler serves the active-tickets view and the status transitions
// taken from it.
type ProgressHandler struct {
	backend    *backend.Client
	sessions   *session.Manager
	store      *tickets.Store
	dispatcher events.Dispatcher
	renderer   *view.Renderer
	logger     *zap.Logger
}

// NewProgressHandler constructs the handler.
func NewProgressHandler(client *backend.Client, sessions *session.Manager, store *tickets.Store, dispatcher events.Dispatcher, renderer *view.Renderer, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{backend: client, sessions: sessions, store: store, dispatcher: dispatcher, renderer: renderer, logger: logger}
}

// Progress GET /progress. Tickets are re-fetched on every load; the filter
// and sort pipeline then runs over the fresh snapshot.
func (h *ProgressHandler) Progress(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	filters := view.TicketFilters{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Sort:     string(tickets.ParseSortKey(c.Query("sort"))),
	}

	page := view.ProgressPage{
		Page:       chrome("In Progress", sess, h.sessions.PopFlashes(c.Context(), sess.ID)),
		Filters:    filters,
		Categories: domain.Categories,
		Statuses:   domain.Statuses(),
		Priorities: domain.Priorities(),
	}

	list, err := h.backend.ListTickets(c.Context(), sess.Token)
	if err != nil {
		page.LoadError = placeholder(err)
		return h.renderer.Render(c, "progress", page)
	}
	h.store.Replace(sess.ID, list)

	active := tickets.Active(list)
	page.Stats = stats.Summarize(active)

	criteria := tickets.Criteria{Search: filters.Search, Category: filters.Category}
	if status, ok := domain.ParseStatus(filters.Status); ok {
		criteria.Status = status
	}
	if priority, ok := domain.ParsePriority(filters.Priority); ok {
		criteria.Priority = priority
	}

	filtered := tickets.Sort(tickets.Filter(active, criteria), tickets.ParseSortKey(filters.Sort))
	page.Count = len(filtered)
	page.Tickets = render.TicketViews(filtered, time.Now())

	return h.renderer.Render(c, "progress", page)
}

// UpdateStatus POST /progress/tickets/:id/status moves a ticket to the next
// lifecycle state and redirects back to the list.
func (h *ProgressHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", map[string]any{"id": c.Params("id")})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid status payload", nil)
	}
	status, valid := domain.ParseStatus(req.Status)
	if !valid {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}

	ticket, err := h.store.Get(sess.ID, id)
	if err != nil {
		return err
	}

	if err := h.backend.UpdateTicketStatus(c.Context(), sess.Token, id, status); err != nil {
		return err
	}

	oldStatus := ticket.Status
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	if err := h.store.Update(sess.ID, ticket); err != nil {
		h.logger.Debug("snapshot update skipped", zap.Int("ticket_id", id), zap.Error(err))
	}

	publish(c.Context(), h.dispatcher, events.EventTicketStatusChanged, sess.ID, events.TicketStatusChangedPayload{
		TicketNumber: ticket.TicketNumber,
		OldStatus:    oldStatus,
		NewStatus:    status,
	})

	return c.Redirect("/progress", fiber.StatusFound)
}
