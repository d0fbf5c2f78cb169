package handlers

import (
	"strconv"
	"strings"
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

// AdminHandler serves the admin console with its users and tickets tabs and
// the management actions taken from them. Backend calls use the fixed admin
// bearer, never a user token.
type AdminHandler struct {
	backend    *backend.Client
	sessions   *session.Manager
	store      *tickets.Store
	dispatcher events.Dispatcher
	renderer   *view.Renderer
	logger     *zap.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(client *backend.Client, sessions *session.Manager, store *tickets.Store, dispatcher events.Dispatcher, renderer *view.Renderer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{backend: client, sessions: sessions, store: store, dispatcher: dispatcher, renderer: renderer, logger: logger}
}

// Console GET /admin. The tab query selects users or tickets; unknown
// values fall back to users.
func (h *AdminHandler) Console(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	tab := c.Query("tab", "users")
	if tab != "tickets" {
		tab = "users"
	}

	page := view.AdminPage{
		Page:       chrome("Admin Console", sess, h.sessions.PopFlashes(c.Context(), sess.ID)),
		Tab:        tab,
		Categories: domain.Categories,
		Statuses:   domain.Statuses(),
		Priorities: domain.Priorities(),
	}

	if tab == "users" {
		h.loadUsers(c, &page)
	} else {
		h.loadTickets(c, sess.ID, &page, 0)
	}
	return h.renderer.Render(c, "admin", page)
}

// EditTicketPage GET /admin/tickets/:id/edit renders the tickets tab with
// the edit panel open. The ticket is resolved against the local snapshot;
// an unknown id is a not-found, no extra round trip happens.
func (h *AdminHandler) EditTicketPage(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", map[string]any{"id": c.Params("id")})
	}

	page := view.AdminPage{
		Page:       chrome("Admin Console", sess, h.sessions.PopFlashes(c.Context(), sess.ID)),
		Tab:        "tickets",
		Categories: domain.Categories,
		Statuses:   domain.Statuses(),
		Priorities: domain.Priorities(),
	}
	h.loadTickets(c, sess.ID, &page, id)
	if page.TicketsError == "" && page.EditTicket == nil {
		return apperrors.NewNotFound("ticket", map[string]any{"id": strconv.Itoa(id)})
	}
	return h.renderer.Render(c, "admin", page)
}

// UpdateTicket POST /admin/tickets/:id edits category, priority and status
// in one submit.
func (h *AdminHandler) UpdateTicket(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", map[string]any{"id": c.Params("id")})
	}

	var req dto.AdminTicketUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid ticket payload", nil)
	}
	priority, valid := domain.ParsePriority(req.Priority)
	if !valid {
		return apperrors.NewValidationError("unknown priority", map[string]any{"priority": req.Priority})
	}
	status, valid := domain.ParseStatus(req.Status)
	if !valid {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}
	if !validCategory(req.Category) {
		return apperrors.NewValidationError("unknown department", map[string]any{"category": req.Category})
	}

	if err := h.backend.AdminUpdateTicket(c.Context(), h.sessions.AdminBearer(), id, req.Category, priority, status); err != nil {
		return err
	}

	ticketNumber := strconv.Itoa(id)
	if ticket, err := h.store.Get(sess.ID, id); err == nil {
		ticketNumber = ticket.TicketNumber
		ticket.Category = req.Category
		ticket.Priority = priority
		ticket.Status = status
		ticket.UpdatedAt = time.Now()
		_ = h.store.Update(sess.ID, ticket)
	}

	publish(c.Context(), h.dispatcher, events.EventTicketUpdated, sess.ID, events.TicketUpdatedPayload{
		TicketNumber: ticketNumber,
		Category:     req.Category,
		Priority:     priority,
		Status:       status,
	})

	return c.Redirect("/admin?tab=tickets", fiber.StatusFound)
}

// DeleteTicket POST /admin/tickets/:id/delete.
func (h *AdminHandler) DeleteTicket(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid ticket id", map[string]any{"id": c.Params("id")})
	}

	if err := h.backend.AdminDeleteTicket(c.Context(), h.sessions.AdminBearer(), id); err != nil {
		return err
	}

	ticketNumber := strconv.Itoa(id)
	if ticket, err := h.store.Get(sess.ID, id); err == nil {
		ticketNumber = ticket.TicketNumber
		_ = h.store.Remove(sess.ID, id)
	}

	publish(c.Context(), h.dispatcher, events.EventTicketDeleted, sess.ID, events.TicketDeletedPayload{
		TicketNumber: ticketNumber,
	})

	return c.Redirect("/admin?tab=tickets", fiber.StatusFound)
}

// DeleteUser POST /admin/users/:id/delete removes an account and, on the
// backend side, its tickets.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid user id", map[string]any{"id": c.Params("id")})
	}

	if err := h.backend.AdminDeleteUser(c.Context(), h.sessions.AdminBearer(), id); err != nil {
		return err
	}

	publish(c.Context(), h.dispatcher, events.EventUserDeleted, sess.ID, events.UserDeletedPayload{
		UserID: id,
		Name:   "#" + strconv.Itoa(id),
	})

	return c.Redirect("/admin?tab=users", fiber.StatusFound)
}

func (h *AdminHandler) loadUsers(c *fiber.Ctx, page *view.AdminPage) {
	page.UserSearch = c.Query("user_search")

	users, err := h.backend.AdminListUsers(c.Context(), h.sessions.AdminBearer())
	if err != nil {
		page.UsersError = placeholder(err)
		return
	}

	page.TotalUsers = len(users)
	for _, u := range users {
		page.TotalUserTickets += u.TicketCount
	}

	page.Users = render.UserViews(filterUsers(users, page.UserSearch))
}

// loadTickets fills the tickets tab, optionally resolving an edit target
// from the fresh snapshot.
func (h *AdminHandler) loadTickets(c *fiber.Ctx, sessionID string, page *view.AdminPage, editID int) {
	page.Filters = view.TicketFilters{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}

	list, err := h.backend.AdminListTickets(c.Context(), h.sessions.AdminBearer())
	if err != nil {
		page.TicketsError = placeholder(err)
		return
	}
	h.store.Replace(sessionID, list)
	page.Stats = stats.Summarize(list)

	criteria := tickets.Criteria{Search: page.Filters.Search, MatchDescription: true}
	if status, ok := domain.ParseStatus(page.Filters.Status); ok {
		criteria.Status = status
	}
	if priority, ok := domain.ParsePriority(page.Filters.Priority); ok {
		criteria.Priority = priority
	}

	now := time.Now()
	filtered := tickets.Sort(tickets.Filter(list, criteria), tickets.SortPriority)
	page.TicketCount = len(filtered)
	page.Tickets = render.TicketViews(filtered, now)

	if editID != 0 {
		if ticket, err := h.store.Get(sessionID, editID); err == nil {
			edit := render.TicketViewOf(ticket, now)
			page.EditTicket = &edit
		}
	}
}

// filterUsers matches name and email case-insensitively and the numeric id
// exactly, with or without a leading #.
func filterUsers(users []domain.User, query string) []domain.User {
	query = strings.TrimSpace(query)
	if query == "" {
		return users
	}
	lowered := strings.ToLower(query)
	idQuery := strings.TrimPrefix(query, "#")

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), lowered) ||
			strings.Contains(strings.ToLower(u.Email), lowered) ||
			strconv.Itoa(u.ID) == idQuery {
			out = append(out, u)
		}
	}
	return out
}

func validCategory(category string) bool {
	for _, c := range domain.Categories {
		if c == category {
			return true
		}
	}
	return false
}
