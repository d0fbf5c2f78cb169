package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/backend"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/view"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 1000
)

// TicketHandler serves the new-ticket form, the classifier suggestion and
// the submission itself.
type TicketHandler struct {
	backend    *backend.Client
	sessions   *session.Manager
	dispatcher events.Dispatcher
	renderer   *view.Renderer
	logger     *zap.Logger
}

// NewTicketHandler constructs the handler.
func NewTicketHandler(client *backend.Client, sessions *session.Manager, dispatcher events.Dispatcher, renderer *view.Renderer, logger *zap.Logger) *TicketHandler {
	return &TicketHandler{backend: client, sessions: sessions, dispatcher: dispatcher, renderer: renderer, logger: logger}
}

// NewTicketPage GET /tickets/new.
func (h *TicketHandler) NewTicketPage(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return h.renderer.Render(c, "create_ticket", view.CreateTicketPage{
		Page: chrome("Create Ticket", sess, h.sessions.PopFlashes(c.Context(), sess.ID)),
	})
}

// Suggest POST /ai/suggest asks the backend classifier for a department and
// priority hint on the current draft and re-renders the form with it. The
// draft itself is not submitted.
func (h *TicketHandler) Suggest(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	var req dto.PredictRequest
	if err := c.BodyParser(&req); err != nil {
		return h.formError(c, sess, req.Title, req.Description, "invalid suggestion payload")
	}
	text := strings.TrimSpace(req.Title + " " + req.Description)
	if text == "" {
		return h.formError(c, sess, req.Title, req.Description, "describe your issue before asking for a suggestion")
	}

	prediction, err := h.backend.Predict(c.Context(), sess.Token, text)
	if err != nil {
		return h.formError(c, sess, req.Title, req.Description, placeholder(err))
	}

	return h.renderer.Render(c, "create_ticket", view.CreateTicketPage{
		Page:        chrome("Create Ticket", sess, nil),
		TicketTitle: req.Title,
		Description: req.Description,
		Prediction:  &prediction,
	})
}

// Create POST /tickets validates the draft, submits it and redirects to the
// dashboard. Validation failures re-render the form with the draft intact.
func (h *TicketHandler) Create(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return h.formError(c, sess, req.Title, req.Description, "invalid ticket payload")
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	switch {
	case title == "":
		return h.formError(c, sess, req.Title, req.Description, "title is required")
	case len(title) > maxTitleLength:
		return h.formError(c, sess, req.Title, req.Description, "title must be 100 characters or fewer")
	case description == "":
		return h.formError(c, sess, req.Title, req.Description, "description is required")
	case len(description) > maxDescriptionLength:
		return h.formError(c, sess, req.Title, req.Description, "description must be 1000 characters or fewer")
	}

	ticket, _, err := h.backend.CreateTicket(c.Context(), sess.Token, title, description)
	if err != nil {
		return h.formError(c, sess, req.Title, req.Description, placeholder(err))
	}

	publish(c.Context(), h.dispatcher, events.EventTicketCreated, sess.ID, events.TicketCreatedPayload{
		TicketNumber: ticket.TicketNumber,
		Title:        ticket.Title,
		Category:     ticket.Category,
		Priority:     ticket.Priority,
	})

	return c.Redirect("/dashboard", fiber.StatusFound)
}

func (h *TicketHandler) formError(c *fiber.Ctx, sess *domain.Session, title, description, message string) error {
	return h.renderer.Render(c, "create_ticket", view.CreateTicketPage{
		Page:        chrome("Create Ticket", sess, nil),
		TicketTitle: title,
		Description: description,
		Error:       message,
	})
}
