package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/backend"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/export"
	"github.com/spec-kit/helpdesk-console/internal/render"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/stats"
	"github.com/spec-kit/helpdesk-console/internal/tickets"
	"github.com/spec-kit/helpdesk-console/internal/view"
)

const (
	dateLayout         = "2006-01-02"
	defaultHistoryDays = 30
)

// HistoryHandler serves the closed-tickets timeline and its CSV export.
type HistoryHandler struct {
	backend  *backend.Client
	sessions *session.Manager
	renderer *view.Renderer
	logger   *zap.Logger
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(client *backend.Client, sessions *session.Manager, renderer *view.Renderer, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{backend: client, sessions: sessions, renderer: renderer, logger: logger}
}

// History GET /history. The date range applies to the close timestamp and
// defaults to the last thirty days.
func (h *HistoryHandler) History(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	now := time.Now()

	filters, criteria, sortKey := historyQuery(c, now)
	page := view.HistoryPage{
		Page:       chrome("History", sess, h.sessions.PopFlashes(c.Context(), sess.ID)),
		Filters:    filters,
		Categories: domain.Categories,
		Priorities: domain.Priorities(),
	}

	list, err := h.backend.ListTickets(c.Context(), sess.Token)
	if err != nil {
		page.LoadError = placeholder(err)
		return h.renderer.Render(c, "history", page)
	}

	closed := tickets.Closed(list)
	page.TotalClosed = len(closed)
	page.ThisMonth = stats.ClosedSince(closed, stats.StartOfMonth(now))
	page.AvgResolution = stats.AverageResolution(closed)
	for _, t := range closed {
		if t.Priority == domain.TicketPriorityCritical {
			page.CriticalResolved++
		}
	}

	filtered := tickets.Sort(tickets.Filter(closed, criteria), sortKey)
	page.Count = len(filtered)
	page.Tickets = render.TicketViews(filtered, now)

	return h.renderer.Render(c, "history", page)
}

// ExportCSV GET /history/export.csv downloads the currently filtered
// timeline as a dated CSV file.
func (h *HistoryHandler) ExportCSV(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	now := time.Now()

	_, criteria, sortKey := historyQuery(c, now)

	list, err := h.backend.ListTickets(c.Context(), sess.Token)
	if err != nil {
		return err
	}
	filtered := tickets.Sort(tickets.Filter(tickets.Closed(list), criteria), sortKey)

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, export.FileName(now)))
	return c.SendString(export.TicketsCSV(filtered))
}

// historyQuery builds the filter state shared by the page and the export.
// Searches here also match descriptions, unlike the progress view.
func historyQuery(c *fiber.Ctx, now time.Time) (view.TicketFilters, tickets.Criteria, tickets.SortKey) {
	filters := view.TicketFilters{
		Search:    c.Query("search"),
		Priority:  c.Query("priority"),
		Category:  c.Query("category"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}
	sortKey := tickets.SortKey(c.Query("sort"))
	switch sortKey {
	case tickets.SortClosedAsc, tickets.SortClosedDesc, tickets.SortCreatedAsc, tickets.SortCreatedDesc:
	default:
		sortKey = tickets.SortClosedDesc
	}
	filters.Sort = string(sortKey)

	if filters.StartDate == "" {
		filters.StartDate = now.AddDate(0, 0, -defaultHistoryDays).Format(dateLayout)
	}
	if filters.EndDate == "" {
		filters.EndDate = now.Format(dateLayout)
	}

	criteria := tickets.Criteria{
		Search:           filters.Search,
		MatchDescription: true,
		Category:         filters.Category,
		DateField:        tickets.DateFieldUpdated,
	}
	if priority, ok := domain.ParsePriority(filters.Priority); ok {
		criteria.Priority = priority
	}
	if from, err := time.ParseInLocation(dateLayout, filters.StartDate, now.Location()); err == nil {
		criteria.From = &from
	}
	if to, err := time.ParseInLocation(dateLayout, filters.EndDate, now.Location()); err == nil {
		// Inclusive upper bound, stretch to the end of the chosen day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		criteria.To = &end
	}
	return filters, criteria, sortKey
}
