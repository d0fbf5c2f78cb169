package tickets

import (
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// DateField selects which timestamp a date-range criterion applies to.
type DateField string

const (
	DateFieldCreated DateField = "created"
	DateFieldUpdated DateField = "updated"
)

// Criteria is one view's filter set. Zero-valued dimensions impose no
// constraint; all active dimensions must match (conjunction).
type Criteria struct {
	// Search matches case-insensitively against title and ticket number,
	// and against the description when MatchDescription is set.
	Search           string
	MatchDescription bool

	Status   domain.TicketStatus
	Priority domain.TicketPriority
	Category string

	// From and To bound the timestamp named by DateField, inclusive.
	DateField DateField
	From      *time.Time
	To        *time.Time
}

// SortKey enumerates the supported orderings.
type SortKey string

const (
	SortCreatedAsc  SortKey = "created_asc"
	SortCreatedDesc SortKey = "created_desc"
	SortClosedAsc   SortKey = "closed_asc"
	SortClosedDesc  SortKey = "closed_desc"
	SortPriority    SortKey = "priority"
)

// ParseSortKey maps a query value onto a SortKey, defaulting to newest first.
func ParseSortKey(val string) SortKey {
	switch SortKey(val) {
	case SortCreatedAsc, SortCreatedDesc, SortClosedAsc, SortClosedDesc, SortPriority:
		return SortKey(val)
	default:
		return SortCreatedDesc
	}
}

// Filter returns the sub-list of tickets satisfying every active criterion.
// An empty result is a valid outcome, not an error.
func Filter(tickets []domain.Ticket, criteria Criteria) []domain.Ticket {
	search := strings.ToLower(strings.TrimSpace(criteria.Search))

	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if !matches(t, criteria, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matches(t domain.Ticket, c Criteria, search string) bool {
	if search != "" {
		hit := strings.Contains(strings.ToLower(t.Title), search) ||
			strings.Contains(strings.ToLower(t.TicketNumber), search)
		if !hit && c.MatchDescription {
			hit = strings.Contains(strings.ToLower(t.Description), search)
		}
		if !hit {
			return false
		}
	}
	if c.Status != "" && t.Status != c.Status {
		return false
	}
	if c.Priority != "" && t.Priority != c.Priority {
		return false
	}
	if c.Category != "" && t.Category != c.Category {
		return false
	}

	if c.From != nil || c.To != nil {
		ts := t.CreatedAt
		if c.DateField == DateFieldUpdated {
			ts = t.UpdatedAt
		}
		if c.From != nil && ts.Before(*c.From) {
			return false
		}
		if c.To != nil && ts.After(*c.To) {
			return false
		}
	}
	return true
}

// Sort orders tickets by the given key. Date sorts compare timestamps and
// keep ties in input order; the priority sort uses the fixed rank
// Critical=1 through Low=4 with malformed values last.
func Sort(tickets []domain.Ticket, key SortKey) []domain.Ticket {
	out := make([]domain.Ticket, len(tickets))
	copy(out, tickets)

	switch key {
	case SortCreatedAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	case SortCreatedDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[j].CreatedAt.Before(out[i].CreatedAt) })
	case SortClosedAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	case SortClosedDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[j].UpdatedAt.Before(out[i].UpdatedAt) })
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Priority.Rank() < out[j].Priority.Rank() })
	}
	return out
}

// Active keeps only Open and In Progress tickets (the progress view scope).
func Active(tickets []domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Active() {
			out = append(out, t)
		}
	}
	return out
}

// Closed keeps only Closed tickets (the history view scope).
func Closed(tickets []domain.Ticket) []domain.Ticket {
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == domain.TicketStatusClosed {
			out = append(out, t)
		}
	}
	return out
}
