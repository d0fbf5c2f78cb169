// Package stats derives summary counters and resolution-time figures from a
// ticket list. Everything here is a pure function over the fetched snapshot.
package stats

import (
	"fmt"
	"time"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

// Summary holds the named counts shown on the dashboard and admin views.
type Summary struct {
	Total      int
	Open       int
	InProgress int
	Closed     int
	Critical   int
	High       int
	// Urgent is Critical plus High, the progress view's combined counter.
	Urgent int
}

// Summarize counts tickets by status and priority.
func Summarize(tickets []domain.Ticket) Summary {
	var s Summary
	s.Total = len(tickets)
	for _, t := range tickets {
		switch t.Status {
		case domain.TicketStatusOpen:
			s.Open++
		case domain.TicketStatusInProgress:
			s.InProgress++
		case domain.TicketStatusClosed:
			s.Closed++
		}
		switch t.Priority {
		case domain.TicketPriorityCritical:
			s.Critical++
		case domain.TicketPriorityHigh:
			s.High++
		}
	}
	s.Urgent = s.Critical + s.High
	return s
}

// ClosedSince counts tickets whose last update falls at or after the cutoff.
// The history view uses the first day of the current month as the cutoff.
func ClosedSince(tickets []domain.Ticket, cutoff time.Time) int {
	count := 0
	for _, t := range tickets {
		if t.Status == domain.TicketStatusClosed && !t.UpdatedAt.Before(cutoff) {
			count++
		}
	}
	return count
}

// StartOfMonth returns midnight on the first day of now's month.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// ResolutionHours returns the whole hours between creation and last update.
func ResolutionHours(t domain.Ticket) int {
	diff := t.UpdatedAt.Sub(t.CreatedAt)
	if diff < 0 {
		return 0
	}
	return int(diff.Hours())
}

// ResolutionTime formats the duration between a ticket's creation and its
// last update. Meaningful only for Closed tickets; sub-hour durations floor
// to "<1h".
func ResolutionTime(t domain.Ticket) string {
	hours := ResolutionHours(t)
	days := hours / 24

	switch {
	case hours < 1:
		return "<1h"
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// AverageResolution returns the mean per-ticket resolution across the
// collection, floored to whole hours, expressed in hours below one day and
// days otherwise. An empty collection yields "0h", never a fault.
func AverageResolution(tickets []domain.Ticket) string {
	if len(tickets) == 0 {
		return "0h"
	}

	totalHours := 0
	for _, t := range tickets {
		totalHours += ResolutionHours(t)
	}
	avgHours := totalHours / len(tickets)

	if avgHours < 24 {
		return fmt.Sprintf("%dh", avgHours)
	}
	return fmt.Sprintf("%dd", avgHours/24)
}
