// Package render projects domain data into view models consumed by the HTML
// templates. Nothing here writes output; the projections are plain data so
// the shaping logic is testable without a rendering surface.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/stats"
)

// TicketView is one ticket card, timeline entry or table row.
type TicketView struct {
	ID             int
	TicketNumber   string
	Title          string
	Description    string
	Category       string
	Priority       string
	PriorityClass  string
	Status         string
	StatusClass    string
	Created        string
	CreatedFull    string
	Updated        string
	UpdatedFull    string
	ResolutionTime string
}

// UserView is one row of the admin users table.
type UserView struct {
	ID          int
	Name        string
	Email       string
	TicketCount int
	Joined      string
	Initial     string
}

// ActivityView is one line of the dashboard activity feed.
type ActivityView struct {
	Description string
	When        string
}

// ProfileView is the signed-in identity shown in the page chrome.
type ProfileView struct {
	Name    string
	Email   string
	Initial string
}

// TicketViews projects a ticket list relative to now.
func TicketViews(tickets []domain.Ticket, now time.Time) []TicketView {
	out := make([]TicketView, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, TicketViewOf(t, now))
	}
	return out
}

// TicketViewOf projects a single ticket relative to now.
func TicketViewOf(t domain.Ticket, now time.Time) TicketView {
	view := TicketView{
		ID:            t.ID,
		TicketNumber:  t.TicketNumber,
		Title:         t.Title,
		Description:   t.Description,
		Category:      t.Category,
		Priority:      string(t.Priority),
		PriorityClass: "priority-" + strings.ToLower(string(t.Priority)),
		Status:        string(t.Status),
		StatusClass:   "status-" + strings.ReplaceAll(strings.ToLower(string(t.Status)), " ", "-"),
		Created:       FormatRelative(t.CreatedAt, now),
		CreatedFull:   FormatFullDate(t.CreatedAt),
		Updated:       FormatRelative(t.UpdatedAt, now),
		UpdatedFull:   FormatFullDate(t.UpdatedAt),
	}
	if t.Status == domain.TicketStatusClosed {
		view.ResolutionTime = stats.ResolutionTime(t)
	}
	return view
}

// UserViews projects the admin users table.
func UserViews(users []domain.User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, UserView{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			TicketCount: u.TicketCount,
			Joined:      FormatFullDate(u.CreatedAt),
			Initial:     Initial(u.Name),
		})
	}
	return out
}

// ActivityViews projects the activity feed relative to now.
func ActivityViews(activities []domain.Activity, now time.Time) []ActivityView {
	out := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		out = append(out, ActivityView{
			Description: a.Description,
			When:        FormatRelative(a.Timestamp, now),
		})
	}
	return out
}

// ProfileViewOf projects the signed-in user for the page chrome.
func ProfileViewOf(u domain.User) ProfileView {
	name := u.Name
	if name == "" {
		name = "User"
	}
	return ProfileView{Name: name, Email: u.Email, Initial: Initial(name)}
}

// Initial returns the uppercased first rune used for avatar badges.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// FormatRelative renders a recent timestamp as "Just now", "5m ago",
// "3h ago" or "2d ago", falling back to an absolute date after a week.
func FormatRelative(ts, now time.Time) string {
	diff := now.Sub(ts)
	if diff < 0 {
		diff = 0
	}

	mins := int(diff.Minutes())
	hours := int(diff.Hours())
	days := hours / 24

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return ts.Format("Jan 2, 2006")
	}
}

// FormatFullDate renders an absolute timestamp, e.g. "Mar 1, 2024, 03:04 PM".
func FormatFullDate(ts time.Time) string {
	return ts.Format("Jan 2, 2006, 03:04 PM")
}
