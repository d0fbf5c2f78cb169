package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusClosed     TicketStatus = "Closed"
)

// TicketPriority enumerates urgency, Critical highest.
type TicketPriority string

const (
	TicketPriorityCritical TicketPriority = "Critical"
	TicketPriorityHigh     TicketPriority = "High"
	TicketPriorityMedium   TicketPriority = "Medium"
	TicketPriorityLow      TicketPriority = "Low"
)

// Rank returns the fixed sort rank: Critical=1 through Low=4. Unknown or
// malformed values rank after every known priority so sorts never produce
// undefined comparisons.
func (p TicketPriority) Rank() int {
	switch p {
	case TicketPriorityCritical:
		return 1
	case TicketPriorityHigh:
		return 2
	case TicketPriorityMedium:
		return 3
	case TicketPriorityLow:
		return 4
	default:
		return 5
	}
}

// Categories is the fixed department set the backend classifier assigns
// tickets to.
var Categories = []string{"Technical", "Billing", "Account", "General Inquiry"}

// Statuses lists every lifecycle state in order.
func Statuses() []string {
	return []string{
		string(TicketStatusOpen),
		string(TicketStatusInProgress),
		string(TicketStatusClosed),
	}
}

// Priorities lists every priority in rank order.
func Priorities() []string {
	return []string{
		string(TicketPriorityCritical),
		string(TicketPriorityHigh),
		string(TicketPriorityMedium),
		string(TicketPriorityLow),
	}
}

// ParseStatus validates a raw status value.
func ParseStatus(val string) (TicketStatus, bool) {
	switch TicketStatus(val) {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return TicketStatus(val), true
	default:
		return "", false
	}
}

// ParsePriority validates a raw priority value.
func ParsePriority(val string) (TicketPriority, bool) {
	switch TicketPriority(val) {
	case TicketPriorityCritical, TicketPriorityHigh, TicketPriorityMedium, TicketPriorityLow:
		return TicketPriority(val), true
	default:
		return "", false
	}
}

// Ticket is a user-submitted support request.
type Ticket struct {
	ID           int            `json:"id"`
	TicketNumber string         `json:"ticket_number"`
	UserID       int            `json:"user_id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Priority     TicketPriority `json:"priority"`
	Status       TicketStatus   `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Active reports whether the ticket is still being worked.
func (t Ticket) Active() bool {
	return t.Status == TicketStatusOpen || t.Status == TicketStatusInProgress
}

// Prediction is the backend classifier's suggestion for a draft ticket.
type Prediction struct {
	Department string `json:"department"`
	Priority   string `json:"priority"`
}
