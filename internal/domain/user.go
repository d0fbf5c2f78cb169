package domain

import "time"

// User is an end-user who submits tickets. TicketCount is computed by the
// backend, never stored here.
type User struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	TicketCount int       `json:"ticket_count,omitempty"`
}

// Activity is a read-only audit line owned by a user.
type Activity struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
