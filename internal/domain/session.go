package domain

import "time"

// Session is the server-side record of an authenticated browser. Admin
// sessions carry no backend token of their own; admin API calls use the
// fixed placeholder bearer the backend expects.
type Session struct {
	ID         string    `json:"id"`
	Token      string    `json:"token"`
	User       User      `json:"user"`
	Admin      bool      `json:"admin"`
	RememberMe bool      `json:"remember_me"`
	CreatedAt  time.Time `json:"created_at"`
}
