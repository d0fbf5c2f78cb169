package view

import (
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/render"
	"github.com/spec-kit/helpdesk-console/internal/stats"
)

// Page carries the chrome shared by every view.
type Page struct {
	Title   string
	Profile render.ProfileView
	Admin   bool
	Flashes []string
}

// AuthPage backs the combined login/signup screen.
type AuthPage struct {
	Page
	Error string
	Email string
}

// DashboardPage backs the user dashboard. The error fields hold section
// placeholders; a failed load never takes down the whole page.
type DashboardPage struct {
	Page
	Stats           stats.Summary
	Tickets         []render.TicketView
	TicketsError    string
	Activities      []render.ActivityView
	ActivitiesError string
}

// TicketFilters echoes the active filter controls back into the form.
type TicketFilters struct {
	Search    string
	Status    string
	Priority  string
	Category  string
	Sort      string
	StartDate string
	EndDate   string
}

// ProgressPage backs the active-tickets view.
type ProgressPage struct {
	Page
	Stats      stats.Summary
	Tickets    []render.TicketView
	Count      int
	Filters    TicketFilters
	LoadError  string
	Categories []string
	Statuses   []string
	Priorities []string
}

// HistoryPage backs the closed-tickets timeline.
type HistoryPage struct {
	Page
	TotalClosed      int
	ThisMonth        int
	AvgResolution    string
	CriticalResolved int
	Tickets          []render.TicketView
	Count            int
	Filters          TicketFilters
	LoadError        string
	Categories       []string
	Priorities       []string
}

// CreateTicketPage backs the new-ticket form, with an optional classifier
// suggestion shown beside the draft.
type CreateTicketPage struct {
	Page
	TicketTitle string
	Description string
	Prediction  *domain.Prediction
	Error       string
}

// ProfilePage backs the profile view.
type ProfilePage struct {
	Page
	Email           string
	MemberSince     string
	Stats           stats.Summary
	StatsError      string
	Activities      []render.ActivityView
	ActivitiesError string
}

// SettingsPage backs the settings forms.
type SettingsPage struct {
	Page
	Email string
	Prefs domain.Preferences
}

// ErrorPage backs the fallback error view rendered by the error middleware.
type ErrorPage struct {
	Page
	Code    string
	Message string
}

// AdminPage backs the admin console with its users and tickets tabs.
type AdminPage struct {
	Page
	Tab              string
	Users            []render.UserView
	UsersError       string
	UserSearch       string
	TotalUsers       int
	TotalUserTickets int
	Tickets          []render.TicketView
	TicketsError     string
	TicketCount      int
	Stats            stats.Summary
	Filters          TicketFilters
	EditTicket       *render.TicketView
	Categories       []string
	Statuses         []string
	Priorities       []string
}
