package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/render"
	"github.com/spec-kit/helpdesk-console/internal/stats"
)

// Executes every page template against its data struct so a template or
// field rename fails here instead of at request time.
func TestTemplatesExecute(t *testing.T) {
	renderer, err := New()
	require.NoError(t, err)

	profile := render.ProfileView{Name: "Alice", Email: "alice@example.com", Initial: "A"}
	page := Page{Title: "Test", Profile: profile, Flashes: []string{"Saved"}}
	ticket := render.TicketView{
		ID:           1,
		TicketNumber: "TKT-001",
		Title:        "Broken printer",
		Priority:     "High",
		Status:       "Open",
	}
	filters := TicketFilters{Sort: "created_desc"}

	cases := []struct {
		name string
		data any
	}{
		{"landing", Page{Title: "Welcome"}},
		{"auth", AuthPage{Page: page, Error: "nope", Email: "alice@example.com"}},
		{"dashboard", DashboardPage{Page: page, Stats: stats.Summary{Total: 1}, Tickets: []render.TicketView{ticket}}},
		{"progress", ProgressPage{Page: page, Tickets: []render.TicketView{ticket}, Count: 1, Filters: filters, Statuses: domain.Statuses(), Priorities: domain.Priorities(), Categories: domain.Categories}},
		{"history", HistoryPage{Page: page, AvgResolution: "2h", Tickets: []render.TicketView{ticket}, Count: 1, Filters: filters, Priorities: domain.Priorities(), Categories: domain.Categories}},
		{"create_ticket", CreateTicketPage{Page: page, Prediction: &domain.Prediction{Department: "Technical", Priority: "High"}}},
		{"profile", ProfilePage{Page: page, Email: "alice@example.com", MemberSince: "Jan 2, 2024, 09:00 AM", Stats: stats.Summary{}, Activities: []render.ActivityView{{Description: "Created ticket TKT-001", When: "5m ago"}}}},
		{"settings", SettingsPage{Page: page, Email: "alice@example.com", Prefs: domain.Preferences{}.WithDefaults()}},
		{"admin", AdminPage{Page: page, Tab: "tickets", Tickets: []render.TicketView{ticket}, TicketCount: 1, Filters: filters, EditTicket: &ticket, Statuses: domain.Statuses(), Priorities: domain.Priorities(), Categories: domain.Categories}},
		{"admin users tab", AdminPage{Page: page, Tab: "users", Users: []render.UserView{{ID: 1, Name: "Bob", Email: "bob@example.com"}}}},
		{"error", ErrorPage{Page: page, Code: "NOT_FOUND", Message: "ticket not found"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name := tc.name
			if name == "admin users tab" {
				name = "admin"
			}
			var buf bytes.Buffer
			err := renderer.tmpl.ExecuteTemplate(&buf, name, tc.data)
			require.NoError(t, err)
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestProfileTemplateShowsRecentActivity(t *testing.T) {
	renderer, err := New()
	require.NoError(t, err)

	data := ProfilePage{
		Page:       Page{Title: "Profile", Profile: render.ProfileView{Name: "Alice", Initial: "A"}},
		Email:      "alice@example.com",
		Activities: []render.ActivityView{{Description: "Updated ticket TKT-002 status to Closed", When: "2h ago"}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.tmpl.ExecuteTemplate(&buf, "profile", data))
	assert.Contains(t, buf.String(), "Recent Activity")
	assert.Contains(t, buf.String(), "Updated ticket TKT-002 status to Closed")

	data.Activities = nil
	data.ActivitiesError = "Unable to load activities"
	buf.Reset()
	require.NoError(t, renderer.tmpl.ExecuteTemplate(&buf, "profile", data))
	assert.Contains(t, buf.String(), "Unable to load activities")
}
