package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

func closedTicket(created, updated time.Time) domain.Ticket {
	return domain.Ticket{
		Status:    domain.TicketStatusClosed,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func TestSummarize(t *testing.T) {
	list := []domain.Ticket{
		{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityCritical},
		{Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow},
		{Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityHigh},
		{Status: domain.TicketStatusClosed, Priority: domain.TicketPriorityMedium},
	}

	s := Summarize(list)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Open)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.Closed)
	assert.Equal(t, 1, s.Critical)
	assert.Equal(t, 1, s.High)
	assert.Equal(t, 2, s.Urgent)
}

func TestResolutionTime(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"sub hour floors", 30 * time.Minute, "<1h"},
		{"whole hours", 5 * time.Hour, "5h"},
		{"just under a day", 23*time.Hour + 59*time.Minute, "23h"},
		{"single day", 30 * time.Hour, "1 day"},
		{"multiple days", 50 * time.Hour, "2 days"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolutionTime(closedTicket(base, base.Add(tc.elapsed)))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolutionHoursNeverNegative(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	got := ResolutionHours(closedTicket(base, base.Add(-time.Hour)))
	assert.Equal(t, 0, got)
}

func TestAverageResolution(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	list := []domain.Ticket{
		closedTicket(base, base.Add(2*time.Hour)),
		closedTicket(base, base.Add(4*time.Hour)),
	}
	assert.Equal(t, "3h", AverageResolution(list))

	long := []domain.Ticket{
		closedTicket(base, base.Add(48*time.Hour)),
		closedTicket(base, base.Add(96*time.Hour)),
	}
	assert.Equal(t, "3d", AverageResolution(long))
}

func TestAverageResolutionFloorsPerTicketBeforeAveraging(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	// 90m and 30m floor to 1h and 0h, so the mean is 0h rather than 1h.
	list := []domain.Ticket{
		closedTicket(base, base.Add(90*time.Minute)),
		closedTicket(base, base.Add(30*time.Minute)),
	}
	assert.Equal(t, "0h", AverageResolution(list))
}

func TestAverageResolutionEmpty(t *testing.T) {
	assert.Equal(t, "0h", AverageResolution(nil))
}

func TestClosedSince(t *testing.T) {
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	list := []domain.Ticket{
		closedTicket(cutoff.AddDate(0, 0, -10), cutoff.AddDate(0, 0, -5)),
		closedTicket(cutoff.AddDate(0, 0, -10), cutoff),
		closedTicket(cutoff.AddDate(0, 0, -10), cutoff.AddDate(0, 0, 3)),
		{Status: domain.TicketStatusOpen, UpdatedAt: cutoff.AddDate(0, 0, 3)},
	}

	assert.Equal(t, 2, ClosedSince(list, cutoff))
}

func TestStartOfMonth(t *testing.T) {
	now := time.Date(2024, 3, 17, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(now))
}
