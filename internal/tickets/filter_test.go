package tickets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

func ticketFixture() []domain.Ticket {
	return []domain.Ticket{
		{
			ID:           1,
			TicketNumber: "TKT-001",
			Title:        "Cannot login to portal",
			Description:  "Password reset loop",
			Category:     "Technical",
			Priority:     domain.TicketPriorityHigh,
			Status:       domain.TicketStatusOpen,
			CreatedAt:    time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:           2,
			TicketNumber: "TKT-002",
			Title:        "Invoice missing",
			Description:  "No invoice for January, cannot login to billing area",
			Category:     "Billing",
			Priority:     domain.TicketPriorityLow,
			Status:       domain.TicketStatusClosed,
			CreatedAt:    time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:           3,
			TicketNumber: "TKT-003",
			Title:        "Server outage",
			Description:  "Production is down",
			Category:     "Technical",
			Priority:     domain.TicketPriorityCritical,
			Status:       domain.TicketStatusInProgress,
			CreatedAt:    time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
			UpdatedAt:    time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	got := Filter(ticketFixture(), Criteria{Search: "LOGIN"})

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestFilterSearchMatchesDescriptionOnlyWhenEnabled(t *testing.T) {
	withoutDesc := Filter(ticketFixture(), Criteria{Search: "billing area"})
	assert.Empty(t, withoutDesc)

	withDesc := Filter(ticketFixture(), Criteria{Search: "billing area", MatchDescription: true})
	require.Len(t, withDesc, 1)
	assert.Equal(t, 2, withDesc[0].ID)
}

func TestFilterSearchMatchesTicketNumber(t *testing.T) {
	got := Filter(ticketFixture(), Criteria{Search: "tkt-003"})

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestFilterCriteriaAreConjunctive(t *testing.T) {
	got := Filter(ticketFixture(), Criteria{
		Category: "Technical",
		Status:   domain.TicketStatusOpen,
	})

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	none := Filter(ticketFixture(), Criteria{
		Category: "Billing",
		Status:   domain.TicketStatusOpen,
	})
	assert.Empty(t, none)
}

func TestFilterDateRangeIsInclusive(t *testing.T) {
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 4, 23, 59, 59, 0, time.UTC)

	got := Filter(ticketFixture(), Criteria{
		DateField: DateFieldUpdated,
		From:      &from,
		To:        &to,
	})

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestSortCreatedDesc(t *testing.T) {
	got := Sort(ticketFixture(), SortCreatedDesc)

	require.Len(t, got, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestSortCreatedAsc(t *testing.T) {
	got := Sort(ticketFixture(), SortCreatedAsc)

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 3, 2}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestSortPriorityRanksCriticalFirstAndUnknownLast(t *testing.T) {
	list := append(ticketFixture(), domain.Ticket{
		ID:       4,
		Priority: domain.TicketPriority("Bogus"),
	})

	got := Sort(list, SortPriority)

	require.Len(t, got, 4)
	assert.Equal(t, domain.TicketPriorityCritical, got[0].Priority)
	assert.Equal(t, domain.TicketPriorityHigh, got[1].Priority)
	assert.Equal(t, domain.TicketPriorityLow, got[2].Priority)
	assert.Equal(t, 4, got[3].ID)
}

func TestSortPriorityKeepsTiesStable(t *testing.T) {
	list := []domain.Ticket{
		{ID: 1, Priority: domain.TicketPriorityHigh},
		{ID: 2, Priority: domain.TicketPriorityHigh},
		{ID: 3, Priority: domain.TicketPriorityCritical},
	}

	got := Sort(list, SortPriority)

	assert.Equal(t, []int{3, 1, 2}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := ticketFixture()
	_ = Sort(input, SortCreatedDesc)

	assert.Equal(t, 1, input[0].ID)
}

func TestActiveAndClosedScopes(t *testing.T) {
	active := Active(ticketFixture())
	require.Len(t, active, 2)
	for _, ticket := range active {
		assert.True(t, ticket.Active())
	}

	closed := Closed(ticketFixture())
	require.Len(t, closed, 1)
	assert.Equal(t, 2, closed[0].ID)
}

func TestParseSortKeyDefaultsToNewestFirst(t *testing.T) {
	assert.Equal(t, SortCreatedDesc, ParseSortKey(""))
	assert.Equal(t, SortCreatedDesc, ParseSortKey("bogus"))
	assert.Equal(t, SortPriority, ParseSortKey("priority"))
}
