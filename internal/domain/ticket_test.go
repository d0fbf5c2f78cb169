package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 1, TicketPriorityCritical.Rank())
	assert.Equal(t, 2, TicketPriorityHigh.Rank())
	assert.Equal(t, 3, TicketPriorityMedium.Rank())
	assert.Equal(t, 4, TicketPriorityLow.Rank())
	assert.Equal(t, 5, TicketPriority("Bogus").Rank())
	assert.Equal(t, 5, TicketPriority("").Rank())
}

func TestParseStatus(t *testing.T) {
	status, ok := ParseStatus("In Progress")
	assert.True(t, ok)
	assert.Equal(t, TicketStatusInProgress, status)

	_, ok = ParseStatus("in progress")
	assert.False(t, ok)
}

func TestParsePriority(t *testing.T) {
	priority, ok := ParsePriority("Critical")
	assert.True(t, ok)
	assert.Equal(t, TicketPriorityCritical, priority)

	_, ok = ParsePriority("urgent")
	assert.False(t, ok)
}

func TestTicketActive(t *testing.T) {
	assert.True(t, Ticket{Status: TicketStatusOpen}.Active())
	assert.True(t, Ticket{Status: TicketStatusInProgress}.Active())
	assert.False(t, Ticket{Status: TicketStatusClosed}.Active())
}
