package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/domain"
)

type memoryFlashes struct {
	messages map[string][]string
}

func (m *memoryFlashes) PushFlash(_ context.Context, sessionID, message string) error {
	if m.messages == nil {
		m.messages = map[string][]string{}
	}
	m.messages[sessionID] = append(m.messages[sessionID], message)
	return nil
}

func TestRecorderPushesFlashOnStatusChange(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	flashes := &memoryFlashes{}
	recorder := NewActivityRecorder(dispatcher, flashes, zap.NewNop())
	recorder.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), Event{
		ID:        "evt-1",
		Type:      EventTicketStatusChanged,
		SessionID: "sid-1",
		Timestamp: time.Now(),
		Payload: TicketStatusChangedPayload{
			TicketNumber: "TKT-001",
			OldStatus:    domain.TicketStatusOpen,
			NewStatus:    domain.TicketStatusClosed,
		},
	})
	require.NoError(t, err)

	require.Len(t, flashes.messages["sid-1"], 1)
	assert.Equal(t, "Ticket TKT-001 moved to Closed", flashes.messages["sid-1"][0])
}

func TestRecorderIgnoresEventsWithoutSession(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	flashes := &memoryFlashes{}
	recorder := NewActivityRecorder(dispatcher, flashes, zap.NewNop())
	recorder.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), Event{
		ID:        "evt-2",
		Type:      EventTicketCreated,
		Timestamp: time.Now(),
		Payload:   TicketCreatedPayload{TicketNumber: "TKT-002"},
	})
	require.NoError(t, err)

	assert.Empty(t, flashes.messages)
}

func TestRecorderFlashTexts(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())
	flashes := &memoryFlashes{}
	recorder := NewActivityRecorder(dispatcher, flashes, zap.NewNop())
	recorder.RegisterHandlers()

	events := []Event{
		{Type: EventTicketCreated, SessionID: "sid", Payload: TicketCreatedPayload{TicketNumber: "TKT-003"}},
		{Type: EventTicketUpdated, SessionID: "sid", Payload: TicketUpdatedPayload{TicketNumber: "TKT-003"}},
		{Type: EventTicketDeleted, SessionID: "sid", Payload: TicketDeletedPayload{TicketNumber: "TKT-003"}},
		{Type: EventUserDeleted, SessionID: "sid", Payload: UserDeletedPayload{UserID: 4, Name: "Dave"}},
	}
	for _, evt := range events {
		require.NoError(t, dispatcher.Publish(context.Background(), evt))
	}

	assert.Equal(t, []string{
		"Created ticket TKT-003",
		"Ticket TKT-003 updated",
		"Ticket TKT-003 deleted",
		"User Dave deleted",
	}, flashes.messages["sid"])
}
