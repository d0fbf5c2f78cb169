package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// FlashWriter appends a transient notification line for a session. The
// session store implements this.
type FlashWriter interface {
	PushFlash(ctx context.Context, sessionID, message string) error
}

// ActivityRecorder turns ticket mutations into toast notifications for the
// originating session.
type ActivityRecorder struct {
	dispatcher Dispatcher
	flashes    FlashWriter
	logger     *zap.Logger
}

// NewActivityRecorder creates the recorder.
func NewActivityRecorder(dispatcher Dispatcher, flashes FlashWriter, logger *zap.Logger) *ActivityRecorder {
	return &ActivityRecorder{dispatcher: dispatcher, flashes: flashes, logger: logger}
}

// RegisterHandlers subscribes to events.
func (r *ActivityRecorder) RegisterHandlers() {
	if r.dispatcher == nil {
		return
	}
	r.dispatcher.Subscribe(EventTicketCreated, r.handleTicketCreated)
	r.dispatcher.Subscribe(EventTicketStatusChanged, r.handleTicketStatusChanged)
	r.dispatcher.Subscribe(EventTicketUpdated, r.handleTicketUpdated)
	r.dispatcher.Subscribe(EventTicketDeleted, r.handleTicketDeleted)
	r.dispatcher.Subscribe(EventUserDeleted, r.handleUserDeleted)
}

func (r *ActivityRecorder) handleTicketCreated(ctx context.Context, event Event) error {
	payload, ok := event.Payload.(TicketCreatedPayload)
	if !ok {
		return nil
	}
	return r.push(ctx, event, fmt.Sprintf("Created ticket %s", payload.TicketNumber))
}

func (r *ActivityRecorder) handleTicketStatusChanged(ctx context.Context, event Event) error {
	payload, ok := event.Payload.(TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	return r.push(ctx, event, fmt.Sprintf("Ticket %s moved to %s", payload.TicketNumber, payload.NewStatus))
}

func (r *ActivityRecorder) handleTicketUpdated(ctx context.Context, event Event) error {
	payload, ok := event.Payload.(TicketUpdatedPayload)
	if !ok {
		return nil
	}
	return r.push(ctx, event, fmt.Sprintf("Ticket %s updated", payload.TicketNumber))
}

func (r *ActivityRecorder) handleTicketDeleted(ctx context.Context, event Event) error {
	payload, ok := event.Payload.(TicketDeletedPayload)
	if !ok {
		return nil
	}
	return r.push(ctx, event, fmt.Sprintf("Ticket %s deleted", payload.TicketNumber))
}

func (r *ActivityRecorder) handleUserDeleted(ctx context.Context, event Event) error {
	payload, ok := event.Payload.(UserDeletedPayload)
	if !ok {
		return nil
	}
	return r.push(ctx, event, fmt.Sprintf("User %s deleted", payload.Name))
}

func (r *ActivityRecorder) push(ctx context.Context, event Event, message string) error {
	if event.SessionID == "" {
		return nil
	}
	if err := r.flashes.PushFlash(ctx, event.SessionID, message); err != nil {
		r.logger.Warn("flash push failed", zap.String("session_id", event.SessionID), zap.Error(err))
	}
	return nil
}
