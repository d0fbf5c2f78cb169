// Package handlers holds the fiber page and action handlers of the console.
// Handlers fetch from the backend, derive view models through the pure
// packages and render; they hold no state of their own beyond the local
// ticket snapshot.
package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/render"
	"github.com/spec-kit/helpdesk-console/internal/view"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

// chrome assembles the shared page frame for an authenticated view.
func chrome(title string, sess *domain.Session, flashes []string) view.Page {
	return view.Page{
		Title:   title,
		Profile: render.ProfileViewOf(sess.User),
		Admin:   sess.Admin,
		Flashes: flashes,
	}
}

// placeholder maps a fetch failure onto the section placeholder text.
func placeholder(err error) string {
	return apperrors.ToDomainError(err).Message
}

// publish emits a console event. Event delivery is best effort; a failed
// notification never fails the action that triggered it.
func publish(ctx context.Context, d events.Dispatcher, eventType events.EventType, sessionID string, payload interface{}) {
	if d == nil {
		return
	}
	_ = d.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
