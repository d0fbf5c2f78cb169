// Package tickets holds the fetched ticket snapshot for a page view and the
// filter/sort engine that derives ordered sub-lists from it. The engine
// never mutates the snapshot; it returns new slices referencing the same
// records.
package tickets

import (
	"strconv"
	"sync"

	"github.com/spec-kit/helpdesk-console/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

// Store owns the most recently fetched ticket list per session, so
// concurrent browsers never see each other's snapshot. A list re-fetch or
// local mutation always fully replaces or updates the session's snapshot
// before any dependent view is derived; last write wins.
type Store struct {
	mu        sync.Mutex
	snapshots map[string][]domain.Ticket
}

// NewStore builds an empty snapshot store.
func NewStore() *Store {
	return &Store{snapshots: make(map[string][]domain.Ticket)}
}

// Replace swaps in a freshly fetched snapshot for the session.
func (s *Store) Replace(sessionID string, tickets []domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[sessionID] = tickets
}

// All returns the session's current snapshot.
func (s *Store) All(sessionID string) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.snapshots[sessionID]
	out := make([]domain.Ticket, len(snapshot))
	copy(out, snapshot)
	return out
}

// Len reports the session's snapshot size.
func (s *Store) Len(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots[sessionID])
}

// Get returns the ticket with the given id from the session's snapshot. A
// miss is a user-visible not-found, no network round trip is attempted.
func (s *Store) Get(sessionID string, id int) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.snapshots[sessionID] {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": strconv.Itoa(id)})
}

// Update replaces the stored copy of a ticket in place.
func (s *Store) Update(sessionID string, ticket domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.snapshots[sessionID]
	for i := range snapshot {
		if snapshot[i].ID == ticket.ID {
			snapshot[i] = ticket
			return nil
		}
	}
	return apperrors.NewNotFound("ticket", map[string]any{"id": strconv.Itoa(ticket.ID)})
}

// Remove deletes a ticket from the session's snapshot.
func (s *Store) Remove(sessionID string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.snapshots[sessionID]
	for i := range snapshot {
		if snapshot[i].ID == id {
			s.snapshots[sessionID] = append(snapshot[:i], snapshot[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFound("ticket", map[string]any{"id": strconv.Itoa(id)})
}

// Drop discards a session's snapshot, called when the session ends.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, sessionID)
}
