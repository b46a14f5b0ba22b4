// Package state holds the client-side single source of truth for each
// record collection. One Store per entity type; every operation wraps one
// record store call in a loading transition and reconciles the result
// into the in-memory list. Operations never return transport errors to
// the caller: failures land in the error slot and views render it.
package state

import (
	"context"
	"sync"

	"amparo/internal/store"
)

// Client is the narrow CRUD contract a Store needs. *store.Collection[T]
// satisfies it; tests substitute fakes.
type Client[T store.Record] interface {
	ListAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, fields map[string]any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot is a copy of a store's state at one point in time.
type Snapshot[T any] struct {
	Items   []T
	Loading bool
	Err     string
	Current *T
}

// Store is the state container for one collection.
type Store[T store.Record] struct {
	mu      sync.Mutex
	client  Client[T]
	items   []T
	loading bool
	err     error
	current *T
}

// NewStore builds an empty container around a record store client.
func NewStore[T store.Record](client Client[T]) *Store[T] {
	return &Store[T]{client: client}
}

// FetchAll replaces the list with the store's full collection.
func (s *Store[T]) FetchAll(ctx context.Context) {
	s.begin()
	items, err := s.client.ListAll(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return
	}
	s.items = items
}

// FetchOne loads a single record into the current slot.
func (s *Store[T]) FetchOne(ctx context.Context, id string) {
	s.begin()
	item, err := s.client.GetByID(ctx, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return
	}
	s.current = &item
}

// Create persists a new record and appends the store's version of it to
// the list. The store is trusted to assign a fresh id; no de-duplication.
func (s *Store[T]) Create(ctx context.Context, item T) (T, bool) {
	s.begin()
	created, err := s.client.Create(ctx, item)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		var zero T
		return zero, false
	}
	s.items = append(s.items, created)
	return created, true
}

// Update patches a record and replaces the matching list entry. A miss
// leaves the list unchanged. The current slot is refreshed when it holds
// the same record.
func (s *Store[T]) Update(ctx context.Context, id string, fields map[string]any) (T, bool) {
	s.begin()
	updated, err := s.client.Update(ctx, id, fields)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		var zero T
		return zero, false
	}
	for i := range s.items {
		if s.items[i].RecordID() == updated.RecordID() {
			s.items[i] = updated
			break
		}
	}
	if s.current != nil && (*s.current).RecordID() == updated.RecordID() {
		s.current = &updated
	}
	return updated, true
}

// Delete removes a record from the store and filters it out of the list.
func (s *Store[T]) Delete(ctx context.Context, id string) bool {
	s.begin()
	err := s.client.Delete(ctx, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		return false
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.RecordID() != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	if s.current != nil && (*s.current).RecordID() == id {
		s.current = nil
	}
	return true
}

// ClearError clears the error slot, e.g. when the user dismisses a
// message or edits a field after a failed submission.
func (s *Store[T]) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}

// SetCurrent selects (or deselects, with nil) a record.
func (s *Store[T]) SetCurrent(item *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = item
}

// Snapshot returns a copy of the container state for rendering.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot[T]{
		Items:   append([]T(nil), s.items...),
		Loading: s.loading,
	}
	if s.err != nil {
		snap.Err = s.err.Error()
	}
	if s.current != nil {
		cur := *s.current
		snap.Current = &cur
	}
	return snap
}

// LastError exposes the typed error behind Snapshot.Err.
func (s *Store[T]) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store[T]) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()
}

// fail records a local failure without a store round trip.
func (s *Store[T]) fail(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = err
	s.mu.Unlock()
}
