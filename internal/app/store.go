package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hylla/syssla/internal/domain"
)

// Phase represents the visible fetch state of the store.
type Phase string

// Phase values of the refresh state machine. Terminal states are not sticky:
// every Refresh call re-enters PhaseLoading.
const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseFailure Phase = "failure"
)

// IDGenerator returns unique identifiers for new items.
type IDGenerator func() string

// Store holds the authoritative in-memory todo collection and the active
// filter, computes the derived views, and keeps local state reconciled with an
// optional remote collection endpoint.
//
// All state mutation is serialized through one mutex; remote calls run outside
// it and their completions take the lock on arrival. Responses for distinct
// items therefore land in arrival order, and the last-arriving response wins
// for a given id.
type Store struct {
	mu       sync.Mutex
	remote   Remote
	idGen    IDGenerator
	items    domain.Collection
	filter   domain.Filter
	phase    Phase
	phaseErr error
	revision uint64
	memo     filteredMemo
	subs     map[int]func()
	nextSub  int
}

// filteredMemo caches the derived filtered view keyed on the
// (collection revision, filter) fingerprint.
type filteredMemo struct {
	valid    bool
	revision uint64
	filter   domain.Filter
	items    []domain.Item
}

// NewStore constructs a store. A nil remote selects the local variant; seed
// items pre-populate the collection (mock seed for the local variant).
func NewStore(remote Remote, idGen IDGenerator, seed ...domain.Item) *Store {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	return &Store{
		remote: remote,
		idGen:  idGen,
		items:  domain.NewCollection(seed...),
		filter: domain.FilterAll,
		phase:  PhaseIdle,
		subs:   map[int]func(){},
	}
}

// Subscribe registers a change-notification callback and returns its
// unsubscribe func. Callbacks fire after every state change, outside the
// store lock.
func (s *Store) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify invokes the current subscriber set outside the lock.
func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Filter returns the active filter.
func (s *Store) Filter() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetFilter replaces the active filter. Pure local state change.
func (s *Store) SetFilter(f domain.Filter) {
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	s.notify()
}

// Items returns a copy of the full ordered collection.
func (s *Store) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Items()
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Get(id)
}

// FilteredItems returns the derived view for the active filter. The view is
// memoized on the (revision, filter) fingerprint, so unrelated reads do not
// re-derive it.
func (s *Store) FilteredItems() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.memo.valid && s.memo.revision == s.revision && s.memo.filter == s.filter {
		return s.memo.items
	}
	s.memo = filteredMemo{
		valid:    true,
		revision: s.revision,
		filter:   s.filter,
		items:    s.items.Filtered(s.filter),
	}
	return s.memo.items
}

// Stats computes the aggregate counters for the full collection.
func (s *Store) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Stats()
}

// Phase returns the visible fetch phase.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the failure behind PhaseFailure, nil otherwise.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phaseErr
}

// Create appends a new uncompleted item with a fresh id. Empty text is
// tolerated and produces an empty item. The networked variant adds nothing
// locally until the endpoint confirms, then upserts whatever the server
// returned.
func (s *Store) Create(ctx context.Context, text string) (domain.Item, error) {
	item, err := domain.NewItem(s.idGen(), text)
	if err != nil {
		return domain.Item{}, err
	}

	if s.remote == nil {
		s.mu.Lock()
		appendErr := s.items.Append(item)
		if appendErr == nil {
			s.revision++
		}
		s.mu.Unlock()
		if appendErr != nil {
			return domain.Item{}, appendErr
		}
		s.notify()
		return item, nil
	}

	created, err := s.remote.CreateTodo(ctx, item)
	if err != nil {
		// Nothing was added optimistically, so there is nothing to roll back.
		return domain.Item{}, err
	}
	s.mu.Lock()
	s.items.Upsert(created)
	s.revision++
	s.mu.Unlock()
	s.notify()
	return created, nil
}

// Update upserts the item locally right away. The networked variant then
// persists it and upserts whatever the server returns; a failed request leaves
// the optimistic write in place (no rollback).
func (s *Store) Update(ctx context.Context, item domain.Item) (domain.Item, error) {
	if strings.TrimSpace(item.ID) == "" {
		return domain.Item{}, domain.ErrInvalidID
	}

	s.mu.Lock()
	s.items.Upsert(item)
	s.revision++
	s.mu.Unlock()
	s.notify()

	if s.remote == nil {
		return item, nil
	}
	updated, err := s.remote.UpdateTodo(ctx, item)
	if err != nil {
		return item, err
	}
	s.mu.Lock()
	s.items.Upsert(updated)
	s.revision++
	s.mu.Unlock()
	s.notify()
	return updated, nil
}

// Remove deletes the item with the given id. The networked variant deletes on
// the endpoint first and only touches local state on a confirmed success,
// removing by the originally targeted id regardless of the returned payload.
func (s *Store) Remove(ctx context.Context, id string) error {
	if s.remote != nil {
		if _, err := s.remote.DeleteTodo(ctx, id); err != nil {
			return err
		}
	}

	s.mu.Lock()
	removed := s.items.RemoveByID(id)
	if removed {
		s.revision++
	}
	s.mu.Unlock()
	if removed {
		s.notify()
		return nil
	}
	if s.remote == nil {
		return ErrNotFound
	}
	return nil
}

// RemoveAt deletes the item at the given position of the full collection.
func (s *Store) RemoveAt(ctx context.Context, pos int) error {
	s.mu.Lock()
	item, ok := s.items.At(pos)
	s.mu.Unlock()
	if !ok {
		return domain.ErrInvalidPosition
	}
	return s.Remove(ctx, item.ID)
}

// Move reorders the collection. Reordering stays local in both variants and
// is never sent to the remote.
func (s *Store) Move(from []int, to int) error {
	s.mu.Lock()
	err := s.items.Move(from, to)
	if err == nil {
		s.revision++
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// Refresh re-fetches the collection from the remote. The phase is loading
// while the request is pending; success replaces the items wholesale, a
// transport failure leaves them unchanged, and a decode failure degrades to a
// successful empty result instead of a visible error.
func (s *Store) Refresh(ctx context.Context) error {
	if s.remote == nil {
		s.mu.Lock()
		s.phase = PhaseSuccess
		s.phaseErr = nil
		s.mu.Unlock()
		s.notify()
		return nil
	}

	s.mu.Lock()
	s.phase = PhaseLoading
	s.phaseErr = nil
	s.mu.Unlock()
	s.notify()

	fetched, err := s.remote.ListTodos(ctx)
	s.mu.Lock()
	switch {
	case err == nil:
		s.items = domain.NewCollection(fetched...)
		s.revision++
		s.phase = PhaseSuccess
	case errors.Is(err, ErrDecode):
		s.items = domain.Collection{}
		s.revision++
		s.phase = PhaseSuccess
		err = nil
	default:
		s.phase = PhaseFailure
		s.phaseErr = err
	}
	s.mu.Unlock()
	s.notify()
	return err
}
