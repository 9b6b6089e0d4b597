package app

import (
	"context"
	"fmt"
	"sync"

	"uncharted_escape/internal/domain"
)

// Sessions serialises load -> reduce -> save per session id within this process.
// The lock is never held across an external call.
type Sessions struct {
	store domain.SessionStore
	seed  func() []domain.Destination

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessions(store domain.SessionStore, seed func() []domain.Destination) *Sessions {
	if seed == nil {
		seed = domain.SeedDestinations
	}
	return &Sessions{store: store, seed: seed, locks: map[string]*sessionLock{}}
}

func (s *Sessions) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func (s *Sessions) load(ctx context.Context, id string) (domain.State, error) {
	st, ok, err := s.store.Load(ctx, id)
	if err != nil {
		return domain.State{}, fmt.Errorf("%w: load %s: %v", ErrSessionStore, id, err)
	}
	if !ok {
		return NewState(s.seed()), nil
	}
	return st, nil
}

// Get returns the session state, seeding a fresh one for unknown ids.
func (s *Sessions) Get(ctx context.Context, id string) (domain.State, error) {
	unlock := s.lock(id)
	defer unlock()
	return s.load(ctx, id)
}

// Update applies fn to the latest state and saves whatever state fn returns,
// including on error: reducers that abort still record their redirect.
func (s *Sessions) Update(ctx context.Context, id string, fn func(domain.State) (domain.State, error)) (domain.State, error) {
	unlock := s.lock(id)
	defer unlock()

	st, err := s.load(ctx, id)
	if err != nil {
		return domain.State{}, err
	}
	next, ferr := fn(st)
	if err := s.store.Save(ctx, id, next); err != nil {
		return st, fmt.Errorf("%w: save %s: %v", ErrSessionStore, id, err)
	}
	return next, ferr
}

func (s *Sessions) Drop(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrSessionStore, id, err)
	}
	return nil
}
