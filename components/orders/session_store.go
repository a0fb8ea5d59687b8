package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SessionStore keeps one ViewState per open order list, keyed by session id.
// Each session behaves like its own Controller; the store serializes access.
type SessionStore struct {
	store *Store
	mu    sync.RWMutex
	data  map[string]ViewState
}

// NewSessionStore creates an empty session store over the given records.
func NewSessionStore(store *Store) *SessionStore {
	if store == nil {
		store = DefaultStore()
	}
	return &SessionStore{
		store: store,
		data:  make(map[string]ViewState),
	}
}

// Records returns the store shared by every session.
func (s *SessionStore) Records() *Store {
	return s.store
}

// Open starts a session with the default state and returns its id and first snapshot.
func (s *SessionStore) Open(ctx context.Context) (string, Snapshot, error) {
	id := uuid.NewString()
	snap, err := s.OpenWithID(ctx, id)
	return id, snap, err
}

// OpenWithID starts a session under a caller chosen id.
func (s *SessionStore) OpenWithID(_ context.Context, id string) (Snapshot, error) {
	if id == "" {
		return Snapshot{}, ErrSessionIDRequired
	}
	state := DefaultViewState()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[id]; exists {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSessionExists, id)
	}
	s.data[id] = state
	return Derive(s.store, state), nil
}

// State returns the raw view state of a session.
func (s *SessionStore) State(_ context.Context, id string) (ViewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.data[id]
	if !ok {
		return ViewState{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return state, nil
}

// Get returns the current snapshot of a session.
func (s *SessionStore) Get(_ context.Context, id string) (Snapshot, error) {
	s.mu.RLock()
	state, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return Derive(s.store, state), nil
}

// Apply runs ev against the session state and stores the result.
func (s *SessionStore) Apply(_ context.Context, id string, ev Event) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.data[id]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	next, err := state.Apply(s.store, ev)
	if err != nil {
		return Snapshot{}, err
	}
	s.data[id] = next
	return Derive(s.store, next), nil
}

// Close drops a session. Unknown ids are ignored.
func (s *SessionStore) Close(_ context.Context, id string) {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
}

// Len returns the number of open sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
