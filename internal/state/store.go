package state

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Listener receives the state produced by each dispatch.
type Listener func(State)

// Store owns the client state. Dispatch is serialized so every action is
// fully applied before the next one.
type Store struct {
	mu        sync.Mutex
	state     State
	nextID    int
	listeners map[int]Listener
}

// New creates a store starting from Initial(token).
func New(token string) *Store {
	return &Store{
		state:     Initial(token),
		listeners: make(map[int]Listener),
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the current state and notifies listeners with the result.
// Listeners run after the lock is released and may dispatch themselves.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	log.Debug().Str("action", a.Type()).Msg("dispatched")
	for _, l := range listeners {
		l(next)
	}
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
