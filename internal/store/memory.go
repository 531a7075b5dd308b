package store

import (
	"errors"
	"sync"

	"github.com/ZakariaBalali/Blackjack/internal/game"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// MemoryStore is an in-memory implementation of session storage.
type MemoryStore struct {
	sessions map[string]*game.Game
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*game.Game),
	}
}

// SaveSession saves a session to the store.
func (s *MemoryStore) SaveSession(g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[g.ID] = g
	return nil
}

// GetSession retrieves a session by ID.
func (s *MemoryStore) GetSession(id string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return g, nil
}

// DeleteSession removes a session from the store.
func (s *MemoryStore) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// ListSessions returns all sessions in the store.
func (s *MemoryStore) ListSessions() ([]*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*game.Game, 0, len(s.sessions))
	for _, g := range s.sessions {
		sessions = append(sessions, g)
	}
	return sessions, nil
}
