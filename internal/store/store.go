package store

import "github.com/ZakariaBalali/Blackjack/internal/game"

// Store defines the interface for live session storage. Sessions are
// in-memory aggregates; only their settled results are persisted elsewhere.
type Store interface {
	// SaveSession saves a session to the store
	SaveSession(g *game.Game) error

	// GetSession retrieves a session by ID
	GetSession(id string) (*game.Game, error)

	// DeleteSession removes a session from the store
	DeleteSession(id string) error

	// ListSessions returns all sessions in the store
	ListSessions() ([]*game.Game, error)
}
