// Package db persists settled round results and per-session statistics to a
// local sqlite file. The live bankroll is deliberately not persisted: a
// session lives and dies in memory, the database is an audit trail.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ZakariaBalali/Blackjack/internal/game"
)

type Database struct {
	db     *sql.DB
	logger *log.Logger
}

// RoundResult is one settled hand as stored.
type RoundResult struct {
	SessionID string    `json:"sessionId"`
	HandIndex int       `json:"handIndex"`
	Bet       int       `json:"bet"`
	Outcome   string    `json:"outcome"`
	Blackjack bool      `json:"blackjack"`
	Amount    int       `json:"amount"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStats aggregates a session's settled hands.
type SessionStats struct {
	SessionID   string    `json:"sessionId"`
	HandsPlayed int       `json:"handsPlayed"`
	HandsWon    int       `json:"handsWon"`
	HandsLost   int       `json:"handsLost"`
	HandsDrawn  int       `json:"handsDrawn"`
	Blackjacks  int       `json:"blackjacks"`
	TotalBets   int       `json:"totalBets"`
	Net         int       `json:"net"`
	LastPlayed  time.Time `json:"lastPlayed"`
}

// NewDatabase opens (or creates) the sqlite file at path and ensures the
// schema exists.
func NewDatabase(path string, logger *log.Logger) (*Database, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &Database{db: db, logger: logger}, nil
}

// initTables creates the necessary tables if they don't exist.
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			starting_balance INTEGER NOT NULL,
			final_balance INTEGER NOT NULL,
			ended INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating sessions table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS round_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			hand_index INTEGER NOT NULL,
			bet INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			blackjack INTEGER NOT NULL DEFAULT 0,
			amount INTEGER NOT NULL,
			balance INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions (id)
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating round_results table: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// SaveSession upserts a session's bookkeeping row.
func (d *Database) SaveSession(g *game.Game) error {
	_, err := d.db.Exec(`
		INSERT INTO sessions (id, created_at, updated_at, starting_balance, final_balance, ended)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at,
			final_balance = excluded.final_balance, ended = excluded.ended
	`, g.ID, g.CreatedAt, g.UpdatedAt, g.Rules().StartingBalance, g.Player().Balance(), boolToInt(g.Ended()))
	return err
}

// SaveRoundResults stores every settled hand of a round.
func (d *Database) SaveRoundResults(sessionID string, bet int, results []game.HandResult, balance int) error {
	now := time.Now()
	for _, result := range results {
		_, err := d.db.Exec(
			"INSERT INTO round_results (session_id, hand_index, bet, outcome, blackjack, amount, balance, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			sessionID, result.HandIndex, bet, string(result.Outcome), boolToInt(result.Blackjack), result.Amount, balance, now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetSessionResults returns a session's settled hands, oldest first.
func (d *Database) GetSessionResults(sessionID string) ([]RoundResult, error) {
	rows, err := d.db.Query(
		"SELECT session_id, hand_index, bet, outcome, blackjack, amount, balance, created_at FROM round_results WHERE session_id = ? ORDER BY id",
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RoundResult
	for rows.Next() {
		var r RoundResult
		var blackjack int
		if err := rows.Scan(&r.SessionID, &r.HandIndex, &r.Bet, &r.Outcome, &blackjack, &r.Amount, &r.Balance, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Blackjack = blackjack != 0
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetSessionStats aggregates a session's settled hands.
func (d *Database) GetSessionStats(sessionID string) (*SessionStats, error) {
	stats := &SessionStats{SessionID: sessionID}

	err := d.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(bet), 0), COALESCE(SUM(amount), 0) FROM round_results WHERE session_id = ?",
		sessionID,
	).Scan(&stats.HandsPlayed, &stats.TotalBets, &stats.Net)
	if err != nil {
		return nil, err
	}

	counts := map[string]*int{
		"win":  &stats.HandsWon,
		"loss": &stats.HandsLost,
		"draw": &stats.HandsDrawn,
	}
	for outcome, target := range counts {
		err = d.db.QueryRow(
			"SELECT COUNT(*) FROM round_results WHERE session_id = ? AND outcome = ?",
			sessionID, outcome,
		).Scan(target)
		if err != nil {
			d.logger.Error("counting outcomes", "outcome", outcome, "error", err)
		}
	}

	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM round_results WHERE session_id = ? AND blackjack = 1",
		sessionID,
	).Scan(&stats.Blackjacks)
	if err != nil {
		d.logger.Error("counting blackjacks", "error", err)
	}

	var last sql.NullTime
	err = d.db.QueryRow(
		"SELECT MAX(created_at) FROM round_results WHERE session_id = ?",
		sessionID,
	).Scan(&last)
	if err != nil && err != sql.ErrNoRows {
		d.logger.Error("reading last played", "error", err)
	}
	if last.Valid {
		stats.LastPlayed = last.Time
	}

	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
