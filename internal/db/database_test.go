package db

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaBalali/Blackjack/internal/game"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	d, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"), log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestSaveSessionUpsert(t *testing.T) {
	d := newTestDatabase(t)
	g := game.NewGame(game.DefaultRules())

	require.NoError(t, d.SaveSession(g))
	g.End()
	require.NoError(t, d.SaveSession(g), "saving twice updates the same row")

	var ended int
	err := d.db.QueryRow("SELECT ended FROM sessions WHERE id = ?", g.ID).Scan(&ended)
	require.NoError(t, err)
	assert.Equal(t, 1, ended)

	var count int
	require.NoError(t, d.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRoundResultsRoundTrip(t *testing.T) {
	d := newTestDatabase(t)

	results := []game.HandResult{
		{HandIndex: 0, Outcome: game.OutcomeWin, Blackjack: true, Amount: 15},
		{HandIndex: 1, Outcome: game.OutcomeLoss, Amount: -10},
	}
	require.NoError(t, d.SaveRoundResults("s1", 10, results, 25))

	stored, err := d.GetSessionResults("s1")
	require.NoError(t, err)
	require.Len(t, stored, 2)

	assert.Equal(t, "win", stored[0].Outcome)
	assert.True(t, stored[0].Blackjack)
	assert.Equal(t, 15, stored[0].Amount)
	assert.Equal(t, 25, stored[0].Balance)
	assert.Equal(t, "loss", stored[1].Outcome)
	assert.False(t, stored[1].Blackjack)
	assert.Equal(t, 1, stored[1].HandIndex)
}

func TestGetSessionResultsIsolation(t *testing.T) {
	d := newTestDatabase(t)

	require.NoError(t, d.SaveRoundResults("mine", 5, []game.HandResult{{Outcome: game.OutcomeDraw}}, 20))
	require.NoError(t, d.SaveRoundResults("theirs", 5, []game.HandResult{{Outcome: game.OutcomeWin, Amount: 5}}, 25))

	stored, err := d.GetSessionResults("mine")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "draw", stored[0].Outcome)
}

func TestGetSessionStats(t *testing.T) {
	d := newTestDatabase(t)

	require.NoError(t, d.SaveRoundResults("s1", 10, []game.HandResult{
		{HandIndex: 0, Outcome: game.OutcomeWin, Blackjack: true, Amount: 15},
	}, 35))
	require.NoError(t, d.SaveRoundResults("s1", 5, []game.HandResult{
		{HandIndex: 0, Outcome: game.OutcomeLoss, Amount: -5},
		{HandIndex: 1, Outcome: game.OutcomeDraw},
	}, 30))

	stats, err := d.GetSessionStats("s1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.HandsPlayed)
	assert.Equal(t, 1, stats.HandsWon)
	assert.Equal(t, 1, stats.HandsLost)
	assert.Equal(t, 1, stats.HandsDrawn)
	assert.Equal(t, 1, stats.Blackjacks)
	assert.Equal(t, 20, stats.TotalBets)
	assert.Equal(t, 10, stats.Net)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestGetSessionStatsEmpty(t *testing.T) {
	d := newTestDatabase(t)

	stats, err := d.GetSessionStats("nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.HandsPlayed)
	assert.True(t, stats.LastPlayed.IsZero())
}
