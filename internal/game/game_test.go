package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g := NewGame(DefaultRules())

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, 20, g.Player().Balance())
	assert.Equal(t, DefaultDecks*52, g.Shoe().Size())
	assert.Nil(t, g.Round())
	assert.True(t, g.CanContinue())
	assert.False(t, g.Ended())
}

func TestGamePlaysAFullRound(t *testing.T) {
	g := NewGame(DefaultRules())

	require.NoError(t, g.StartRound(5))
	require.NotNil(t, g.Round())
	assert.Equal(t, 4, DefaultDecks*52-g.Shoe().Remaining(), "four cards dealt")

	// Stand whichever hand is still open, then run the dealer out.
	if g.Round().Phase() == PhasePlayerTurn {
		require.NoError(t, g.Apply(DecisionStand))
	}
	results, err := g.FinishDealerAndSettle()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, PhaseSettled, g.Round().Phase())
}

func TestStartRoundGuards(t *testing.T) {
	g := NewGame(DefaultRules())
	require.NoError(t, g.StartRound(5))

	if g.Round().Phase() == PhasePlayerTurn {
		err := g.StartRound(5)
		assert.ErrorIs(t, err, ErrRoundInProgress)
	}

	g.End()
	err := g.StartRound(5)
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestApplyWithoutRound(t *testing.T) {
	g := NewGame(DefaultRules())
	assert.ErrorIs(t, g.Apply(DecisionHit), ErrNoRound)

	_, err := g.FinishDealerAndSettle()
	assert.ErrorIs(t, err, ErrNoRound)
}

func TestShoeExhaustionEndsSession(t *testing.T) {
	rules := DefaultRules()
	rules.Decks = 0
	g := NewGame(rules)

	err := g.StartRound(5)
	require.ErrorIs(t, err, ErrShoeExhausted)
	assert.True(t, g.Ended())
	assert.False(t, g.CanContinue())

	err = g.StartRound(5)
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestShoeIsNeverReplenished(t *testing.T) {
	rules := DefaultRules()
	rules.Decks = 1
	g := NewGame(rules)

	before := g.Shoe().Remaining()
	require.NoError(t, g.StartRound(5))
	if g.Round().Phase() == PhasePlayerTurn {
		require.NoError(t, g.Apply(DecisionStand))
	}
	_, err := g.FinishDealerAndSettle()
	require.NoError(t, err)

	assert.Less(t, g.Shoe().Remaining(), before, "every round draws the same shoe down")
	assert.Equal(t, 52, g.Shoe().Size(), "no cards come back")
}

func TestCanContinueNeedsMinimumBet(t *testing.T) {
	rules := DefaultRules()
	rules.StartingBalance = 0
	g := NewGame(rules)

	assert.False(t, g.CanContinue())
	assert.False(t, g.Ended(), "a broke player is not the same as a closed session")
}
