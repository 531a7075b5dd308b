package game

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Rules are the table parameters a session plays under.
type Rules struct {
	Decks           int `json:"decks"`
	StartingBalance int `json:"startingBalance"`
	MinBet          int `json:"minBet"`
	MaxBet          int `json:"maxBet"`
}

// DefaultRules returns the house table: a six-deck shoe, a bankroll of 20,
// and bets of 1 through 10.
func DefaultRules() Rules {
	return Rules{
		Decks:           DefaultDecks,
		StartingBalance: 20,
		MinBet:          1,
		MaxBet:          10,
	}
}

var (
	ErrSessionEnded    = errors.New("session has ended")
	ErrRoundInProgress = errors.New("a round is already in progress")
	ErrNoRound         = errors.New("no round in progress")
)

// Game is one player's session at the table: the player, the dealer, the
// single shoe that lasts the whole session, and the round in progress. The
// shoe is shuffled every round but never rebuilt, so it monotonically empties
// until exhausted.
type Game struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	rules  Rules
	player *Player
	dealer *Dealer
	shoe   *Shoe
	round  *Round
	ended  bool
}

// NewGame creates a session under the given rules.
func NewGame(rules Rules) *Game {
	now := time.Now()
	return &Game{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		rules:     rules,
		player:    NewPlayer(rules.StartingBalance),
		dealer:    NewDealer(),
		shoe:      NewShoe(rules.Decks),
	}
}

// Rules returns the table parameters.
func (g *Game) Rules() Rules {
	return g.rules
}

// Player returns the session's player.
func (g *Game) Player() *Player {
	return g.player
}

// Dealer returns the session's dealer.
func (g *Game) Dealer() *Dealer {
	return g.dealer
}

// Shoe returns the session's shoe.
func (g *Game) Shoe() *Shoe {
	return g.shoe
}

// Round returns the round in progress, or nil before the first round.
func (g *Game) Round() *Round {
	return g.round
}

// StartRound begins a new round with the given bet. Fails if the session has
// ended or the previous round has not settled. Shoe exhaustion during the
// deal ends the session.
func (g *Game) StartRound(bet int) error {
	if g.ended {
		return ErrSessionEnded
	}
	if g.round != nil && g.round.Phase() != PhaseSettled {
		return ErrRoundInProgress
	}

	round := NewRound(g.player, g.dealer, g.shoe, g.rules)
	if err := round.Start(bet); err != nil {
		if errors.Is(err, ErrShoeExhausted) {
			g.ended = true
		}
		return err
	}

	g.round = round
	g.touch()
	return nil
}

// Apply plays one decision on the round in progress. Shoe exhaustion ends the
// session; the aborted round stays unsettled.
func (g *Game) Apply(decision Decision) error {
	if g.ended {
		return ErrSessionEnded
	}
	if g.round == nil {
		return ErrNoRound
	}

	if err := g.round.Apply(decision); err != nil {
		if errors.Is(err, ErrShoeExhausted) {
			g.ended = true
		}
		return err
	}

	g.touch()
	return nil
}

// FinishDealerAndSettle runs the dealer's forced play to completion and
// settles every player hand. Used by drivers that do not pace the dealer's
// draws one at a time.
func (g *Game) FinishDealerAndSettle() ([]HandResult, error) {
	if g.ended {
		return nil, ErrSessionEnded
	}
	if g.round == nil {
		return nil, ErrNoRound
	}

	if err := g.round.RevealDealer(); err != nil {
		return nil, err
	}
	for g.round.DealerShouldHit() {
		if err := g.round.HitDealer(); err != nil {
			if errors.Is(err, ErrShoeExhausted) {
				g.ended = true
			}
			return nil, err
		}
	}

	results, err := g.round.Settle()
	if err != nil {
		return nil, err
	}
	g.touch()
	return results, nil
}

// CanContinue reports whether another round can be started: the session is
// still open and the bankroll covers at least the minimum bet.
func (g *Game) CanContinue() bool {
	return !g.ended && g.player.Balance() >= g.rules.MinBet
}

// End closes the session.
func (g *Game) End() {
	g.ended = true
	g.touch()
}

// Ended reports whether the session is closed.
func (g *Game) Ended() bool {
	return g.ended
}

func (g *Game) touch() {
	g.UpdatedAt = time.Now()
}
