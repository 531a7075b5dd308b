package game

import (
	"errors"
	"fmt"
	"strings"
)

// Phase is where a round is in its lifecycle.
type Phase string

const (
	PhaseBetting    Phase = "betting"    // Round created, no bet placed yet
	PhasePlayerTurn Phase = "playerTurn" // Player decisions across all hands
	PhaseDealerTurn Phase = "dealerTurn" // Forced dealer play
	PhaseSettled    Phase = "settled"    // Every hand compared and paid out
)

// Decision is a validated player action.
type Decision string

const (
	DecisionUnknown Decision = ""
	DecisionHit     Decision = "H"
	DecisionStand   Decision = "S"
	DecisionDouble  Decision = "D"
	DecisionSplit   Decision = "P"
)

// ParseDecision maps free-text input to a decision. Codes are case-insensitive
// and whitespace-trimmed; anything unrecognized is DecisionUnknown.
func ParseDecision(input string) Decision {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "H":
		return DecisionHit
	case "S":
		return DecisionStand
	case "D":
		return DecisionDouble
	case "P":
		return DecisionSplit
	default:
		return DecisionUnknown
	}
}

// Outcome is the settlement result of one player hand.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomeDraw Outcome = "draw"
)

// HandResult records how one player hand settled. Amount is the signed balance
// change: positive on a win, negative on a loss, zero on a draw.
type HandResult struct {
	HandIndex int     `json:"handIndex"`
	Outcome   Outcome `json:"outcome"`
	Blackjack bool    `json:"blackjack"`
	Amount    int     `json:"amount"`
}

// Dispatcher errors. Input-shaped problems (bad bet, illegal or unrecognized
// decision) are recovered by re-prompting and never mutate round state.
var (
	ErrInvalidBet           = errors.New("bet must be within table limits and affordable")
	ErrUnknownDecision      = errors.New("unrecognized play option")
	ErrDoubleDownNotAllowed = errors.New("double down requires exactly two cards")
	ErrInsufficientBalance  = errors.New("balance cannot cover a doubled bet")
	ErrSplitNotAllowed      = errors.New("split requires a two-card pair")
	ErrWrongPhase           = errors.New("action not legal in this phase")
)

// Round drives one round of blackjack: deal, the player decision loop across
// every hand, the dealer's forced play, and per-hand settlement. It mutates
// the player, dealer, and shoe it is given and keeps nothing else.
type Round struct {
	player *Player
	dealer *Dealer
	shoe   *Shoe
	rules  Rules

	phase    Phase
	turn     int
	revealed bool
	results  []HandResult
}

// NewRound creates a round over the session's player, dealer, and shoe.
func NewRound(player *Player, dealer *Dealer, shoe *Shoe, rules Rules) *Round {
	return &Round{
		player: player,
		dealer: dealer,
		shoe:   shoe,
		rules:  rules,
		phase:  PhaseBetting,
		turn:   1,
	}
}

// Phase returns the round's current phase.
func (r *Round) Phase() Phase {
	return r.phase
}

// Turn returns the display-only turn counter. It increments on every accepted
// decision and every dealer draw.
func (r *Round) Turn() int {
	return r.turn
}

// Results returns the per-hand settlement results, in hand order. Empty until
// the round settles.
func (r *Round) Results() []HandResult {
	return r.results
}

// ValidateBet checks a wager against the table limits and the bankroll.
func (r *Round) ValidateBet(amount int) error {
	if amount < r.rules.MinBet || amount > r.rules.MaxBet || amount > r.player.Balance() {
		return ErrInvalidBet
	}
	return nil
}

// Start begins the round: shuffle the shoe, reset both participants to a
// fresh hand, place the bet, and deal the starting cards. Moves to the player
// turn, skipping hands that are already resolved (a dealt natural).
func (r *Round) Start(bet int) error {
	if r.phase != PhaseBetting {
		return ErrWrongPhase
	}
	if err := r.ValidateBet(bet); err != nil {
		return err
	}

	r.shoe.Shuffle()
	r.player.ClearHands()
	r.dealer.ClearHands()
	r.player.setBet(bet)

	if err := r.dealStartingCards(); err != nil {
		return fmt.Errorf("dealing starting cards: %w", err)
	}

	r.phase = PhasePlayerTurn
	r.advancePastResolvedHands()
	return nil
}

// dealStartingCards deals alternately, player first, twice over. Exactly the
// dealer's second card goes in face down; that ordering is what keeps the
// hole card concealed.
func (r *Round) dealStartingCards() error {
	for i := 0; i < 2; i++ {
		playerCard, err := r.shoe.TakeCard()
		if err != nil {
			return err
		}
		r.player.AddCardToHand(playerCard)

		dealerCard, err := r.shoe.TakeCard()
		if err != nil {
			return err
		}
		if i == 1 {
			dealerCard.Flip()
		}
		r.dealer.AddCardToHand(dealerCard)
	}
	return nil
}

// Apply plays one validated decision on the player's active hand. Illegal
// decisions return a typed error without consuming a turn or mutating state.
// When the last hand resolves, the round moves to the dealer turn.
func (r *Round) Apply(decision Decision) error {
	if r.phase != PhasePlayerTurn {
		return ErrWrongPhase
	}

	switch decision {
	case DecisionHit:
		if err := r.player.Hit(r.shoe); err != nil {
			return fmt.Errorf("hit: %w", err)
		}

	case DecisionStand:
		r.player.Stand()

	case DecisionDouble:
		if r.player.ActiveHand().Size() != 2 {
			return ErrDoubleDownNotAllowed
		}
		if r.player.Bet()*2 > r.player.Balance() {
			return ErrInsufficientBalance
		}
		if err := r.player.DoubleDown(r.shoe); err != nil {
			return fmt.Errorf("double down: %w", err)
		}

	case DecisionSplit:
		if !r.player.CanSplit() {
			return ErrSplitNotAllowed
		}
		if err := r.player.SplitPairs(r.shoe); err != nil {
			return fmt.Errorf("split pairs: %w", err)
		}

	default:
		return ErrUnknownDecision
	}

	r.turn++
	r.advancePastResolvedHands()
	return nil
}

// handResolved reports whether a hand is done for the decision loop: bust,
// exactly 21, or stood.
func (r *Round) handResolved(handIndex int) bool {
	return r.player.IsBust(handIndex) ||
		r.player.HasTwentyOne(handIndex) ||
		r.player.Hands()[handIndex].Stood()
}

// advancePastResolvedHands walks forward while the active hand is resolved,
// entering the dealer turn once no hands remain.
func (r *Round) advancePastResolvedHands() {
	for r.handResolved(r.player.ActiveHandIndex()) {
		if !r.player.AdvanceToNextHand() {
			r.phase = PhaseDealerTurn
			return
		}
	}
}

// RevealDealer turns the dealer's hole card face up, once, at the start of
// the dealer turn.
func (r *Round) RevealDealer() error {
	if r.phase != PhaseDealerTurn {
		return ErrWrongPhase
	}
	if !r.revealed {
		r.dealer.TurnFaceDownCardsUp()
		r.revealed = true
	}
	return nil
}

// DealerShouldHit reports whether the dealer's forced play requires another
// card. Always false before the reveal or outside the dealer turn.
func (r *Round) DealerShouldHit() bool {
	return r.phase == PhaseDealerTurn && r.revealed && r.dealer.ShouldHit()
}

// HitDealer draws one card for the dealer.
func (r *Round) HitDealer() error {
	if !r.DealerShouldHit() {
		return ErrWrongPhase
	}
	if err := r.dealer.Hit(r.shoe); err != nil {
		return fmt.Errorf("dealer hit: %w", err)
	}
	r.turn++
	return nil
}

// Settle compares every player hand against the dealer's hand, in hand order,
// applying each outcome to the bankroll independently. The dealer must have
// finished drawing first.
func (r *Round) Settle() ([]HandResult, error) {
	if r.phase != PhaseDealerTurn || !r.revealed || r.dealer.ShouldHit() {
		return nil, ErrWrongPhase
	}
	return r.settleHands(), nil
}

func (r *Round) settleHands() []HandResult {
	dealerValue := r.dealer.ActiveHand().Value()
	dealerBust := r.dealer.IsBust(0)

	for index, hand := range r.player.Hands() {
		outcome := settleHand(hand.Value(), r.player.IsBust(index), dealerValue, dealerBust)
		result := HandResult{HandIndex: index, Outcome: outcome}

		switch outcome {
		case OutcomeWin:
			result.Blackjack = r.player.IsBlackjack(index)
			if result.Blackjack {
				result.Amount = r.player.Bet() * 3 / 2
			} else {
				result.Amount = r.player.Bet()
			}
			r.player.AddToBalance(result.Blackjack)
		case OutcomeLoss:
			result.Amount = -r.player.Bet()
			r.player.ReduceBalance()
		}

		r.results = append(r.results, result)
	}

	r.phase = PhaseSettled
	return r.results
}

// settleHand is the settlement rule list, evaluated in fixed order: a bust
// player loses no matter what; otherwise a bust dealer loses; otherwise the
// higher total wins and equal totals draw.
func settleHand(playerValue int, playerBust bool, dealerValue int, dealerBust bool) Outcome {
	switch {
	case playerBust:
		return OutcomeLoss
	case dealerBust:
		return OutcomeWin
	case playerValue > dealerValue:
		return OutcomeWin
	case playerValue == dealerValue:
		return OutcomeDraw
	default:
		return OutcomeLoss
	}
}
