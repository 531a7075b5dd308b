package game

// Player is the human participant: the shared hand machinery plus a bankroll
// and the wager for the round in progress. Balance invariants (the bet must be
// affordable, bets must be in table range) are enforced where the bet is
// placed; a balance reaching zero is a legitimate end state, not an error.
type Player struct {
	Participant
	balance int
	bet     int
}

// NewPlayer creates a player with a single empty hand and a starting bankroll.
func NewPlayer(startingBalance int) *Player {
	return &Player{
		Participant: newParticipant(),
		balance:     startingBalance,
	}
}

// Balance returns the player's bankroll.
func (p *Player) Balance() int {
	return p.balance
}

// Bet returns the player's wager for the round in progress.
func (p *Player) Bet() int {
	return p.bet
}

func (p *Player) setBet(amount int) {
	p.bet = amount
}

// ReduceBalance takes the round's bet out of the bankroll.
func (p *Player) ReduceBalance() {
	p.balance -= p.bet
}

// AddToBalance pays the round's winnings into the bankroll. A natural
// blackjack pays one and a half times the bet, truncated to whole units; any
// other win pays the bet.
func (p *Player) AddToBalance(blackjack bool) {
	if blackjack {
		p.balance += p.bet * 3 / 2
	} else {
		p.balance += p.bet
	}
}

// CanDoubleDown reports whether doubling down is legal right now: exactly two
// cards in the active hand and a doubled bet the bankroll can cover.
func (p *Player) CanDoubleDown() bool {
	return p.ActiveHand().Size() == 2 && p.bet*2 <= p.balance
}

// DoubleDown doubles the bet, draws exactly one card, and stands the hand.
// Legality is the dispatcher's job; calling this out of precondition is a
// programmer error.
func (p *Player) DoubleDown(shoe *Shoe) error {
	p.bet *= 2
	if err := p.Hit(shoe); err != nil {
		return err
	}
	p.Stand()
	return nil
}

// CanSplit reports whether the active hand is a splittable pair: exactly two
// cards of the same rank.
func (p *Player) CanSplit() bool {
	hand := p.ActiveHand()
	if hand.Size() != 2 {
		return false
	}
	return hand.cards[0].Rank == hand.cards[1].Rank
}

// SplitPairs turns the active two-card pair into two hands. The second card
// moves to a new hand, the now single-card active hand draws a replacement,
// and the new hand draws its second card before being appended to the hand
// list. Legality is the dispatcher's job.
func (p *Player) SplitPairs(shoe *Shoe) error {
	hand := p.ActiveHand()

	second := hand.cards[1]
	hand.cards = hand.cards[:1]

	replacement, err := shoe.TakeCard()
	if err != nil {
		return err
	}
	hand.AddCard(replacement)

	forNewHand, err := shoe.TakeCard()
	if err != nil {
		return err
	}
	newHand := NewHand()
	newHand.AddCard(second)
	newHand.AddCard(forNewHand)

	p.hands = append(p.hands, newHand)
	hand.updateValue()
	return nil
}
