package game

// Participant owns the hand machinery shared by the player and the dealer: a
// non-empty list of hands and the index of the one currently in play. Splits
// grow the list; ClearHands resets it at the start of every round. What
// decides the participant's moves lives outside this type.
type Participant struct {
	hands  []*Hand
	active int
}

func newParticipant() Participant {
	return Participant{hands: []*Hand{NewHand()}}
}

// Hands returns all hands in play order.
func (p *Participant) Hands() []*Hand {
	return p.hands
}

// ActiveHand returns the hand currently in play.
func (p *Participant) ActiveHand() *Hand {
	return p.hands[p.active]
}

// ActiveHandIndex returns the index of the hand currently in play.
func (p *Participant) ActiveHandIndex() int {
	return p.active
}

// AddCardToHand adds a card to the active hand and refreshes its value.
func (p *Participant) AddCardToHand(card Card) {
	p.ActiveHand().AddCard(card)
}

// Hit draws one card from the shoe into the active hand. The only failure mode
// is shoe exhaustion, which is propagated as is.
func (p *Participant) Hit(shoe *Shoe) error {
	card, err := shoe.TakeCard()
	if err != nil {
		return err
	}
	p.ActiveHand().AddCard(card)
	return nil
}

// Stand marks the active hand as stood.
func (p *Participant) Stand() {
	p.ActiveHand().Stand()
}

// IsBust reports whether the hand at the given index is over 21.
func (p *Participant) IsBust(handIndex int) bool {
	return p.hands[handIndex].Value() > 21
}

// HasTwentyOne reports whether the hand at the given index totals exactly 21.
func (p *Participant) HasTwentyOne(handIndex int) bool {
	return p.hands[handIndex].Value() == 21
}

// IsBlackjack reports whether the hand at the given index is a natural:
// exactly two cards totaling 21. A 21 reached by hitting is not a blackjack.
func (p *Participant) IsBlackjack(handIndex int) bool {
	hand := p.hands[handIndex]
	return hand.Value() == 21 && hand.Size() == 2
}

// HasMoreHands reports whether hands beyond the active one remain to play.
func (p *Participant) HasMoreHands() bool {
	return p.active+1 < len(p.hands)
}

// AdvanceToNextHand moves play to the next hand if one remains, reporting
// whether it did. This is the only way split hands are visited.
func (p *Participant) AdvanceToNextHand() bool {
	if p.HasMoreHands() {
		p.active++
		return true
	}
	return false
}

// ClearHands resets the participant to a single empty hand.
func (p *Participant) ClearHands() {
	p.hands = []*Hand{NewHand()}
	p.active = 0
}

// TurnFaceDownCardsUp reveals every face-down card in the active hand and
// refreshes its value.
func (p *Participant) TurnFaceDownCardsUp() {
	p.ActiveHand().TurnFaceDownCardsUp()
}
