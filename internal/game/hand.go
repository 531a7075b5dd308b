package game

// Hand is one scoring unit of cards. Its value is kept current on every
// mutation and counts face-up cards only, so a hand with a hidden card never
// leaks its total.
type Hand struct {
	cards []Card
	value int
	stood bool
}

// NewHand creates an empty hand.
func NewHand() *Hand {
	return &Hand{}
}

// AddCard appends a card and refreshes the hand value.
func (h *Hand) AddCard(card Card) {
	h.cards = append(h.cards, card)
	h.updateValue()
}

// Cards returns the cards in the hand in deal order.
func (h *Hand) Cards() []Card {
	return h.cards
}

// Size returns the number of cards in the hand.
func (h *Hand) Size() int {
	return len(h.cards)
}

// Value returns the ace-optimized total of the face-up cards.
func (h *Hand) Value() int {
	return h.value
}

// Stand marks the hand as stood.
func (h *Hand) Stand() {
	h.stood = true
}

// Stood reports whether the hand has stood.
func (h *Hand) Stood() bool {
	return h.stood
}

// TurnFaceDownCardsUp flips every face-down card face up and refreshes the
// value in the same step.
func (h *Hand) TurnFaceDownCardsUp() {
	for i := range h.cards {
		if h.cards[i].FaceDown {
			h.cards[i].Flip()
		}
	}
	h.updateValue()
}

// updateValue recomputes the hand total. Aces start at 11 and drop to 1 one at
// a time while the total is over 21. Face-down cards are skipped entirely.
func (h *Hand) updateValue() {
	total := 0
	aces := 0

	for _, card := range h.cards {
		if card.FaceDown {
			continue
		}
		switch len(card.Values) {
		case 1:
			total += card.Values[0]
		case 2:
			total += 11
			aces++
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	h.value = total
}
