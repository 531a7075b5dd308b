package game

import (
	"errors"
	"math/rand"
	"time"
)

// ErrShoeExhausted is returned when a draw is attempted past the last card.
// The shoe is never replenished mid-session, so this ends the round.
var ErrShoeExhausted = errors.New("shoe exhausted")

// DefaultDecks is the number of standard decks a shoe holds unless configured.
const DefaultDecks = 6

// Shoe is an ordered, consumable run of cards. Cards are drawn by advancing a
// cursor rather than popping, so a shuffle of the full card list keeps the
// count of cards already handed out intact.
type Shoe struct {
	cards  []Card
	cursor int
	rng    *rand.Rand
}

// NewShoe builds a shoe of the given number of 52-card decks in deterministic
// rank-major, suit-minor order. Zero decks is valid and yields an empty shoe,
// which callers fill through Add.
func NewShoe(decks int) *Shoe {
	s := &Shoe{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	for d := 0; d < decks; d++ {
		for _, rank := range Ranks {
			for _, suit := range Suits {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	return s
}

// Add appends cards to the end of the shoe.
func (s *Shoe) Add(cards ...Card) {
	s.cards = append(s.cards, cards...)
}

// Shuffle permutes the card list in place with a Fisher-Yates pass. The draw
// cursor is left untouched.
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// TakeCard hands out the card at the cursor and advances it. Drawing past the
// end fails with ErrShoeExhausted; the cursor is never wrapped.
func (s *Shoe) TakeCard() (Card, error) {
	if s.cursor >= len(s.cards) {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[s.cursor]
	s.cursor++
	return card, nil
}

// Remaining returns the number of cards not yet handed out.
func (s *Shoe) Remaining() int {
	return len(s.cards) - s.cursor
}

// Size returns the total number of cards in the shoe, dealt or not.
func (s *Shoe) Size() int {
	return len(s.cards)
}
