package game

import "fmt"

type Suit string
type Rank string

const (
	Clubs    Suit = "Clubs"
	Diamonds Suit = "Diamonds"
	Hearts   Suit = "Hearts"
	Spades   Suit = "Spades"
)

const (
	Ace   Rank = "Ace"
	Two   Rank = "Two"
	Three Rank = "Three"
	Four  Rank = "Four"
	Five  Rank = "Five"
	Six   Rank = "Six"
	Seven Rank = "Seven"
	Eight Rank = "Eight"
	Nine  Rank = "Nine"
	Ten   Rank = "Ten"
	Jack  Rank = "Jack"
	Queen Rank = "Queen"
	King  Rank = "King"
)

// Ranks and Suits list every rank and suit in deck-building order.
var (
	Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}
	Suits = []Suit{Clubs, Diamonds, Hearts, Spades}
)

// rankValues maps each rank to its candidate blackjack values. The ace is the
// only rank with two; every other rank has exactly one.
var rankValues = map[Rank][]int{
	Ace:   {1, 11},
	Two:   {2},
	Three: {3},
	Four:  {4},
	Five:  {5},
	Six:   {6},
	Seven: {7},
	Eight: {8},
	Nine:  {9},
	Ten:   {10},
	Jack:  {10},
	Queen: {10},
	King:  {10},
}

// Card is a single playing card. Everything but FaceDown is fixed at
// construction; Values is shared with the rank table and must not be mutated.
type Card struct {
	Name     string `json:"name"`
	Suit     Suit   `json:"suit"`
	Rank     Rank   `json:"rank"`
	Values   []int  `json:"values"`
	FaceDown bool   `json:"faceDown"`
}

// NewCard creates a face-up card for the given suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		Name:   fmt.Sprintf("%s of %s", rank, suit),
		Suit:   suit,
		Rank:   rank,
		Values: rankValues[rank],
	}
}

// Flip toggles the card between face up and face down.
func (c *Card) Flip() {
	c.FaceDown = !c.FaceDown
}
