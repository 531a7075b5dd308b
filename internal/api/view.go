package api

import (
	"github.com/ZakariaBalali/Blackjack/internal/game"
	"github.com/ZakariaBalali/Blackjack/internal/ui"
)

// CardView is a card as exposed over the API. A face-down card shows the
// placeholder name and hides its suit, rank, and values entirely so the hole
// card cannot leak through the wire.
type CardView struct {
	Name     string    `json:"name"`
	Suit     game.Suit `json:"suit,omitempty"`
	Rank     game.Rank `json:"rank,omitempty"`
	FaceDown bool      `json:"faceDown"`
}

// HandView is one hand with its visible total.
type HandView struct {
	Cards []CardView `json:"cards"`
	Value int        `json:"value"`
	Stood bool       `json:"stood"`
}

// SessionState is the full snapshot pushed to clients after every mutation.
type SessionState struct {
	ID          string            `json:"id"`
	Phase       game.Phase        `json:"phase"`
	Turn        int               `json:"turn"`
	Balance     int               `json:"balance"`
	Bet         int               `json:"bet"`
	Remaining   int               `json:"cardsRemaining"`
	Dealer      HandView          `json:"dealer"`
	Hands       []HandView        `json:"hands"`
	ActiveHand  int               `json:"activeHand"`
	Results     []game.HandResult `json:"results,omitempty"`
	CanContinue bool              `json:"canContinue"`
	Ended       bool              `json:"ended"`
	Rules       game.Rules        `json:"rules"`
}

func cardView(card game.Card) CardView {
	if card.FaceDown {
		return CardView{Name: ui.FaceDownName, FaceDown: true}
	}
	return CardView{Name: card.Name, Suit: card.Suit, Rank: card.Rank}
}

func handView(hand *game.Hand) HandView {
	view := HandView{Value: hand.Value(), Stood: hand.Stood()}
	for _, card := range hand.Cards() {
		view.Cards = append(view.Cards, cardView(card))
	}
	return view
}

// snapshot builds the client-facing state of a session.
func snapshot(g *game.Game) SessionState {
	state := SessionState{
		ID:          g.ID,
		Phase:       game.PhaseBetting,
		Balance:     g.Player().Balance(),
		Bet:         g.Player().Bet(),
		Remaining:   g.Shoe().Remaining(),
		CanContinue: g.CanContinue(),
		Ended:       g.Ended(),
		Rules:       g.Rules(),
	}

	if round := g.Round(); round != nil {
		state.Phase = round.Phase()
		state.Turn = round.Turn()
		state.Results = round.Results()
	}

	state.Dealer = handView(g.Dealer().ActiveHand())
	state.ActiveHand = g.Player().ActiveHandIndex()
	for _, hand := range g.Player().Hands() {
		state.Hands = append(state.Hands, handView(hand))
	}

	return state
}
