// Package ui is the presentation-and-input boundary the round engine is
// driven through. The core never renders or reads input itself; everything a
// player sees or types goes through GameUI.
package ui

// FaceDownName stands in for the name of any card that is still face down.
const FaceDownName = "## Face Down ##"

// GameUI is the capability set a display/input implementation provides. Input
// methods return raw free text; the caller parses and validates it.
type GameUI interface {
	// Informational displays
	ShowPlayerBalance(balance int)
	ShowNewRoundStart()
	ShowPlayerHandStart(handIndex int)
	ShowPlayerHandValue(value int)
	ShowTurnHeader(turn int)
	ShowDealerInfo(cardNames []string, value int)
	ShowPlayerInfo(handIndex int, cardNames []string, value, bet int)
	ShowDealerTurnMessage()
	ShowEvaluationMessage(handIndex int)
	ShowDraw()
	ShowWin(winnings int)
	ShowLoss(amount int)
	ShowThanksForPlaying()
	ShowNotEnoughBalance()

	// Input collection
	PromptBet() string
	PromptPlayOption(handSize int) string
	PromptNewRound() string

	// Validation-failure notices
	ShowInvalidBet()
	ShowUnknownAction()
	ShowDoubleDownNotAllowed()
	ShowNotEnoughBalanceForDoubleDown()
	ShowSplitPairsNotAllowed()
	ShowInvalidOption()
}
