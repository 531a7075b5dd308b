package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ZakariaBalali/Blackjack/internal/game"
)

// Runner drives a session through the boundary: it owns every prompt and
// notice, parses input, and feeds validated decisions into the engine. The
// engine itself never touches the boundary.
type Runner struct {
	game   *game.Game
	ui     GameUI
	logger *log.Logger
}

// NewRunner creates a runner for one session.
func NewRunner(g *game.Game, boundary GameUI, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{game: g, ui: boundary, logger: logger}
}

// Run plays rounds until the player quits, the bankroll drops below the
// minimum bet, or the shoe runs out of cards. Input retry loops are unbounded
// on purpose: the session is interactive and a human eventually complies.
func (r *Runner) Run() error {
	r.ui.ShowPlayerBalance(r.game.Player().Balance())

	for r.game.CanContinue() {
		if err := r.playRound(); err != nil {
			if errors.Is(err, game.ErrShoeExhausted) {
				r.logger.Warn("shoe exhausted, ending session", "remaining", r.game.Shoe().Remaining())
				break
			}
			return err
		}

		if !r.askForNewRound() {
			return nil
		}
	}

	if r.game.Player().Balance() < r.game.Rules().MinBet {
		r.ui.ShowPlayerBalance(r.game.Player().Balance())
		r.ui.ShowNotEnoughBalance()
	}
	return nil
}

// playRound runs one full round: bet, player decision loop over every hand,
// paced dealer play, settlement report.
func (r *Runner) playRound() error {
	bet := r.collectBet()
	if err := r.game.StartRound(bet); err != nil {
		return err
	}
	round := r.game.Round()
	player := r.game.Player()

	r.ui.ShowNewRoundStart()
	r.logger.Info("round started", "bet", bet, "balance", player.Balance())

	lastHand := -1
	for round.Phase() == game.PhasePlayerTurn {
		handIndex := player.ActiveHandIndex()
		if handIndex != lastHand {
			r.showTable()
			r.ui.ShowPlayerHandStart(handIndex)
			lastHand = handIndex
		}

		r.ui.ShowPlayerHandValue(player.ActiveHand().Value())
		decision := game.ParseDecision(r.ui.PromptPlayOption(player.ActiveHand().Size()))

		err := r.game.Apply(decision)
		switch {
		case errors.Is(err, game.ErrUnknownDecision):
			r.ui.ShowUnknownAction()
			continue
		case errors.Is(err, game.ErrDoubleDownNotAllowed):
			r.ui.ShowDoubleDownNotAllowed()
			continue
		case errors.Is(err, game.ErrInsufficientBalance):
			r.ui.ShowNotEnoughBalanceForDoubleDown()
			continue
		case errors.Is(err, game.ErrSplitNotAllowed):
			r.ui.ShowSplitPairsNotAllowed()
			continue
		case err != nil:
			return err
		}

		if round.Phase() == game.PhasePlayerTurn && player.ActiveHandIndex() == handIndex &&
			!player.ActiveHand().Stood() {
			r.showTable()
		}
	}

	if err := round.RevealDealer(); err != nil {
		return err
	}
	r.showTable()
	for round.DealerShouldHit() {
		r.ui.ShowDealerTurnMessage()
		if err := round.HitDealer(); err != nil {
			return err
		}
		r.showTable()
	}

	results, err := round.Settle()
	if err != nil {
		return err
	}
	for _, result := range results {
		r.ui.ShowEvaluationMessage(result.HandIndex)
		switch result.Outcome {
		case game.OutcomeWin:
			r.ui.ShowWin(result.Amount)
		case game.OutcomeLoss:
			r.ui.ShowLoss(-result.Amount)
		case game.OutcomeDraw:
			r.ui.ShowDraw()
		}
	}
	r.logger.Info("round settled", "hands", len(results), "balance", player.Balance())
	return nil
}

// collectBet prompts until the input parses as a whole number inside the
// table limits that the bankroll can cover.
func (r *Runner) collectBet() int {
	rules := r.game.Rules()
	balance := r.game.Player().Balance()
	for {
		input := strings.TrimSpace(r.ui.PromptBet())
		amount, err := strconv.Atoi(input)
		if err == nil && amount >= rules.MinBet && amount <= rules.MaxBet && amount <= balance {
			return amount
		}
		r.ui.ShowInvalidBet()
	}
}

// askForNewRound handles the Y/N continuation prompt, re-asking on anything
// else. Returns false when the player is done; N also closes the session.
func (r *Runner) askForNewRound() bool {
	for {
		r.ui.ShowPlayerBalance(r.game.Player().Balance())
		switch strings.ToUpper(strings.TrimSpace(r.ui.PromptNewRound())) {
		case "Y":
			return true
		case "N":
			r.ui.ShowThanksForPlaying()
			r.game.End()
			return false
		default:
			r.ui.ShowInvalidOption()
		}
	}
}

// showTable renders the turn header, the dealer's hand, and the player's
// active hand. Face-down cards show the placeholder name and contribute
// nothing to the printed totals.
func (r *Runner) showTable() {
	round := r.game.Round()
	player := r.game.Player()
	dealer := r.game.Dealer()

	r.ui.ShowTurnHeader(round.Turn())
	r.ui.ShowDealerInfo(describeCards(dealer.ActiveHand().Cards()), dealer.ActiveHand().Value())
	r.ui.ShowPlayerInfo(player.ActiveHandIndex(), describeCards(player.ActiveHand().Cards()),
		player.ActiveHand().Value(), player.Bet())
}

func describeCards(cards []game.Card) []string {
	names := make([]string, len(cards))
	for i, card := range cards {
		if card.FaceDown {
			names[i] = FaceDownName
		} else {
			names[i] = card.Name
		}
	}
	return names
}
