package ui

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/coder/quartz"
)

// Console implements GameUI over a reader/writer pair, normally stdin and
// stdout. Reveal moments (dealer about to act, hand being evaluated) are paced
// with a short delay taken from an injectable clock, so tests run them at
// full speed with a zero delay or a mock clock.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	clock quartz.Clock
	delay time.Duration
}

// NewConsole creates a console boundary. A nil clock falls back to the real
// one.
func NewConsole(in io.Reader, out io.Writer, clock quartz.Clock, delay time.Duration) *Console {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Console{
		in:    bufio.NewScanner(in),
		out:   out,
		clock: clock,
		delay: delay,
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) readLine(prompt string) string {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		return ""
	}
	return c.in.Text()
}

func (c *Console) pause() {
	if c.delay > 0 {
		timer := c.clock.NewTimer(c.delay)
		<-timer.C
	}
}

func (c *Console) ShowPlayerBalance(balance int) {
	c.println(infoStyle.Render(fmt.Sprintf("Player has €%d", balance)))
}

func (c *Console) ShowNewRoundStart() {
	c.println(headerStyle.Render(" New Round "))
	c.println(infoStyle.Render("Start of Player Turn"))
}

func (c *Console) ShowPlayerHandStart(handIndex int) {
	c.println(playerStyle.Render(fmt.Sprintf("Playing Hand %d", handIndex+1)))
}

func (c *Console) ShowPlayerHandValue(value int) {
	c.println(infoStyle.Render(fmt.Sprintf("Player Hand Value: %d", value)))
}

func (c *Console) ShowTurnHeader(turn int) {
	c.println("")
	c.println(headerStyle.Render(fmt.Sprintf(" ========== Turn %d ========== ", turn)))
	c.println("")
}

func (c *Console) ShowDealerInfo(cardNames []string, value int) {
	c.println(dealerStyle.Render("♠ Dealer's Hand:"))
	for _, name := range cardNames {
		c.println(infoStyle.Render("  " + name))
	}
	c.println(dealerStyle.Render(fmt.Sprintf("Dealer Hand Value: %d", value)))
}

func (c *Console) ShowPlayerInfo(handIndex int, cardNames []string, value, bet int) {
	c.println(playerStyle.Render(fmt.Sprintf("♥ Player's Hand %d (bet €%d):", handIndex+1, bet)))
	for _, name := range cardNames {
		c.println(infoStyle.Render("  " + name))
	}
	c.println(playerStyle.Render(fmt.Sprintf("Player Hand Value: %d", value)))
}

func (c *Console) ShowDealerTurnMessage() {
	c.println(warnStyle.Render("Dealer is about to act..."))
	c.pause()
}

func (c *Console) ShowEvaluationMessage(handIndex int) {
	c.println(infoStyle.Render(fmt.Sprintf("Evaluating Hand %d...", handIndex+1)))
	c.pause()
}

func (c *Console) ShowDraw() {
	c.println(warnStyle.Render("Draw"))
}

func (c *Console) ShowWin(winnings int) {
	c.println(winStyle.Render(fmt.Sprintf("You win €%d!", winnings)))
}

func (c *Console) ShowLoss(amount int) {
	c.println(lossStyle.Render(fmt.Sprintf("You lost €%d...", amount)))
}

func (c *Console) ShowThanksForPlaying() {
	c.println(infoStyle.Render("Thanks for playing!"))
}

func (c *Console) ShowNotEnoughBalance() {
	c.println(lossStyle.Render("Not enough balance to keep playing."))
}

func (c *Console) PromptBet() string {
	return c.readLine("Place your bet (1-10): ")
}

func (c *Console) PromptPlayOption(handSize int) string {
	options := "[H]it, [S]tand"
	if handSize == 2 {
		options += ", [D]ouble down, s[P]lit"
	}
	return c.readLine(fmt.Sprintf("Choose an option %s: ", options))
}

func (c *Console) PromptNewRound() string {
	return c.readLine("Play another round? [Y/N]: ")
}

func (c *Console) ShowInvalidBet() {
	c.println(warnStyle.Render("Invalid bet. Enter a whole number within the table limits that you can afford."))
}

func (c *Console) ShowUnknownAction() {
	c.println(warnStyle.Render("Unknown action."))
}

func (c *Console) ShowDoubleDownNotAllowed() {
	c.println(warnStyle.Render("Double down is only allowed on a two-card hand."))
}

func (c *Console) ShowNotEnoughBalanceForDoubleDown() {
	c.println(warnStyle.Render("Not enough balance to double down."))
}

func (c *Console) ShowSplitPairsNotAllowed() {
	c.println(warnStyle.Render("Split is only allowed on a two-card pair."))
}

func (c *Console) ShowInvalidOption() {
	c.println(warnStyle.Render("Please answer Y or N."))
}
