package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewConsole(strings.NewReader(input), out, quartz.NewReal(), 0), out
}

func TestConsolePrompts(t *testing.T) {
	c, out := newTestConsole("7\nH\nY\n")

	assert.Equal(t, "7", c.PromptBet())
	assert.Equal(t, "H", c.PromptPlayOption(2))
	assert.Equal(t, "Y", c.PromptNewRound())

	prompts := out.String()
	assert.Contains(t, prompts, "Place your bet")
	assert.Contains(t, prompts, "Play another round? [Y/N]")
}

func TestConsolePromptOnClosedInput(t *testing.T) {
	c, _ := newTestConsole("")
	assert.Equal(t, "", c.PromptBet())
}

func TestPlayOptionsDependOnHandSize(t *testing.T) {
	c, out := newTestConsole("H\nH\n")

	c.PromptPlayOption(2)
	assert.Contains(t, out.String(), "[D]ouble down, s[P]lit")

	out.Reset()
	c.PromptPlayOption(3)
	assert.NotContains(t, out.String(), "[D]ouble down", "double and split close after the first draw")
}

func TestConsoleShowsAmounts(t *testing.T) {
	c, out := newTestConsole("")

	c.ShowPlayerBalance(35)
	c.ShowWin(15)
	c.ShowLoss(10)
	c.ShowDraw()

	text := out.String()
	assert.Contains(t, text, "Player has €35")
	assert.Contains(t, text, "You win €15!")
	assert.Contains(t, text, "You lost €10...")
	assert.Contains(t, text, "Draw")
}

func TestConsoleRendersHands(t *testing.T) {
	c, out := newTestConsole("")

	c.ShowDealerInfo([]string{"Ace of Spades", FaceDownName}, 11)
	c.ShowPlayerInfo(0, []string{"Ten of Hearts", "Nine of Clubs"}, 19, 5)

	text := out.String()
	assert.Contains(t, text, "Dealer's Hand")
	assert.Contains(t, text, FaceDownName)
	assert.Contains(t, text, "Dealer Hand Value: 11")
	assert.Contains(t, text, "Player's Hand 1 (bet €5)")
	assert.Contains(t, text, "Player Hand Value: 19")
}

func TestZeroDelaySkipsTheClock(t *testing.T) {
	// A mock clock with no one advancing it would block forever if the pause
	// armed a timer anyway.
	mock := quartz.NewMock(t)
	out := &bytes.Buffer{}
	c := NewConsole(strings.NewReader(""), out, mock, 0)

	done := make(chan struct{})
	go func() {
		c.ShowDealerTurnMessage()
		c.ShowEvaluationMessage(0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pacing blocked with a zero delay")
	}
	assert.Contains(t, out.String(), "Dealer is about to act")
}

func TestPausesUseTheInjectedClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mock := quartz.NewMock(t)
	trap := mock.Trap().NewTimer()
	defer trap.Close()

	c := NewConsole(strings.NewReader(""), &bytes.Buffer{}, mock, 100*time.Millisecond)

	done := make(chan struct{})
	go func() {
		c.ShowDealerTurnMessage()
		close(done)
	}()

	call := trap.MustWait(ctx)
	call.MustRelease(ctx)
	mock.Advance(100 * time.Millisecond).MustWait(ctx)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pause did not fire on the mock clock")
	}
}
