package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/ZakariaBalali/Blackjack/internal/config"
	"github.com/ZakariaBalali/Blackjack/internal/game"
	"github.com/ZakariaBalali/Blackjack/internal/ui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Config  string `short:"c" help:"Path to HCL config file" default:"blackjack.hcl"`
	LogFile string `help:"Debug log file" default:"blackjack.log"`
	Fast    bool   `help:"Skip the dealer's dramatic pauses"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Fatal("loading config", "path", cli.Config, "error", err)
	}

	// The terminal is the game surface, so debug logging goes to a file.
	debugFile, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		log.Fatal("creating debug log", "error", err)
	}
	defer debugFile.Close()

	logger := log.NewWithOptions(debugFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "blackjack",
	})

	fmt.Print(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	delay := time.Duration(cfg.Game.DealerDelayMS) * time.Millisecond
	if cli.Fast {
		delay = 0
	}

	session := game.NewGame(cfg.Game.Rules())
	console := ui.NewConsole(os.Stdin, os.Stdout, quartz.NewReal(), delay)
	runner := ui.NewRunner(session, console, logger)

	logger.Info("session starting", "session", session.ID, "decks", cfg.Game.Decks)
	if err := runner.Run(); err != nil {
		logger.Error("session failed", "error", err)
		log.Fatal("session failed", "error", err)
	}
	logger.Info("session over", "balance", session.Player().Balance())

	ctx.Exit(0)
}
