// Package config loads table rules and server settings from an HCL file,
// falling back to house defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ZakariaBalali/Blackjack/internal/game"
)

// Config is the complete configuration: the game block for table rules and
// the server block for the HTTP surface.
type Config struct {
	Game   *GameConfig   `hcl:"game,block"`
	Server *ServerConfig `hcl:"server,block"`
}

// GameConfig sets the table rules.
type GameConfig struct {
	Decks           int `hcl:"decks,optional"`
	StartingBalance int `hcl:"starting_balance,optional"`
	MinBet          int `hcl:"min_bet,optional"`
	MaxBet          int `hcl:"max_bet,optional"`
	DealerDelayMS   int `hcl:"dealer_delay_ms,optional"`
}

// ServerConfig sets the HTTP/WebSocket surface.
type ServerConfig struct {
	Address     string `hcl:"address,optional"`
	Port        int    `hcl:"port,optional"`
	FrontendURL string `hcl:"frontend_url,optional"`
	DBPath      string `hcl:"db_path,optional"`
}

// Default returns the configuration used when no file exists: the original
// house table (six decks, €20 bankroll, bets 1-10) and a local server.
func Default() *Config {
	return &Config{
		Game: &GameConfig{
			Decks:           game.DefaultDecks,
			StartingBalance: 20,
			MinBet:          1,
			MaxBet:          10,
			DealerDelayMS:   1000,
		},
		Server: &ServerConfig{
			Address:     "localhost",
			Port:        8080,
			FrontendURL: "http://localhost:5173",
			DBPath:      "./data/blackjack.db",
		},
	}
}

// Load reads the HCL file at path. A missing file yields Default; a present
// file is decoded and topped up with defaults for anything unset.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", path, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %s", path, diags.Error())
	}

	defaults := Default()
	if cfg.Game == nil {
		cfg.Game = defaults.Game
	} else {
		if cfg.Game.Decks == 0 {
			cfg.Game.Decks = defaults.Game.Decks
		}
		if cfg.Game.StartingBalance == 0 {
			cfg.Game.StartingBalance = defaults.Game.StartingBalance
		}
		if cfg.Game.MinBet == 0 {
			cfg.Game.MinBet = defaults.Game.MinBet
		}
		if cfg.Game.MaxBet == 0 {
			cfg.Game.MaxBet = defaults.Game.MaxBet
		}
		if cfg.Game.DealerDelayMS == 0 {
			cfg.Game.DealerDelayMS = defaults.Game.DealerDelayMS
		}
	}
	if cfg.Server == nil {
		cfg.Server = defaults.Server
	} else {
		if cfg.Server.Address == "" {
			cfg.Server.Address = defaults.Server.Address
		}
		if cfg.Server.Port == 0 {
			cfg.Server.Port = defaults.Server.Port
		}
		if cfg.Server.FrontendURL == "" {
			cfg.Server.FrontendURL = defaults.Server.FrontendURL
		}
		if cfg.Server.DBPath == "" {
			cfg.Server.DBPath = defaults.Server.DBPath
		}
	}

	return &cfg, nil
}

// Rules converts the game block into engine table rules.
func (g *GameConfig) Rules() game.Rules {
	return game.Rules{
		Decks:           g.Decks,
		StartingBalance: g.StartingBalance,
		MinBet:          g.MinBet,
		MaxBet:          g.MaxBet,
	}
}
