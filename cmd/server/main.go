package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ZakariaBalali/Blackjack/internal/api"
	"github.com/ZakariaBalali/Blackjack/internal/config"
	"github.com/ZakariaBalali/Blackjack/internal/db"
	"github.com/ZakariaBalali/Blackjack/internal/store"
)

type CLI struct {
	Config string `short:"c" help:"Path to HCL config file" default:"blackjack.hcl"`
	Port   int    `short:"p" help:"Server port (overrides config)" default:"0"`
	NoDB   bool   `help:"Disable round-history persistence"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "server",
	})

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Fatal("loading config", "path", cli.Config, "error", err)
	}
	port := cfg.Server.Port
	if cli.Port != 0 {
		port = cli.Port
	}

	// Initialize the session store
	sessions := store.NewMemoryStore()
	logger.Info("in-memory session store initialized")

	// Initialize the history database
	var database *db.Database
	if !cli.NoDB {
		if err := os.MkdirAll(filepath.Dir(cfg.Server.DBPath), 0755); err != nil {
			logger.Fatal("creating data directory", "error", err)
		}
		database, err = db.NewDatabase(cfg.Server.DBPath, logger)
		if err != nil {
			logger.Warn("history database unavailable, continuing without persistence", "error", err)
			database = nil
		} else {
			logger.Info("history database initialized", "path", cfg.Server.DBPath)
			defer database.Close()
		}
	}

	// Initialize WebSocket hub
	hub := api.NewHub(logger)
	go hub.Run()
	logger.Info("websocket hub started")

	// Initialize API handlers
	handlers := api.NewHandlers(sessions, database, hub, cfg.Game.Rules(), logger)

	// Set up router
	r := mux.NewRouter()
	handlers.RegisterRoutes(r)

	// Add middleware for request logging
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, req)
			logger.Debug("request", "method", req.Method, "uri", req.RequestURI, "duration", time.Since(start))
		})
	})

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Server.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Address, port),
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", "error", err)
		}
	}()

	// Block until we receive a termination signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx.Exit(0)
}
