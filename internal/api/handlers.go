package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/ZakariaBalali/Blackjack/internal/db"
	"github.com/ZakariaBalali/Blackjack/internal/game"
	"github.com/ZakariaBalali/Blackjack/internal/store"
)

// Handlers contains all the API handlers. A single mutex serializes session
// mutations; the game engine itself is single-threaded by design and the
// request rate of a single-player game does not justify finer locking.
type Handlers struct {
	store    store.Store
	database *db.Database
	hub      *Hub
	rules    game.Rules
	logger   *log.Logger
	mu       sync.Mutex
}

// NewHandlers creates a new instance of Handlers. The database may be nil, in
// which case no history is persisted.
func NewHandlers(sessions store.Store, database *db.Database, hub *Hub, rules game.Rules, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{
		store:    sessions,
		database: database,
		hub:      hub,
		rules:    rules,
		logger:   logger,
	}
}

// RegisterRoutes registers all API routes.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	// Session lifecycle
	r.HandleFunc("/api/session/new", h.NewSession).Methods("POST")
	r.HandleFunc("/api/session/list", h.ListSessions).Methods("GET")
	r.HandleFunc("/api/session/{id}", h.GetSession).Methods("GET")
	r.HandleFunc("/api/session/{id}/end", h.EndSession).Methods("POST")

	// Round play
	r.HandleFunc("/api/session/{id}/bet", h.PlaceBet).Methods("POST")
	r.HandleFunc("/api/session/{id}/hit", h.Action(game.DecisionHit)).Methods("POST")
	r.HandleFunc("/api/session/{id}/stand", h.Action(game.DecisionStand)).Methods("POST")
	r.HandleFunc("/api/session/{id}/double", h.Action(game.DecisionDouble)).Methods("POST")
	r.HandleFunc("/api/session/{id}/split", h.Action(game.DecisionSplit)).Methods("POST")

	// History and statistics
	r.HandleFunc("/api/session/{id}/history", h.GetHistory).Methods("GET")
	r.HandleFunc("/api/session/{id}/stats", h.GetStats).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws", h.hub.WebSocketHandler)
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// NewSession creates a session and returns its starting state.
func (h *Handlers) NewSession(w http.ResponseWriter, r *http.Request) {
	g := game.NewGame(h.rules)

	if err := h.store.SaveSession(g); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	h.persistSession(g)

	h.logger.Info("session created", "session", g.ID)
	response(w, http.StatusCreated, snapshot(g))
}

// GetSession returns a session's current state.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	g, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	response(w, http.StatusOK, snapshot(g))
}

// ListSessions returns the state of every live session.
func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListSessions()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	states := make([]SessionState, 0, len(sessions))
	for _, g := range sessions {
		states = append(states, snapshot(g))
	}
	response(w, http.StatusOK, states)
}

// EndSession closes a session.
func (h *Handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	g, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	g.End()
	h.mu.Unlock()
	h.persistSession(g)
	h.broadcast(g, "sessionEnded")

	response(w, http.StatusOK, snapshot(g))
}

// PlaceBet starts a round with the posted wager. A dealt natural can resolve
// the whole round immediately, in which case the response already carries the
// settlement.
func (h *Handlers) PlaceBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, ok := h.lookupSession(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	err := g.StartRound(req.Amount)
	if err == nil {
		err = h.finishRoundIfDue(g)
	}
	h.mu.Unlock()

	if err != nil {
		h.writeGameError(w, g, err)
		return
	}

	h.persistSession(g)
	h.broadcast(g, "roundStarted")
	response(w, http.StatusOK, snapshot(g))
}

// Action returns a handler that applies one decision to a session's round.
// When the decision resolves the last player hand, the dealer plays and the
// round settles before the response is written.
func (h *Handlers) Action(decision game.Decision) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := h.lookupSession(w, r)
		if !ok {
			return
		}

		h.mu.Lock()
		err := g.Apply(decision)
		if err == nil {
			err = h.finishRoundIfDue(g)
		}
		h.mu.Unlock()

		if err != nil {
			h.writeGameError(w, g, err)
			return
		}

		h.persistSession(g)
		h.broadcast(g, "gameUpdate")
		response(w, http.StatusOK, snapshot(g))
	}
}

// GetHistory returns a session's settled hands.
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		errorResponse(w, http.StatusNotImplemented, "History is not enabled")
		return
	}

	id := mux.Vars(r)["id"]
	results, err := h.database.GetSessionResults(id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	response(w, http.StatusOK, results)
}

// GetStats returns a session's aggregate statistics.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.database == nil {
		errorResponse(w, http.StatusNotImplemented, "Statistics are not enabled")
		return
	}

	id := mux.Vars(r)["id"]
	stats, err := h.database.GetSessionStats(id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to load statistics")
		return
	}
	response(w, http.StatusOK, stats)
}

// finishRoundIfDue runs the dealer and settles once the player turn is over,
// then records the results. Caller holds the mutex.
func (h *Handlers) finishRoundIfDue(g *game.Game) error {
	round := g.Round()
	if round == nil || round.Phase() != game.PhaseDealerTurn {
		return nil
	}

	results, err := g.FinishDealerAndSettle()
	if err != nil {
		return err
	}

	if h.database != nil {
		if err := h.database.SaveRoundResults(g.ID, g.Player().Bet(), results, g.Player().Balance()); err != nil {
			h.logger.Error("saving round results", "session", g.ID, "error", err)
		}
	}
	h.logger.Info("round settled", "session", g.ID, "hands", len(results), "balance", g.Player().Balance())
	return nil
}

// lookupSession resolves the {id} path variable, writing a 404 on a miss.
func (h *Handlers) lookupSession(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	id := mux.Vars(r)["id"]
	g, err := h.store.GetSession(id)
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return g, true
}

// writeGameError maps engine errors onto HTTP statuses. Input-shaped problems
// are 400s; phase misuse is a conflict; a dead session or shoe is gone.
func (h *Handlers) writeGameError(w http.ResponseWriter, g *game.Game, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidBet),
		errors.Is(err, game.ErrUnknownDecision),
		errors.Is(err, game.ErrDoubleDownNotAllowed),
		errors.Is(err, game.ErrInsufficientBalance),
		errors.Is(err, game.ErrSplitNotAllowed):
		errorResponse(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, game.ErrRoundInProgress), errors.Is(err, game.ErrNoRound),
		errors.Is(err, game.ErrWrongPhase):
		errorResponse(w, http.StatusConflict, err.Error())

	case errors.Is(err, game.ErrShoeExhausted):
		h.persistSession(g)
		h.broadcast(g, "sessionEnded")
		errorResponse(w, http.StatusConflict, "Shoe exhausted, session ended")

	case errors.Is(err, game.ErrSessionEnded):
		errorResponse(w, http.StatusGone, err.Error())

	default:
		h.logger.Error("unexpected engine error", "session", g.ID, "error", err)
		errorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

func (h *Handlers) persistSession(g *game.Game) {
	if h.database == nil {
		return
	}
	if err := h.database.SaveSession(g); err != nil {
		h.logger.Error("saving session", "session", g.ID, "error", err)
	}
}

func (h *Handlers) broadcast(g *game.Game, msgType string) {
	if h.hub == nil {
		return
	}
	h.hub.BroadcastToSession(g.ID, Message{
		Type:      msgType,
		SessionID: g.ID,
		Data:      snapshot(g),
	})
}
