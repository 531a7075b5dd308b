package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaBalali/Blackjack/internal/game"
	"github.com/ZakariaBalali/Blackjack/internal/store"
)

func newTestRouter(t *testing.T, rules game.Rules) (*mux.Router, *Hub) {
	t.Helper()

	logger := log.New(io.Discard)
	hub := NewHub(logger)
	go hub.Run()

	handlers := NewHandlers(store.NewMemoryStore(), nil, hub, rules, logger)
	router := mux.NewRouter()
	handlers.RegisterRoutes(router)
	return router, hub
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) (*httptest.ResponseRecorder, SessionState) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var state SessionState
	if rec.Code < 400 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	}
	return rec, state
}

func createSession(t *testing.T, router *mux.Router) SessionState {
	t.Helper()
	rec, state := doJSON(t, router, http.MethodPost, "/api/session/new", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return state
}

func TestNewSession(t *testing.T) {
	router, _ := newTestRouter(t, game.DefaultRules())

	state := createSession(t, router)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, game.PhaseBetting, state.Phase)
	assert.Equal(t, 20, state.Balance)
	assert.Equal(t, game.DefaultDecks*52, state.Remaining)
	assert.True(t, state.CanContinue)
	assert.False(t, state.Ended)
}

func TestGetSessionNotFound(t *testing.T) {
	router, _ := newTestRouter(t, game.DefaultRules())

	rec, _ := doJSON(t, router, http.MethodGet, "/api/session/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSessions(t *testing.T) {
	router, _ := newTestRouter(t, game.DefaultRules())
	createSession(t, router)
	createSession(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/session/list", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var states []SessionState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&states))
	assert.Len(t, states, 2)
}

func TestPlaceBetValidation(t *testing.T) {
	router, _ := newTestRouter(t, game.DefaultRules())
	session := createSession(t, router)
	betURL := fmt.Sprintf("/api/session/%s/bet", session.ID)

	rec, _ := doJSON(t, router, http.MethodPost, betURL, map[string]int{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, betURL, map[string]int{"amount": 999})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, betURL, strings.NewReader("{"))
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestPlayRoundToSettlement(t *testing.T) {
	router, _ := newTestRouter(t, game.DefaultRules())
	session := createSession(t, router)

	rec, state := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/session/%s/bet", session.ID), map[string]int{"amount": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, state.Bet)
	require.Len(t, state.Hands, 1)
	assert.Len(t, state.Hands[0].Cards, 2)

	if state.Phase == game.PhasePlayerTurn {
		hole := state.Dealer.Cards[1]
		assert.True(t, hole.FaceDown)
		assert.Empty(t, hole.Suit, "the hole card must not leak over the wire")

		rec, state = doJSON(t, router, http.MethodPost,
			fmt.Sprintf("/api/session/%s/stand", session.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Standing the only hand resolves everything: dealer plays, hands settle.
	assert.Equal(t, game.PhaseSettled, state.Phase)
	require.Len(t, state.Results, 1)
	assert.Contains(t, []game.Outcome{game.OutcomeWin, game.OutcomeLoss, game.OutcomeDraw},
		state.Results[0].Outcome)
	for _, card := range state.Dealer.Cards {
		assert.False(t, card.FaceDown, "settlement reveals the dealer")
	}
}

func TestActionWithoutRound(t *testing.T) {
	router, _ := newTestRouter(t, game.DefaultRules())
	session := createSession(t, router)

	rec, _ := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/session/%s/hit", session.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestEndSession(t *testing.T) {
	router, _ := newTestRouter(t, game.DefaultRules())
	session := createSession(t, router)

	rec, state := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/session/%s/end", session.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.Ended)

	rec, _ = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/session/%s/bet", session.ID), map[string]int{"amount": 5})
	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestBetOnExhaustedShoeEndsSession(t *testing.T) {
	rules := game.DefaultRules()
	rules.Decks = 0
	router, _ := newTestRouter(t, rules)
	session := createSession(t, router)

	rec, _ := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/session/%s/bet", session.ID), map[string]int{"amount": 5})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, state := doJSON(t, router, http.MethodGet, "/api/session/"+session.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.Ended)
}

func TestHistoryWithoutDatabase(t *testing.T) {
	router, _ := newTestRouter(t, game.DefaultRules())
	session := createSession(t, router)

	rec, _ := doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/session/%s/history", session.ID), nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/session/%s/stats", session.ID), nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestCardViewHidesHoleCard(t *testing.T) {
	card := game.NewCard(game.Hearts, game.King)
	card.Flip()

	view := cardView(card)
	assert.Equal(t, CardView{Name: "## Face Down ##", FaceDown: true}, view)

	card.Flip()
	view = cardView(card)
	assert.Equal(t, CardView{Name: "King of Hearts", Suit: game.Hearts, Rank: game.King}, view)
}

func TestWebSocketReceivesSessionBroadcasts(t *testing.T) {
	router, hub := newTestRouter(t, game.DefaultRules())
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?sessionId=watched"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var welcome Message
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "welcome", welcome.Type)

	hub.BroadcastToSession("watched", Message{Type: "gameUpdate", SessionID: "watched"})
	var update Message
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "gameUpdate", update.Type)
	assert.Equal(t, "watched", update.SessionID)

	hub.BroadcastToSession("other", Message{Type: "gameUpdate", SessionID: "other"})
	hub.BroadcastToSession("watched", Message{Type: "sessionEnded", SessionID: "watched"})
	var next Message
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, "sessionEnded", next.Type, "broadcasts for other sessions are not delivered")
}
