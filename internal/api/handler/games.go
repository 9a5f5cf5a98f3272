package handler

import (
	"net/http"

	"github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/request"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/games/numberguess"
	"github.com/mcoot/gamehub/internal/services/session"
)

// GameHandler handles the per-game endpoints
type GameHandler struct {
	sessions *session.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessions *session.Controller) *GameHandler {
	return &GameHandler{sessions: sessions}
}

// StartTicTacToe handles POST /api/v1/tic-tac-toe/start
func (h *GameHandler) StartTicTacToe(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())
	view := h.sessions.StartTicTacToe(r.Context(), username)
	response.JSON(w, http.StatusOK, response.TicTacToeFromView(view))
}

// MoveTicTacToe handles POST /api/v1/tic-tac-toe/move
func (h *GameHandler) MoveTicTacToe(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	var req request.MoveRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Position == nil {
		WriteError(w, NewInvalidRequestError("position is required"))
		return
	}

	view, err := h.sessions.MoveTicTacToe(r.Context(), username, *req.Position)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TicTacToeFromView(view))
}

// StartNumberGuess handles POST /api/v1/number-guess/start
func (h *GameHandler) StartNumberGuess(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	// the body is optional
	var req request.StartNumberGuessRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	difficulty, err := numberguess.ParseDifficulty(req.Difficulty)
	if err != nil {
		WriteError(w, err)
		return
	}

	view := h.sessions.StartNumberGuess(r.Context(), username, difficulty)
	response.JSON(w, http.StatusOK, response.NumberGuessFromView(view))
}

// Guess handles POST /api/v1/number-guess/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	var req request.GuessRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Guess == nil {
		WriteError(w, NewInvalidRequestError("guess is required"))
		return
	}

	view, err := h.sessions.Guess(r.Context(), username, *req.Guess)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NumberGuessFromView(view))
}

// ForfeitNumberGuess handles POST /api/v1/number-guess/forfeit
func (h *GameHandler) ForfeitNumberGuess(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	view, err := h.sessions.ForfeitNumberGuess(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.NumberGuessFromView(view))
}

// StartMemoryCards handles POST /api/v1/memory-cards/start
func (h *GameHandler) StartMemoryCards(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())
	view := h.sessions.StartMemoryCards(r.Context(), username)
	response.JSON(w, http.StatusOK, response.MemoryCardsFromView(view))
}

// FlipCard handles POST /api/v1/memory-cards/flip
func (h *GameHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	var req request.MoveRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Position == nil {
		WriteError(w, NewInvalidRequestError("position is required"))
		return
	}

	view, err := h.sessions.FlipCard(r.Context(), username, *req.Position)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MemoryCardsFromView(view))
}
