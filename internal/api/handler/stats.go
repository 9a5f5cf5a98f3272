package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/hub"
)

const overallBoard = "overall"

// StatsHandler serves user stats and leaderboards
type StatsHandler struct {
	hub *hub.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(hubService *hub.Service) *StatsHandler {
	return &StatsHandler{hub: hubService}
}

// UserStats handles GET /api/v1/user/stats
func (h *StatsHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	username := middleware.MustGetUsername(r.Context())

	stats, err := h.hub.GetUserStats(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserStatsFromModel(stats))
}

// Scoreboard handles GET /api/v1/scoreboard/{game}
func (h *StatsHandler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["game"]

	if name == overallBoard {
		entries := h.hub.GetLeaderboard(r.Context(), nil)
		response.JSON(w, http.StatusOK, response.LeaderboardFromModel(overallBoard, entries))
		return
	}

	kind, err := model.ParseGameKind(name)
	if err != nil {
		WriteError(w, err)
		return
	}

	entries := h.hub.GetLeaderboard(r.Context(), &kind)
	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(string(kind), entries))
}
