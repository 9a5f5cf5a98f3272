package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamehub/internal/api/handler"
	"github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/metrics"
	sharedmw "github.com/mcoot/gamehub/internal/middleware"
	"github.com/mcoot/gamehub/internal/services/auth"
	"github.com/mcoot/gamehub/internal/services/hub"
	"github.com/mcoot/gamehub/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	Metrics           *metrics.Manager
	AuthService       *auth.Service
	Hub               *hub.Service
	SessionController *session.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Hub, cfg.SessionController)
	statsHandler := handler.NewStatsHandler(cfg.Hub)
	gameHandler := handler.NewGameHandler(cfg.SessionController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(sharedmw.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(sharedmw.Logging(cfg.Logger))
	api.Use(sharedmw.Metrics(cfg.Metrics))

	// Auth routes (no session required)
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	optional := api.PathPrefix("/auth").Subrouter()
	optional.Use(optionalAuthMiddleware)
	optional.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	optional.HandleFunc("/status", authHandler.Status).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else requires a session
	protected := func(prefix string) *mux.Router {
		sr := api.PathPrefix(prefix).Subrouter()
		sr.Use(authMiddleware)
		return sr
	}

	user := protected("/user")
	user.HandleFunc("/stats", statsHandler.UserStats).Methods(http.MethodGet)

	scoreboard := protected("/scoreboard")
	scoreboard.HandleFunc("/{game}", statsHandler.Scoreboard).Methods(http.MethodGet)

	ttt := protected("/tic-tac-toe")
	ttt.HandleFunc("/start", gameHandler.StartTicTacToe).Methods(http.MethodPost)
	ttt.HandleFunc("/move", gameHandler.MoveTicTacToe).Methods(http.MethodPost)

	guess := protected("/number-guess")
	guess.HandleFunc("/start", gameHandler.StartNumberGuess).Methods(http.MethodPost)
	guess.HandleFunc("/guess", gameHandler.Guess).Methods(http.MethodPost)
	guess.HandleFunc("/forfeit", gameHandler.ForfeitNumberGuess).Methods(http.MethodPost)

	memory := protected("/memory-cards")
	memory.HandleFunc("/start", gameHandler.StartMemoryCards).Methods(http.MethodPost)
	memory.HandleFunc("/flip", gameHandler.FlipCard).Methods(http.MethodPost)

	// Prometheus scrape endpoint sits outside the versioned API
	r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
