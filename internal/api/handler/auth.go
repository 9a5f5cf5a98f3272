package handler

import (
	"net/http"
	"strings"

	"github.com/mcoot/gamehub/internal/api/middleware"
	"github.com/mcoot/gamehub/internal/api/request"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/services/auth"
	"github.com/mcoot/gamehub/internal/services/hub"
	"github.com/mcoot/gamehub/internal/services/session"
)

// AuthHandler handles signup, login, logout and status
type AuthHandler struct {
	authService *auth.Service
	hub         *hub.Service
	sessions    *session.Controller
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, hubService *hub.Service, sessions *session.Controller) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		hub:         hubService,
		sessions:    sessions,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !decode(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("username and password are required"))
		return
	}

	sess, err := h.authService.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	setSessionCookie(w, sess)
	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(sess))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("username and password are required"))
		return
	}

	sess, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	setSessionCookie(w, sess)
	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(sess))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.GetSession(r.Context()); sess != nil {
		h.authService.InvalidateSession(sess.Token)
		h.sessions.EndAll(sess.Username)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	response.NoContent(w)
}

// Status handles GET /api/v1/auth/status
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if sess == nil {
		response.JSON(w, http.StatusOK, response.StatusResponse{Authenticated: false})
		return
	}

	stats, err := h.hub.GetUserStats(r.Context(), sess.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	user := response.UserStatsFromModel(stats)
	response.JSON(w, http.StatusOK, response.StatusResponse{Authenticated: true, User: &user})
}

func setSessionCookie(w http.ResponseWriter, sess *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
