package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamehub/internal/api"
	"github.com/mcoot/gamehub/internal/api/response"
	"github.com/mcoot/gamehub/internal/factory"
	"github.com/mcoot/gamehub/internal/games/memorycards"
	"github.com/mcoot/gamehub/internal/testutil"
)

// testServer wraps the router over a test app with mocked clock and random
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		Metrics:           app.Metrics,
		AuthService:       app.AuthService,
		Hub:               app.Hub,
		SessionController: app.SessionController,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) signup(t *testing.T, username string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/auth/signup",
		map[string]string{"username": username, "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.SessionToken
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

// Auth

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/signup",
		map[string]string{"username": "alice", "password": "secret123"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	signup := decodeBody[response.AuthResponse](t, rr)
	assert.Equal(t, "alice", signup.Username)
	assert.NotEmpty(t, signup.SessionToken)
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "session=")

	rr = ts.request(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "alice", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	login := decodeBody[response.AuthResponse](t, rr)
	assert.NotEqual(t, signup.SessionToken, login.SessionToken)
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/signup",
		map[string]string{"username": "al", "password": "secret123"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/auth/signup",
		map[string]string{"username": "alice", "password": "12345"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/auth/signup", map[string]string{"username": "alice"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rr))
}

func TestSignupDuplicate(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/auth/signup",
		map[string]string{"username": "alice", "password": "another1"}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "USERNAME_EXISTS", errorCode(t, rr))
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "alice", "password": "wrong-pass"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rr))
}

func TestStatusAndLogout(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/auth/status", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rr.Body.String())

	token := ts.signup(t, "alice")
	rr = ts.request(http.MethodGet, "/api/v1/auth/status", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	status := decodeBody[response.StatusResponse](t, rr)
	assert.True(t, status.Authenticated)
	require.NotNil(t, status.User)
	assert.Equal(t, "alice", status.User.Username)

	rr = ts.request(http.MethodPost, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/user/stats", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSessionCookieAccepted(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/stats", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{
		"/api/v1/tic-tac-toe/start",
		"/api/v1/number-guess/start",
		"/api/v1/memory-cards/start",
	} {
		rr := ts.request(http.MethodPost, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	rr := ts.request(http.MethodGet, "/api/v1/scoreboard/overall", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Games

func TestTicTacToeFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/tic-tac-toe/move", map[string]int{"position": 0}, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NO_ACTIVE_GAME", errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/tic-tac-toe/start", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	start := decodeBody[response.TicTacToeResponse](t, rr)
	assert.Equal(t, "X", start.CurrentPlayer)
	assert.Len(t, start.Board, 9)

	var last response.TicTacToeResponse
	for _, pos := range []int{0, 3, 1, 4, 2} {
		rr = ts.request(http.MethodPost, "/api/v1/tic-tac-toe/move", map[string]int{"position": pos}, token)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		last = decodeBody[response.TicTacToeResponse](t, rr)
	}
	assert.False(t, last.GameActive)
	assert.Equal(t, "X", last.Winner)
	assert.Equal(t, "win", last.Result)

	rr = ts.request(http.MethodPost, "/api/v1/tic-tac-toe/move", map[string]int{"position": 8}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/user/stats", nil, token)
	stats := decodeBody[response.UserStats](t, rr)
	assert.Equal(t, 1, stats.Games.TicTacToe.Wins)
	assert.Equal(t, 100.0, stats.WinRate)
}

func TestTicTacToeRejectsBadPosition(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice")
	ts.request(http.MethodPost, "/api/v1/tic-tac-toe/start", nil, token)

	rr := ts.request(http.MethodPost, "/api/v1/tic-tac-toe/move", map[string]int{"position": 9}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_MOVE", errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/v1/tic-tac-toe/move", map[string]string{}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rr))
}

func TestNumberGuessFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice")
	ts.app.MockRandom.QueueIntn(41)

	rr := ts.request(http.MethodPost, "/api/v1/number-guess/start", map[string]string{"difficulty": "easy"}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	start := decodeBody[response.NumberGuessResponse](t, rr)
	assert.Equal(t, 50, start.Max)
	assert.Nil(t, start.Secret)

	rr = ts.request(http.MethodPost, "/api/v1/number-guess/guess", map[string]int{"guess": 40}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	hint := decodeBody[response.NumberGuessResponse](t, rr)
	assert.Equal(t, "close_low", hint.Feedback)
	assert.False(t, hint.Correct)

	rr = ts.request(http.MethodPost, "/api/v1/number-guess/guess", map[string]int{"guess": 51}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/number-guess/guess", map[string]int{"guess": 42}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	won := decodeBody[response.NumberGuessResponse](t, rr)
	assert.True(t, won.Correct)
	assert.Equal(t, 2, won.Attempts)
	require.NotNil(t, won.Secret)
	assert.Equal(t, 42, *won.Secret)

	rr = ts.request(http.MethodGet, "/api/v1/user/stats", nil, token)
	stats := decodeBody[response.UserStats](t, rr)
	require.NotNil(t, stats.Games.NumberGuess.BestAttempts)
	assert.Equal(t, 2, *stats.Games.NumberGuess.BestAttempts)
}

func TestNumberGuessStartWithoutBody(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/number-guess/start", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	start := decodeBody[response.NumberGuessResponse](t, rr)
	assert.Equal(t, "medium", start.Difficulty)
	assert.Equal(t, 100, start.Max)

	rr = ts.request(http.MethodPost, "/api/v1/number-guess/start", map[string]string{"difficulty": "insane"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNumberGuessForfeit(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice")
	ts.app.MockRandom.QueueIntn(49)

	ts.request(http.MethodPost, "/api/v1/number-guess/start", nil, token)
	ts.request(http.MethodPost, "/api/v1/number-guess/guess", map[string]int{"guess": 1}, token)

	rr := ts.request(http.MethodPost, "/api/v1/number-guess/forfeit", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	forfeit := decodeBody[response.NumberGuessResponse](t, rr)
	assert.False(t, forfeit.GameActive)
	require.NotNil(t, forfeit.Secret)
	assert.Equal(t, 50, *forfeit.Secret)

	rr = ts.request(http.MethodGet, "/api/v1/user/stats", nil, token)
	stats := decodeBody[response.UserStats](t, rr)
	assert.Equal(t, 1, stats.Games.NumberGuess.Games)
	assert.Nil(t, stats.Games.NumberGuess.BestAttempts)
	assert.Equal(t, 0.0, stats.WinRate)
}

func TestMemoryCardsFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "alice")

	rr := ts.request(http.MethodPost, "/api/v1/memory-cards/start", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	start := decodeBody[response.MemoryCardsResponse](t, rr)
	assert.Len(t, start.Board, 16)
	assert.Equal(t, memorycards.Pairs, start.TotalPairs)
	assert.NotContains(t, rr.Body.String(), memorycards.Symbols()[0])

	var last response.MemoryCardsResponse
	for i := 0; i < memorycards.Pairs; i++ {
		for _, pos := range []int{i, i + memorycards.Pairs} {
			rr = ts.request(http.MethodPost, "/api/v1/memory-cards/flip", map[string]int{"position": pos}, token)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			last = decodeBody[response.MemoryCardsResponse](t, rr)
		}
	}
	assert.False(t, last.GameActive)
	assert.Equal(t, memorycards.Pairs, last.Moves)
	assert.Equal(t, 3, last.Stars)

	rr = ts.request(http.MethodPost, "/api/v1/memory-cards/flip", map[string]int{"position": 0}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

// Leaderboards

func TestScoreboard(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice")
	ts.signup(t, "bobby")

	ts.request(http.MethodPost, "/api/v1/tic-tac-toe/start", nil, alice)
	for _, pos := range []int{0, 3, 1, 4, 2} {
		ts.request(http.MethodPost, "/api/v1/tic-tac-toe/move", map[string]int{"position": pos}, alice)
	}

	rr := ts.request(http.MethodGet, "/api/v1/scoreboard/overall", nil, alice)
	require.Equal(t, http.StatusOK, rr.Code)
	overall := decodeBody[response.LeaderboardResponse](t, rr)
	require.Len(t, overall.Leaderboard, 2)
	assert.Equal(t, "alice", overall.Leaderboard[0].Username)
	assert.Equal(t, 1, overall.Leaderboard[0].Rank)
	require.NotNil(t, overall.Leaderboard[0].WinRate)
	assert.Equal(t, 100.0, *overall.Leaderboard[0].WinRate)

	rr = ts.request(http.MethodGet, "/api/v1/scoreboard/tic-tac-toe", nil, alice)
	require.Equal(t, http.StatusOK, rr.Code)
	ttt := decodeBody[response.LeaderboardResponse](t, rr)
	assert.Equal(t, "tic_tac_toe", ttt.Board)
	require.Len(t, ttt.Leaderboard, 1)
	require.NotNil(t, ttt.Leaderboard[0].TicTacToe)
	assert.Equal(t, 1, ttt.Leaderboard[0].TicTacToe.Wins)
	assert.Nil(t, ttt.Leaderboard[0].TotalGames)

	rr = ts.request(http.MethodGet, "/api/v1/scoreboard/chess", nil, alice)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "UNKNOWN_GAME", errorCode(t, rr))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice")

	rr := ts.request(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "gamehub_registrations_total"))
	assert.True(t, strings.Contains(body, `route="/api/v1/auth/signup"`))
}
