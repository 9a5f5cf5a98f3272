package response

import (
	"fmt"
	"time"

	"github.com/mcoot/gamehub/internal/games/memorycards"
	"github.com/mcoot/gamehub/internal/games/numberguess"
	"github.com/mcoot/gamehub/internal/games/tictactoe"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/auth"
	"github.com/mcoot/gamehub/internal/services/session"
)

// AuthResponse is the response for signup and login
type AuthResponse struct {
	Username     string    `json:"username"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Username:     s.Username,
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// StatusResponse reports whether the caller is logged in
type StatusResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *UserStats `json:"user,omitempty"`
}

// UserStats is a user's account totals plus per-game scores
type UserStats struct {
	Username   string           `json:"username"`
	CreatedAt  time.Time        `json:"created_at"`
	TotalGames int              `json:"total_games"`
	TotalWins  int              `json:"total_wins"`
	WinRate    float64          `json:"win_rate"`
	Games      model.GameScores `json:"games"`
}

// UserStatsFromModel converts model.UserStats; the win rate is a percentage
func UserStatsFromModel(s *model.UserStats) UserStats {
	return UserStats{
		Username:   s.Username,
		CreatedAt:  s.Account.CreatedAt,
		TotalGames: s.Account.TotalGames,
		TotalWins:  s.Account.TotalWins,
		WinRate:    s.Account.WinRate() * 100,
		Games:      s.GameScores,
	}
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`

	TotalGames *int     `json:"total_games,omitempty"`
	TotalWins  *int     `json:"total_wins,omitempty"`
	WinRate    *float64 `json:"win_rate,omitempty"`

	TicTacToe   *model.TicTacToeStats   `json:"tic_tac_toe,omitempty"`
	NumberGuess *model.NumberGuessStats `json:"number_guess,omitempty"`
	MemoryCards *model.MemoryCardsStats `json:"memory_cards,omitempty"`
}

// LeaderboardResponse is a ranked board
type LeaderboardResponse struct {
	Board       string             `json:"board"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardFromModel converts ranked entries; board is "overall" or a game kind
func LeaderboardFromModel(board string, entries []model.LeaderboardEntry) LeaderboardResponse {
	out := make([]LeaderboardEntry, 0, len(entries))
	for i, e := range entries {
		row := LeaderboardEntry{
			Rank:        i + 1,
			Username:    e.Username,
			TicTacToe:   e.TicTacToe,
			NumberGuess: e.NumberGuess,
			MemoryCards: e.MemoryCards,
		}
		if e.Game == nil {
			games, wins, rate := e.TotalGames, e.TotalWins, e.WinRate*100
			row.TotalGames, row.TotalWins, row.WinRate = &games, &wins, &rate
		}
		out = append(out, row)
	}
	return LeaderboardResponse{Board: board, Leaderboard: out}
}

// TicTacToeResponse is the state after a tic-tac-toe call
type TicTacToeResponse struct {
	SessionID     string   `json:"session_id"`
	Board         []string `json:"board"`
	CurrentPlayer string   `json:"current_player"`
	GameActive    bool     `json:"game_active"`
	Winner        string   `json:"winner,omitempty"`
	Tie           bool     `json:"tie,omitempty"`
	Result        string   `json:"result,omitempty"`
	Message       string   `json:"message"`
}

// TicTacToeFromView converts a session view
func TicTacToeFromView(v *session.TicTacToeView) TicTacToeResponse {
	board := make([]string, tictactoe.Cells)
	for i, c := range v.State.Board {
		board[i] = string(c)
	}
	resp := TicTacToeResponse{
		SessionID:     v.ID,
		Board:         board,
		CurrentPlayer: string(v.State.CurrentPlayer),
		GameActive:    v.State.Active,
		Winner:        string(v.State.Winner),
		Tie:           v.State.Draw,
		Message:       v.State.Message(),
	}
	if v.Outcome != nil {
		resp.Result = string(v.Outcome.Result)
	}
	return resp
}

// NumberGuessResponse is the state after a number-guess call
type NumberGuessResponse struct {
	SessionID  string `json:"session_id"`
	Difficulty string `json:"difficulty"`
	Min        int    `json:"min"`
	Max        int    `json:"max"`
	Attempts   int    `json:"attempts"`
	Guesses    []int  `json:"guesses"`
	GameActive bool   `json:"game_active"`
	Correct    bool   `json:"correct"`
	Feedback   string `json:"feedback,omitempty"`
	Message    string `json:"message"`
	Stars      int    `json:"stars,omitempty"`
	Secret     *int   `json:"secret,omitempty"`
}

// NumberGuessFromView converts a session view
func NumberGuessFromView(v *session.NumberGuessView) NumberGuessResponse {
	resp := NumberGuessResponse{
		SessionID:  v.ID,
		Difficulty: string(v.State.Difficulty),
		Min:        v.State.Min,
		Max:        v.State.Max,
		Attempts:   v.State.Attempts,
		Guesses:    v.State.Guesses,
		GameActive: v.State.Active,
		Correct:    v.Feedback == numberguess.Correct,
		Feedback:   string(v.Feedback),
		Message:    v.Feedback.Message(),
		Stars:      v.Stars,
		Secret:     v.Secret,
	}
	switch {
	case v.Feedback == "" && v.State.Active:
		resp.Message = fmt.Sprintf("Guess a number between %d and %d", v.State.Min, v.State.Max)
	case v.Feedback == "" && !v.State.Active:
		resp.Message = "Game forfeited"
	}
	return resp
}

// MemoryCardsResponse is the state after a memory-cards call
type MemoryCardsResponse struct {
	SessionID    string              `json:"session_id"`
	Board        []string            `json:"board"`
	Moves        int                 `json:"moves"`
	MatchedPairs int                 `json:"matched_pairs"`
	TotalPairs   int                 `json:"total_pairs"`
	GameActive   bool                `json:"game_active"`
	Reveal       *memorycards.Reveal `json:"reveal,omitempty"`
	Stars        int                 `json:"stars,omitempty"`
}

// MemoryCardsFromView converts a session view
func MemoryCardsFromView(v *session.MemoryCardsView) MemoryCardsResponse {
	return MemoryCardsResponse{
		SessionID:    v.ID,
		Board:        v.State.Visible(),
		Moves:        v.State.Moves,
		MatchedPairs: v.State.MatchedPairs(),
		TotalPairs:   memorycards.Pairs,
		GameActive:   v.State.Active,
		Reveal:       v.Reveal,
		Stars:        v.Stars,
	}
}

// Health is the health check body
type Health struct {
	Status string `json:"status"`
}
