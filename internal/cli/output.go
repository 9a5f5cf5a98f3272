package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case StatusResult:
		o.printStatus(v)
	case UserStats:
		o.printUserStats(v)
	case LeaderboardResult:
		o.printLeaderboard(v)
	case TicTacToeState:
		o.printTicTacToe(v)
	case NumberGuessState:
		o.printNumberGuess(v)
	case MemoryCardsState:
		o.printMemoryCards(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		o.printJSON(data)
	}
}

// AuthResult is the signup and login response
type AuthResult struct {
	Username     string    `json:"username"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// StatusResult is the auth status response
type StatusResult struct {
	Authenticated bool       `json:"authenticated"`
	User          *UserStats `json:"user,omitempty"`
}

// UserStats is the per-user stats response
type UserStats struct {
	Username   string     `json:"username"`
	CreatedAt  time.Time  `json:"created_at"`
	TotalGames int        `json:"total_games"`
	TotalWins  int        `json:"total_wins"`
	WinRate    float64    `json:"win_rate"`
	Games      GameScores `json:"games"`
}

// GameScores holds one record per game
type GameScores struct {
	TicTacToe   TicTacToeStats   `json:"tic_tac_toe"`
	NumberGuess NumberGuessStats `json:"number_guess"`
	MemoryCards MemoryCardsStats `json:"memory_cards"`
}

// TicTacToeStats response type
type TicTacToeStats struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// NumberGuessStats response type
type NumberGuessStats struct {
	Games         int  `json:"games"`
	BestAttempts  *int `json:"best_attempts"`
	TotalAttempts int  `json:"total_attempts"`
}

// MemoryCardsStats response type
type MemoryCardsStats struct {
	Games      int  `json:"games"`
	BestMoves  *int `json:"best_moves"`
	TotalMoves int  `json:"total_moves"`
}

// LeaderboardResult is a ranked board
type LeaderboardResult struct {
	Board       string             `json:"board"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// LeaderboardEntry is one ranked row; only the fields for its board are set
type LeaderboardEntry struct {
	Rank        int               `json:"rank"`
	Username    string            `json:"username"`
	TotalGames  *int              `json:"total_games,omitempty"`
	TotalWins   *int              `json:"total_wins,omitempty"`
	WinRate     *float64          `json:"win_rate,omitempty"`
	TicTacToe   *TicTacToeStats   `json:"tic_tac_toe,omitempty"`
	NumberGuess *NumberGuessStats `json:"number_guess,omitempty"`
	MemoryCards *MemoryCardsStats `json:"memory_cards,omitempty"`
}

// TicTacToeState response type
type TicTacToeState struct {
	SessionID     string   `json:"session_id"`
	Board         []string `json:"board"`
	CurrentPlayer string   `json:"current_player"`
	GameActive    bool     `json:"game_active"`
	Winner        string   `json:"winner,omitempty"`
	Tie           bool     `json:"tie,omitempty"`
	Result        string   `json:"result,omitempty"`
	Message       string   `json:"message"`
}

// NumberGuessState response type
type NumberGuessState struct {
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

// MemoryCardsState response type
type MemoryCardsState struct {
	SessionID    string   `json:"session_id"`
	Board        []string `json:"board"`
	Moves        int      `json:"moves"`
	MatchedPairs int      `json:"matched_pairs"`
	TotalPairs   int      `json:"total_pairs"`
	GameActive   bool     `json:"game_active"`
	Reveal       *Reveal  `json:"reveal,omitempty"`
	Stars        int      `json:"stars,omitempty"`
}

// Reveal describes the cards turned by the last flip
type Reveal struct {
	Position      int    `json:"position"`
	Symbol        string `json:"symbol"`
	Partner       *int   `json:"partner,omitempty"`
	PartnerSymbol string `json:"partner_symbol,omitempty"`
	Match         bool   `json:"match"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Fprintf(o.w, "Logged in as %s\n", a.Username)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
	fmt.Fprintf(o.w, "Expires: %s\n", a.ExpiresAt.Local().Format(time.RFC1123))
}

func (o *Output) printStatus(s StatusResult) {
	if !s.Authenticated || s.User == nil {
		fmt.Fprintln(o.w, "Not logged in")
		return
	}
	fmt.Fprintf(o.w, "Logged in as %s\n", s.User.Username)
}

func (o *Output) printUserStats(s UserStats) {
	fmt.Fprintf(o.w, "Player: %s\n", s.Username)
	fmt.Fprintf(o.w, "Games: %d  Wins: %d  Win rate: %.1f%%\n", s.TotalGames, s.TotalWins, s.WinRate)

	t := s.Games.TicTacToe
	fmt.Fprintf(o.w, "\nTic-tac-toe:  %d played, %d won, %d drawn, %d lost\n", t.Games, t.Wins, t.Draws, t.Losses)
	n := s.Games.NumberGuess
	fmt.Fprintf(o.w, "Number guess: %d played, best %s, %d total attempts\n", n.Games, best(n.BestAttempts), n.TotalAttempts)
	m := s.Games.MemoryCards
	fmt.Fprintf(o.w, "Memory cards: %d played, best %s, %d total moves\n", m.Games, best(m.BestMoves), m.TotalMoves)
}

func (o *Output) printLeaderboard(l LeaderboardResult) {
	fmt.Fprintf(o.w, "Leaderboard: %s\n", l.Board)
	if len(l.Leaderboard) == 0 {
		fmt.Fprintln(o.w, "  (no entries)")
		return
	}
	for _, e := range l.Leaderboard {
		var detail string
		switch {
		case e.TicTacToe != nil:
			detail = fmt.Sprintf("%d wins / %d games", e.TicTacToe.Wins, e.TicTacToe.Games)
		case e.NumberGuess != nil:
			detail = fmt.Sprintf("%d games, best %s", e.NumberGuess.Games, best(e.NumberGuess.BestAttempts))
		case e.MemoryCards != nil:
			detail = fmt.Sprintf("%d games, best %s", e.MemoryCards.Games, best(e.MemoryCards.BestMoves))
		case e.TotalGames != nil && e.TotalWins != nil && e.WinRate != nil:
			detail = fmt.Sprintf("%d wins / %d games (%.1f%%)", *e.TotalWins, *e.TotalGames, *e.WinRate)
		}
		fmt.Fprintf(o.w, "%3d. %-20s %s\n", e.Rank, e.Username, detail)
	}
}

func (o *Output) printTicTacToe(g TicTacToeState) {
	o.printGrid(g.Board, 3)
	fmt.Fprintln(o.w, g.Message)
	if g.GameActive {
		fmt.Fprintf(o.w, "To move: %s\n", g.CurrentPlayer)
	} else if g.Result != "" {
		fmt.Fprintf(o.w, "Result: %s\n", g.Result)
	}
}

func (o *Output) printNumberGuess(g NumberGuessState) {
	fmt.Fprintln(o.w, g.Message)
	fmt.Fprintf(o.w, "Range: %d-%d (%s)  Attempts: %d\n", g.Min, g.Max, g.Difficulty, g.Attempts)
	if len(g.Guesses) > 0 {
		parts := make([]string, len(g.Guesses))
		for i, n := range g.Guesses {
			parts[i] = fmt.Sprint(n)
		}
		fmt.Fprintf(o.w, "Guesses: %s\n", strings.Join(parts, ", "))
	}
	if g.Secret != nil {
		fmt.Fprintf(o.w, "The number was %d\n", *g.Secret)
	}
	if g.Stars > 0 {
		fmt.Fprintf(o.w, "Stars: %s\n", strings.Repeat("*", g.Stars))
	}
}

func (o *Output) printMemoryCards(g MemoryCardsState) {
	o.printGrid(g.Board, 4)
	if g.Reveal != nil {
		r := g.Reveal
		if r.Partner != nil {
			verdict := "no match"
			if r.Match {
				verdict = "match!"
			}
			fmt.Fprintf(o.w, "Flipped %d (%s) and %d (%s): %s\n", *r.Partner, r.PartnerSymbol, r.Position, r.Symbol, verdict)
		} else {
			fmt.Fprintf(o.w, "Flipped %d (%s)\n", r.Position, r.Symbol)
		}
	}
	fmt.Fprintf(o.w, "Pairs: %d/%d  Moves: %d\n", g.MatchedPairs, g.TotalPairs, g.Moves)
	if !g.GameActive {
		fmt.Fprintf(o.w, "Board cleared! Stars: %s\n", strings.Repeat("*", g.Stars))
	}
}

// printGrid draws a square board, numbering empty cells by position
func (o *Output) printGrid(cells []string, width int) {
	for i, c := range cells {
		if c == "" {
			c = fmt.Sprint(i)
		}
		fmt.Fprintf(o.w, " %3s", c)
		if (i+1)%width == 0 {
			fmt.Fprintln(o.w)
		}
	}
}

func best(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
