package model

// TicTacToeStats holds per-user tic-tac-toe counters.
// Games always equals Wins + Draws + Losses.
type TicTacToeStats struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

// NumberGuessStats holds per-user number-guess counters.
// BestAttempts is nil until the first win.
type NumberGuessStats struct {
	Games         int  `json:"games"`
	BestAttempts  *int `json:"best_attempts"`
	TotalAttempts int  `json:"total_attempts"`
}

// MemoryCardsStats holds per-user memory-cards counters.
// BestMoves is nil until the first completed board.
type MemoryCardsStats struct {
	Games      int  `json:"games"`
	BestMoves  *int `json:"best_moves"`
	TotalMoves int  `json:"total_moves"`
}

// GameScores is the per-user score record with one sub-record per game
type GameScores struct {
	TicTacToe   TicTacToeStats   `json:"tic_tac_toe"`
	NumberGuess NumberGuessStats `json:"number_guess"`
	MemoryCards MemoryCardsStats `json:"memory_cards"`
}

// TotalGames sums the games counters of all three sub-records
func (g GameScores) TotalGames() int {
	return g.TicTacToe.Games + g.NumberGuess.Games + g.MemoryCards.Games
}

// GamesFor returns the games counter for a single game kind
func (g GameScores) GamesFor(kind GameKind) int {
	switch kind {
	case GameTicTacToe:
		return g.TicTacToe.Games
	case GameNumberGuess:
		return g.NumberGuess.Games
	case GameMemoryCards:
		return g.MemoryCards.Games
	}
	return 0
}

// Clone returns a deep copy, including the optional bests
func (g GameScores) Clone() GameScores {
	out := g
	out.NumberGuess.BestAttempts = cloneInt(g.NumberGuess.BestAttempts)
	out.MemoryCards.BestMoves = cloneInt(g.MemoryCards.BestMoves)
	return out
}

// Scores is the whole scores table keyed by username
type Scores map[string]GameScores

// Clone returns a deep copy of the table
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v.Clone()
	}
	return out
}

// UserStats is the combined read view of a user's two records
type UserStats struct {
	Username   string
	Account    Account
	GameScores GameScores
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
