package model

// DefaultLeaderboardLimit is the number of rows returned when no limit is given
const DefaultLeaderboardLimit = 10

// LeaderboardEntry is one ranked row. Overall boards fill the account
// fields; per-game boards fill the sub-record for that game only.
type LeaderboardEntry struct {
	Username string
	Game     *GameKind

	// Overall
	TotalGames int
	TotalWins  int
	WinRate    float64

	// Per game
	TicTacToe   *TicTacToeStats
	NumberGuess *NumberGuessStats
	MemoryCards *MemoryCardsStats
}
