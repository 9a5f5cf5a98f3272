package model

import "fmt"

// GameKind identifies one of the hub's games
type GameKind string

const (
	GameTicTacToe   GameKind = "tic_tac_toe"
	GameNumberGuess GameKind = "number_guess"
	GameMemoryCards GameKind = "memory_cards"
)

// AllGames lists every game kind in display order
var AllGames = []GameKind{GameTicTacToe, GameNumberGuess, GameMemoryCards}

// ParseGameKind accepts both the snake_case storage names and the
// kebab-case route names ("tic-tac-toe")
func ParseGameKind(s string) (GameKind, error) {
	switch s {
	case "tic_tac_toe", "tic-tac-toe":
		return GameTicTacToe, nil
	case "number_guess", "number-guess":
		return GameNumberGuess, nil
	case "memory_cards", "memory-cards":
		return GameMemoryCards, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGame, s)
}

// TicTacToeResult is the terminal result of a tic-tac-toe session
type TicTacToeResult string

const (
	TicTacToeWin  TicTacToeResult = "win"
	TicTacToeDraw TicTacToeResult = "draw"
	TicTacToeLoss TicTacToeResult = "loss"
)
