package tictactoe

import (
	"fmt"

	"github.com/mcoot/gamehub/internal/games"
	"github.com/mcoot/gamehub/internal/model"
)

// Mark is the content of one cell
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Cells is the number of positions on the board
const Cells = 9

var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// State is one tic-tac-toe board. Both marks are placed by the same user.
type State struct {
	Board         [Cells]Mark `json:"board"`
	CurrentPlayer Mark        `json:"current_player"`
	Active        bool        `json:"game_active"`
	Winner        Mark        `json:"winner,omitempty"`
	Draw          bool        `json:"tie,omitempty"`
}

// New returns an empty board with X to move
func New() State {
	return State{CurrentPlayer: X, Active: true}
}

// Move places the current player's mark at pos. When the move ends the game
// the returned outcome is non-nil: X winning counts as a win for the user,
// O winning as a loss.
func Move(s State, pos int) (State, *model.TicTacToeOutcome, error) {
	if !s.Active {
		return s, nil, games.ErrGameOver
	}
	if pos < 0 || pos >= Cells {
		return s, nil, fmt.Errorf("%w: position %d out of range", games.ErrInvalidMove, pos)
	}
	if s.Board[pos] != Empty {
		return s, nil, fmt.Errorf("%w: position %d already taken", games.ErrInvalidMove, pos)
	}

	s.Board[pos] = s.CurrentPlayer

	if s.hasLine(s.CurrentPlayer) {
		s.Active = false
		s.Winner = s.CurrentPlayer
		result := model.TicTacToeLoss
		if s.Winner == X {
			result = model.TicTacToeWin
		}
		return s, &model.TicTacToeOutcome{Result: result}, nil
	}

	if s.full() {
		s.Active = false
		s.Draw = true
		return s, &model.TicTacToeOutcome{Result: model.TicTacToeDraw}, nil
	}

	if s.CurrentPlayer == X {
		s.CurrentPlayer = O
	} else {
		s.CurrentPlayer = X
	}
	return s, nil, nil
}

// Message is a short human readable status line
func (s State) Message() string {
	switch {
	case s.Winner != Empty:
		return fmt.Sprintf("Player %s wins!", s.Winner)
	case s.Draw:
		return "It's a tie!"
	default:
		return fmt.Sprintf("Player %s's turn", s.CurrentPlayer)
	}
}

func (s State) hasLine(m Mark) bool {
	for _, line := range winLines {
		if s.Board[line[0]] == m && s.Board[line[1]] == m && s.Board[line[2]] == m {
			return true
		}
	}
	return false
}

func (s State) full() bool {
	for _, c := range s.Board {
		if c == Empty {
			return false
		}
	}
	return true
}
