package model

import "fmt"

// Outcome is a terminal game event. Exactly one of the concrete outcome
// types below implements it for each game kind.
type Outcome interface {
	Game() GameKind
	Validate() error
}

// TicTacToeOutcome is emitted when a board is won or filled
type TicTacToeOutcome struct {
	Result TicTacToeResult
}

func (TicTacToeOutcome) Game() GameKind { return GameTicTacToe }

func (o TicTacToeOutcome) Validate() error {
	switch o.Result {
	case TicTacToeWin, TicTacToeDraw, TicTacToeLoss:
		return nil
	}
	return fmt.Errorf("%w: tic-tac-toe result %q", ErrInvalidOutcome, o.Result)
}

// NumberGuessOutcome is emitted when the secret is found or the player gives up
type NumberGuessOutcome struct {
	Attempts int
	Won      bool
}

func (NumberGuessOutcome) Game() GameKind { return GameNumberGuess }

func (o NumberGuessOutcome) Validate() error {
	if o.Attempts <= 0 {
		return fmt.Errorf("%w: attempts must be positive, got %d", ErrInvalidOutcome, o.Attempts)
	}
	return nil
}

// MemoryCardsOutcome is emitted when every pair on the board is matched
type MemoryCardsOutcome struct {
	Moves int
}

func (MemoryCardsOutcome) Game() GameKind { return GameMemoryCards }

func (o MemoryCardsOutcome) Validate() error {
	if o.Moves < 0 {
		return fmt.Errorf("%w: moves must not be negative, got %d", ErrInvalidOutcome, o.Moves)
	}
	return nil
}

var (
	_ Outcome = TicTacToeOutcome{}
	_ Outcome = NumberGuessOutcome{}
	_ Outcome = MemoryCardsOutcome{}
)
