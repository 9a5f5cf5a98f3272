package numberguess

import (
	"fmt"
	"strings"

	"github.com/mcoot/gamehub/internal/dependencies/random"
	"github.com/mcoot/gamehub/internal/games"
	"github.com/mcoot/gamehub/internal/model"
)

// Difficulty selects the range the secret is drawn from
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// DefaultDifficulty is used when none is requested
const DefaultDifficulty = Medium

// Hint distances
const (
	closeDistance = 5
	warmDistance  = 10
)

var upperBounds = map[Difficulty]int{
	Easy:   50,
	Medium: 100,
	Hard:   200,
	Expert: 500,
}

// ParseDifficulty accepts a difficulty name; the empty string means the default
func ParseDifficulty(s string) (Difficulty, error) {
	if s == "" {
		return DefaultDifficulty, nil
	}
	d := Difficulty(strings.ToLower(s))
	if _, ok := upperBounds[d]; !ok {
		return "", fmt.Errorf("%w: unknown difficulty %q", games.ErrInvalidMove, s)
	}
	return d, nil
}

// Feedback classifies a guess relative to the secret
type Feedback string

const (
	Correct   Feedback = "correct"
	CloseLow  Feedback = "close_low"
	WarmLow   Feedback = "warm_low"
	Low       Feedback = "low"
	CloseHigh Feedback = "close_high"
	WarmHigh  Feedback = "warm_high"
	High      Feedback = "high"
)

// Message is the player-facing text for a feedback value
func (f Feedback) Message() string {
	switch f {
	case Correct:
		return "Congratulations! You guessed it!"
	case CloseLow:
		return "Too low! But you're very close!"
	case WarmLow:
		return "Too low! Getting warmer!"
	case Low:
		return "Too low! Try higher"
	case CloseHigh:
		return "Too high! But you're very close!"
	case WarmHigh:
		return "Too high! Getting warmer!"
	case High:
		return "Too high! Try lower"
	}
	return ""
}

// State is one number-guess session
type State struct {
	Difficulty Difficulty `json:"difficulty"`
	Min        int        `json:"min"`
	Max        int        `json:"max"`
	Secret     int        `json:"-"`
	Attempts   int        `json:"attempts"`
	Guesses    []int      `json:"guesses"`
	Active     bool       `json:"game_active"`
	Won        bool       `json:"won"`
}

// New draws a secret in the difficulty's range
func New(rng random.Random, d Difficulty) State {
	upper, ok := upperBounds[d]
	if !ok {
		d, upper = DefaultDifficulty, upperBounds[DefaultDifficulty]
	}
	return State{
		Difficulty: d,
		Min:        1,
		Max:        upper,
		Secret:     1 + rng.Intn(upper),
		Guesses:    []int{},
		Active:     true,
	}
}

// Guess scores one guess. A correct guess ends the game with a won outcome.
func Guess(s State, guess int) (State, Feedback, *model.NumberGuessOutcome, error) {
	if !s.Active {
		return s, "", nil, games.ErrGameOver
	}
	if guess < s.Min || guess > s.Max {
		return s, "", nil, fmt.Errorf("%w: guess must be between %d and %d", games.ErrInvalidMove, s.Min, s.Max)
	}

	guesses := make([]int, len(s.Guesses), len(s.Guesses)+1)
	copy(guesses, s.Guesses)
	s.Guesses = append(guesses, guess)
	s.Attempts++

	fb := feedback(guess, s.Secret)
	if fb != Correct {
		return s, fb, nil, nil
	}

	s.Active = false
	s.Won = true
	return s, fb, &model.NumberGuessOutcome{Attempts: s.Attempts, Won: true}, nil
}

// Forfeit abandons the game. A game with no guesses yields no outcome.
func Forfeit(s State) (State, *model.NumberGuessOutcome, error) {
	if !s.Active {
		return s, nil, games.ErrGameOver
	}
	s.Active = false
	if s.Attempts == 0 {
		return s, nil, nil
	}
	return s, &model.NumberGuessOutcome{Attempts: s.Attempts, Won: false}, nil
}

// Stars rates a won game from 3 down to 0 by attempts relative to the range
func Stars(s State) int {
	if !s.Won {
		return 0
	}
	budget := (s.Max-s.Min)/10 + 5
	switch {
	case s.Attempts <= budget/3:
		return 3
	case s.Attempts <= budget/2:
		return 2
	case s.Attempts <= budget:
		return 1
	}
	return 0
}

func feedback(guess, secret int) Feedback {
	diff := guess - secret
	switch {
	case diff == 0:
		return Correct
	case diff < 0 && -diff <= closeDistance:
		return CloseLow
	case diff < 0 && -diff <= warmDistance:
		return WarmLow
	case diff < 0:
		return Low
	case diff <= closeDistance:
		return CloseHigh
	case diff <= warmDistance:
		return WarmHigh
	}
	return High
}
