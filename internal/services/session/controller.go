// Package session keeps each user's in-progress games and reports terminal
// outcomes to the score recorder.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/gamehub/internal/dependencies/clock"
	"github.com/mcoot/gamehub/internal/dependencies/random"
	"github.com/mcoot/gamehub/internal/games/memorycards"
	"github.com/mcoot/gamehub/internal/games/numberguess"
	"github.com/mcoot/gamehub/internal/games/tictactoe"
	"github.com/mcoot/gamehub/internal/metrics"
	"github.com/mcoot/gamehub/internal/model"
)

// ErrNoActiveGame is returned when a move arrives before a start
var ErrNoActiveGame = errors.New("no game in progress")

// Recorder receives terminal outcomes
type Recorder interface {
	RecordGameResult(ctx context.Context, username string, outcome model.Outcome) error
}

type slot[S any] struct {
	id        string
	state     S
	updatedAt time.Time
}

// Controller holds at most one game of each kind per user
type Controller struct {
	recorder Recorder
	clock    clock.Clock
	random   random.Random
	metrics  *metrics.Manager
	logger   *slog.Logger

	mu          sync.Mutex
	ticTacToe   map[string]*slot[tictactoe.State]
	numberGuess map[string]*slot[numberguess.State]
	memoryCards map[string]*slot[memorycards.State]
}

// NewController creates a session controller
func NewController(
	recorder Recorder,
	clock clock.Clock,
	random random.Random,
	m *metrics.Manager,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		recorder:    recorder,
		clock:       clock,
		random:      random,
		metrics:     m,
		logger:      logger,
		ticTacToe:   make(map[string]*slot[tictactoe.State]),
		numberGuess: make(map[string]*slot[numberguess.State]),
		memoryCards: make(map[string]*slot[memorycards.State]),
	}
}

// TicTacToeView is the result of a tic-tac-toe call
type TicTacToeView struct {
	ID      string
	State   tictactoe.State
	Outcome *model.TicTacToeOutcome
}

// NumberGuessView is the result of a number-guess call
type NumberGuessView struct {
	ID       string
	State    numberguess.State
	Feedback numberguess.Feedback
	Outcome  *model.NumberGuessOutcome
	Stars    int
	// Secret is revealed once the game is over
	Secret *int
}

// MemoryCardsView is the result of a memory-cards call
type MemoryCardsView struct {
	ID      string
	State   memorycards.State
	Reveal  *memorycards.Reveal
	Outcome *model.MemoryCardsOutcome
	Stars   int
}

// StartTicTacToe replaces any tic-tac-toe game the user has with a new one
func (c *Controller) StartTicTacToe(ctx context.Context, username string) *TicTacToeView {
	sl := start(c, c.ticTacToe, username, model.GameTicTacToe, tictactoe.New())
	return &TicTacToeView{ID: sl.id, State: sl.state}
}

// MoveTicTacToe places the next mark
func (c *Controller) MoveTicTacToe(ctx context.Context, username string, pos int) (*TicTacToeView, error) {
	c.mu.Lock()
	sl, ok := c.ticTacToe[username]
	if !ok {
		c.mu.Unlock()
		return nil, ErrNoActiveGame
	}
	next, outcome, err := tictactoe.Move(sl.state, pos)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	sl.state, sl.updatedAt = next, c.clock.Now()
	id := sl.id
	c.mu.Unlock()

	view := &TicTacToeView{ID: id, State: next, Outcome: outcome}
	if outcome != nil {
		return view, c.record(ctx, username, id, *outcome)
	}
	return view, nil
}

// StartNumberGuess replaces any number-guess game the user has with a new one
func (c *Controller) StartNumberGuess(ctx context.Context, username string, difficulty numberguess.Difficulty) *NumberGuessView {
	c.mu.Lock()
	state := numberguess.New(c.random, difficulty)
	c.mu.Unlock()
	sl := start(c, c.numberGuess, username, model.GameNumberGuess, state)
	return &NumberGuessView{ID: sl.id, State: sl.state}
}

// Guess submits one guess
func (c *Controller) Guess(ctx context.Context, username string, guess int) (*NumberGuessView, error) {
	c.mu.Lock()
	sl, ok := c.numberGuess[username]
	if !ok {
		c.mu.Unlock()
		return nil, ErrNoActiveGame
	}
	next, fb, outcome, err := numberguess.Guess(sl.state, guess)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	sl.state, sl.updatedAt = next, c.clock.Now()
	id := sl.id
	c.mu.Unlock()

	view := &NumberGuessView{ID: id, State: next, Feedback: fb, Outcome: outcome}
	if outcome != nil {
		view.Stars = numberguess.Stars(next)
		view.Secret = &next.Secret
		return view, c.record(ctx, username, id, *outcome)
	}
	return view, nil
}

// ForfeitNumberGuess gives up the current number-guess game. A game with at
// least one guess is recorded as a loss.
func (c *Controller) ForfeitNumberGuess(ctx context.Context, username string) (*NumberGuessView, error) {
	c.mu.Lock()
	sl, ok := c.numberGuess[username]
	if !ok {
		c.mu.Unlock()
		return nil, ErrNoActiveGame
	}
	next, outcome, err := numberguess.Forfeit(sl.state)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	sl.state, sl.updatedAt = next, c.clock.Now()
	id := sl.id
	c.mu.Unlock()

	view := &NumberGuessView{ID: id, State: next, Outcome: outcome, Secret: &next.Secret}
	if outcome != nil {
		return view, c.record(ctx, username, id, *outcome)
	}
	return view, nil
}

// StartMemoryCards replaces any memory-cards game the user has with a new one
func (c *Controller) StartMemoryCards(ctx context.Context, username string) *MemoryCardsView {
	c.mu.Lock()
	state := memorycards.New(c.random)
	c.mu.Unlock()
	sl := start(c, c.memoryCards, username, model.GameMemoryCards, state)
	return &MemoryCardsView{ID: sl.id, State: sl.state}
}

// FlipCard turns over one card
func (c *Controller) FlipCard(ctx context.Context, username string, pos int) (*MemoryCardsView, error) {
	c.mu.Lock()
	sl, ok := c.memoryCards[username]
	if !ok {
		c.mu.Unlock()
		return nil, ErrNoActiveGame
	}
	next, reveal, outcome, err := memorycards.Flip(sl.state, pos)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	sl.state, sl.updatedAt = next, c.clock.Now()
	id := sl.id
	c.mu.Unlock()

	view := &MemoryCardsView{ID: id, State: next, Reveal: &reveal, Outcome: outcome}
	if outcome != nil {
		view.Stars = memorycards.Stars(outcome.Moves)
		return view, c.record(ctx, username, id, *outcome)
	}
	return view, nil
}

// EndAll drops every game the user has, without recording anything
func (c *Controller) EndAll(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ticTacToe, username)
	delete(c.numberGuess, username)
	delete(c.memoryCards, username)
}

// CleanIdle drops games untouched for longer than maxIdle and returns how many went
func (c *Controller) CleanIdle(maxIdle time.Duration) int {
	cutoff := c.clock.Now().Add(-maxIdle)
	c.mu.Lock()
	defer c.mu.Unlock()
	return sweep(c.ticTacToe, cutoff) + sweep(c.numberGuess, cutoff) + sweep(c.memoryCards, cutoff)
}

func start[S any](c *Controller, table map[string]*slot[S], username string, kind model.GameKind, state S) *slot[S] {
	sl := &slot[S]{id: uuid.NewString(), state: state, updatedAt: c.clock.Now()}

	c.mu.Lock()
	table[username] = sl
	c.mu.Unlock()

	c.metrics.GameStarted(string(kind))
	c.logger.Debug("game started",
		slog.String("username", username),
		slog.String("game", string(kind)),
		slog.String("session_id", sl.id),
	)
	return sl
}

func sweep[S any](table map[string]*slot[S], cutoff time.Time) int {
	removed := 0
	for username, sl := range table {
		if sl.updatedAt.Before(cutoff) {
			delete(table, username)
			removed++
		}
	}
	return removed
}

func (c *Controller) record(ctx context.Context, username, id string, outcome model.Outcome) error {
	if err := c.recorder.RecordGameResult(ctx, username, outcome); err != nil {
		c.logger.Error("failed to record game result",
			slog.String("username", username),
			slog.String("game", string(outcome.Game())),
			slog.String("session_id", id),
			slog.String("error", err.Error()),
		)
		return err
	}
	c.logger.Info("game finished",
		slog.String("username", username),
		slog.String("game", string(outcome.Game())),
		slog.String("session_id", id),
	)
	return nil
}
