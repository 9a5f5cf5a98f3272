package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub/internal/dependencies/mocks"
	"github.com/mcoot/gamehub/internal/games"
	"github.com/mcoot/gamehub/internal/games/memorycards"
	"github.com/mcoot/gamehub/internal/games/numberguess"
	"github.com/mcoot/gamehub/internal/games/tictactoe"
	"github.com/mcoot/gamehub/internal/metrics"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/testutil"
)

type fakeRecorder struct {
	outcomes map[string][]model.Outcome
	err      error
}

func (f *fakeRecorder) RecordGameResult(_ context.Context, username string, outcome model.Outcome) error {
	if f.err != nil {
		return f.err
	}
	f.outcomes[username] = append(f.outcomes[username], outcome)
	return nil
}

type ControllerSuite struct {
	suite.Suite
	recorder   *fakeRecorder
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	metrics    *metrics.Manager
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.recorder = &fakeRecorder{outcomes: make(map[string][]model.Outcome)}
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.metrics = metrics.NewManager()
	s.controller = NewController(s.recorder, s.clock, s.random, s.metrics, testutil.NopLogger())
	s.ctx = context.Background()
}

// Tic-tac-toe tests

func (s *ControllerSuite) TestMoveWithoutStartFails() {
	_, err := s.controller.MoveTicTacToe(s.ctx, "alice", 0)
	s.ErrorIs(err, ErrNoActiveGame)
}

func (s *ControllerSuite) TestTicTacToeXWinRecordsWin() {
	start := s.controller.StartTicTacToe(s.ctx, "alice")
	s.NotEmpty(start.ID)
	s.Equal(tictactoe.X, start.State.CurrentPlayer)

	var view *TicTacToeView
	var err error
	for _, pos := range []int{0, 3, 1, 4, 2} {
		view, err = s.controller.MoveTicTacToe(s.ctx, "alice", pos)
		s.Require().NoError(err)
	}

	s.Equal(start.ID, view.ID)
	s.Require().NotNil(view.Outcome)
	s.Equal(model.TicTacToeWin, view.Outcome.Result)
	s.Equal([]model.Outcome{model.TicTacToeOutcome{Result: model.TicTacToeWin}}, s.recorder.outcomes["alice"])
}

func (s *ControllerSuite) TestTicTacToeFinishedGameRejectsMoves() {
	s.controller.StartTicTacToe(s.ctx, "alice")
	for _, pos := range []int{0, 3, 1, 4, 2} {
		_, err := s.controller.MoveTicTacToe(s.ctx, "alice", pos)
		s.Require().NoError(err)
	}

	_, err := s.controller.MoveTicTacToe(s.ctx, "alice", 8)
	s.ErrorIs(err, games.ErrGameOver)
	s.Len(s.recorder.outcomes["alice"], 1)
}

func (s *ControllerSuite) TestTicTacToeInvalidMoveKeepsState() {
	s.controller.StartTicTacToe(s.ctx, "alice")
	_, err := s.controller.MoveTicTacToe(s.ctx, "alice", 4)
	s.Require().NoError(err)

	_, err = s.controller.MoveTicTacToe(s.ctx, "alice", 4)
	s.ErrorIs(err, games.ErrInvalidMove)

	view, err := s.controller.MoveTicTacToe(s.ctx, "alice", 0)
	s.Require().NoError(err)
	s.Equal(tictactoe.O, view.State.Board[0])
}

func (s *ControllerSuite) TestRestartReplacesGame() {
	first := s.controller.StartTicTacToe(s.ctx, "alice")
	_, _ = s.controller.MoveTicTacToe(s.ctx, "alice", 4)

	second := s.controller.StartTicTacToe(s.ctx, "alice")
	s.NotEqual(first.ID, second.ID)

	view, err := s.controller.MoveTicTacToe(s.ctx, "alice", 4)
	s.Require().NoError(err)
	s.Equal(tictactoe.X, view.State.Board[4])
}

func (s *ControllerSuite) TestGamesAreKeyedPerUser() {
	s.controller.StartTicTacToe(s.ctx, "alice")
	_, err := s.controller.MoveTicTacToe(s.ctx, "bobby", 0)
	s.ErrorIs(err, ErrNoActiveGame)
}

// Number-guess tests

func (s *ControllerSuite) TestNumberGuessWinRecordsAttempts() {
	s.random.QueueIntn(49)
	start := s.controller.StartNumberGuess(s.ctx, "alice", numberguess.Medium)
	s.Equal(100, start.State.Max)

	view, err := s.controller.Guess(s.ctx, "alice", 10)
	s.Require().NoError(err)
	s.Equal(numberguess.Low, view.Feedback)
	s.Nil(view.Secret)

	view, err = s.controller.Guess(s.ctx, "alice", 50)
	s.Require().NoError(err)
	s.Equal(numberguess.Correct, view.Feedback)
	s.Require().NotNil(view.Secret)
	s.Equal(50, *view.Secret)
	s.Equal(3, view.Stars)
	s.Equal([]model.Outcome{model.NumberGuessOutcome{Attempts: 2, Won: true}}, s.recorder.outcomes["alice"])
}

func (s *ControllerSuite) TestForfeitWithoutGuessesRecordsNothing() {
	s.controller.StartNumberGuess(s.ctx, "alice", numberguess.Easy)

	view, err := s.controller.ForfeitNumberGuess(s.ctx, "alice")
	s.Require().NoError(err)
	s.Nil(view.Outcome)
	s.Empty(s.recorder.outcomes["alice"])
}

func (s *ControllerSuite) TestForfeitAfterGuessesRecordsLoss() {
	s.random.QueueIntn(49)
	s.controller.StartNumberGuess(s.ctx, "alice", numberguess.Medium)
	_, _ = s.controller.Guess(s.ctx, "alice", 1)

	view, err := s.controller.ForfeitNumberGuess(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(50, *view.Secret)
	s.Equal([]model.Outcome{model.NumberGuessOutcome{Attempts: 1, Won: false}}, s.recorder.outcomes["alice"])

	_, err = s.controller.Guess(s.ctx, "alice", 50)
	s.ErrorIs(err, games.ErrGameOver)
}

func (s *ControllerSuite) TestForfeitWithoutStartFails() {
	_, err := s.controller.ForfeitNumberGuess(s.ctx, "alice")
	s.ErrorIs(err, ErrNoActiveGame)
}

// Memory-cards tests

func (s *ControllerSuite) TestMemoryCardsCompletionRecordsMoves() {
	s.controller.StartMemoryCards(s.ctx, "alice")
	s.Equal(1, s.random.ShuffleCalls)

	var view *MemoryCardsView
	var err error
	for i := 0; i < memorycards.Pairs; i++ {
		_, err = s.controller.FlipCard(s.ctx, "alice", i)
		s.Require().NoError(err)
		view, err = s.controller.FlipCard(s.ctx, "alice", i+memorycards.Pairs)
		s.Require().NoError(err)
		s.True(view.Reveal.Match)
	}

	s.Require().NotNil(view.Outcome)
	s.Equal(memorycards.Pairs, view.Outcome.Moves)
	s.Equal(3, view.Stars)
	s.Equal([]model.Outcome{model.MemoryCardsOutcome{Moves: memorycards.Pairs}}, s.recorder.outcomes["alice"])
}

func (s *ControllerSuite) TestFlipWithoutStartFails() {
	_, err := s.controller.FlipCard(s.ctx, "alice", 0)
	s.ErrorIs(err, ErrNoActiveGame)
}

// Recording and cleanup tests

func (s *ControllerSuite) TestRecorderFailureIsReturned() {
	boom := errors.New("boom")
	s.recorder.err = boom
	s.controller.StartTicTacToe(s.ctx, "alice")

	var err error
	for _, pos := range []int{0, 3, 1, 4, 2} {
		_, err = s.controller.MoveTicTacToe(s.ctx, "alice", pos)
	}
	s.ErrorIs(err, boom)
}

func (s *ControllerSuite) TestEndAllDropsEveryGame() {
	s.controller.StartTicTacToe(s.ctx, "alice")
	s.controller.StartNumberGuess(s.ctx, "alice", numberguess.Medium)
	s.controller.StartMemoryCards(s.ctx, "alice")

	s.controller.EndAll("alice")

	_, err := s.controller.MoveTicTacToe(s.ctx, "alice", 0)
	s.ErrorIs(err, ErrNoActiveGame)
	_, err = s.controller.Guess(s.ctx, "alice", 1)
	s.ErrorIs(err, ErrNoActiveGame)
	_, err = s.controller.FlipCard(s.ctx, "alice", 0)
	s.ErrorIs(err, ErrNoActiveGame)
}

func (s *ControllerSuite) TestCleanIdleKeepsRecentGames() {
	s.controller.StartTicTacToe(s.ctx, "alice")
	s.clock.Advance(2 * time.Hour)
	s.controller.StartMemoryCards(s.ctx, "bobby")

	s.Equal(1, s.controller.CleanIdle(time.Hour))

	_, err := s.controller.MoveTicTacToe(s.ctx, "alice", 0)
	s.ErrorIs(err, ErrNoActiveGame)
	_, err = s.controller.FlipCard(s.ctx, "bobby", 0)
	s.NoError(err)
}
