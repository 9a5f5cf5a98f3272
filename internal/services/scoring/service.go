package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/gamehub/internal/metrics"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

// Service applies terminal game outcomes to a user's account and score records
type Service struct {
	records *storage.Records
	metrics *metrics.Manager
	logger  *slog.Logger
}

// New creates a new scoring service. metrics may be nil.
func New(records *storage.Records, m *metrics.Manager, logger *slog.Logger) *Service {
	return &Service{
		records: records,
		metrics: m,
		logger:  logger,
	}
}

// RecordResult applies outcome to username's records as one load-mutate-save
// cycle. Nothing is written if the user is unknown or the outcome is invalid.
func (s *Service) RecordResult(ctx context.Context, username string, outcome model.Outcome) error {
	if outcome == nil {
		return fmt.Errorf("%w: missing outcome", model.ErrInvalidOutcome)
	}
	game := string(outcome.Game())

	if err := outcome.Validate(); err != nil {
		s.metrics.ResultFailed(game, "invalid")
		return err
	}

	err := s.records.Update(ctx, func(snap *storage.Snapshot) error {
		acct, okAcct := snap.Accounts[username]
		scores, okScores := snap.Scores[username]
		if !okAcct || !okScores {
			return model.ErrUserNotFound
		}

		Apply(&acct, &scores, outcome)

		snap.Accounts[username] = acct
		snap.Scores[username] = scores
		return nil
	})
	if err != nil {
		reason := "storage"
		if errors.Is(err, model.ErrUserNotFound) {
			reason = "user_not_found"
			s.logger.Error("result for unknown user",
				slog.String("username", username),
				slog.String("game", game),
			)
		}
		s.metrics.ResultFailed(game, reason)
		return err
	}

	s.metrics.ResultRecorded(game, outcomeLabel(outcome))
	s.logger.Info("game result recorded",
		slog.String("username", username),
		slog.String("game", game),
		slog.String("outcome", outcomeLabel(outcome)),
	)
	return nil
}

// Apply mutates one user's records for a single validated outcome
func Apply(acct *model.Account, scores *model.GameScores, outcome model.Outcome) {
	switch o := outcome.(type) {
	case model.TicTacToeOutcome:
		ttt := &scores.TicTacToe
		ttt.Games++
		switch o.Result {
		case model.TicTacToeWin:
			ttt.Wins++
			acct.TotalWins++
		case model.TicTacToeDraw:
			ttt.Draws++
		case model.TicTacToeLoss:
			ttt.Losses++
		}

	case model.NumberGuessOutcome:
		ng := &scores.NumberGuess
		ng.Games++
		ng.TotalAttempts += o.Attempts
		if o.Won {
			acct.TotalWins++
			ng.BestAttempts = minBest(ng.BestAttempts, o.Attempts)
		}

	case model.MemoryCardsOutcome:
		// every finished board counts as a win
		mc := &scores.MemoryCards
		mc.Games++
		mc.TotalMoves += o.Moves
		acct.TotalWins++
		mc.BestMoves = minBest(mc.BestMoves, o.Moves)
	}

	acct.TotalGames++
}

// minBest returns the smaller of the current best and v; an absent best always loses
func minBest(current *int, v int) *int {
	if current == nil || v < *current {
		return model.IntPtr(v)
	}
	return current
}

func outcomeLabel(outcome model.Outcome) string {
	switch o := outcome.(type) {
	case model.TicTacToeOutcome:
		return string(o.Result)
	case model.NumberGuessOutcome:
		if o.Won {
			return "won"
		}
		return "lost"
	case model.MemoryCardsOutcome:
		return "completed"
	}
	return "unknown"
}

// Interface for dependency injection
type ServiceInterface interface {
	RecordResult(ctx context.Context, username string, outcome model.Outcome) error
}

var _ ServiceInterface = (*Service)(nil)
