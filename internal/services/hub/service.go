// Package hub is the boundary the HTTP layer and game sessions call into:
// registration, result recording, user stats and leaderboards.
package hub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/gamehub/internal/metrics"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/services/leaderboard"
	"github.com/mcoot/gamehub/internal/services/scoring"
	"github.com/mcoot/gamehub/internal/storage"
)

// Service wires the record store, score updater and leaderboard ranker together
type Service struct {
	records     *storage.Records
	scoring     *scoring.Service
	leaderboard *leaderboard.Service
	metrics     *metrics.Manager
	logger      *slog.Logger
}

// New creates a hub service
func New(
	records *storage.Records,
	scoringService *scoring.Service,
	leaderboardService *leaderboard.Service,
	m *metrics.Manager,
	logger *slog.Logger,
) *Service {
	return &Service{
		records:     records,
		scoring:     scoringService,
		leaderboard: leaderboardService,
		metrics:     m,
		logger:      logger,
	}
}

// ValidateUsername checks the registration rules for a username
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) != username || username == "" {
		return fmt.Errorf("%w: username must not be blank or padded", model.ErrValidation)
	}
	if len([]rune(username)) < model.MinUsernameLength {
		return fmt.Errorf("%w: username must be at least %d characters long", model.ErrValidation, model.MinUsernameLength)
	}
	return nil
}

// RegisterUser creates the account and score records for a new user.
// passwordHash is stored as given.
func (s *Service) RegisterUser(ctx context.Context, username, passwordHash string) error {
	if err := ValidateUsername(username); err != nil {
		s.metrics.Registration("invalid")
		return err
	}
	if passwordHash == "" {
		s.metrics.Registration("invalid")
		return fmt.Errorf("%w: password hash is required", model.ErrValidation)
	}

	if err := s.records.CreateUser(ctx, username, passwordHash); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			s.metrics.Registration("exists")
			return err
		}
		s.metrics.Registration("error")
		s.logger.Error("failed to register user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.metrics.Registration("ok")
	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// PasswordHash returns the stored credential digest for username
func (s *Service) PasswordHash(ctx context.Context, username string) (string, error) {
	acct, ok := s.records.View(ctx).Accounts[username]
	if !ok {
		return "", model.ErrUserNotFound
	}
	return acct.PasswordHash, nil
}

// RecordGameResult applies one terminal outcome for username
func (s *Service) RecordGameResult(ctx context.Context, username string, outcome model.Outcome) error {
	return s.scoring.RecordResult(ctx, username, outcome)
}

// GetUserStats returns both records for username, or ErrUserNotFound
func (s *Service) GetUserStats(ctx context.Context, username string) (*model.UserStats, error) {
	snap := s.records.View(ctx)
	acct, ok := snap.Accounts[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	// an account whose score record is missing reads as zeroed scores
	scores := snap.Scores[username]
	return &model.UserStats{
		Username:   username,
		Account:    acct,
		GameScores: scores.Clone(),
	}, nil
}

// GetLeaderboard returns the top entries overall (kind == nil) or for one game
func (s *Service) GetLeaderboard(ctx context.Context, kind *model.GameKind) []model.LeaderboardEntry {
	return s.leaderboard.Rank(ctx, kind, model.DefaultLeaderboardLimit)
}
