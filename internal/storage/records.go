package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/gamehub/internal/dependencies/clock"
	"github.com/mcoot/gamehub/internal/model"
)

// Snapshot is one consistent read of both tables
type Snapshot struct {
	Accounts model.Accounts
	Scores   model.Scores
}

// Records is the record store used by the services. It serialises every
// load-mutate-save cycle so that only one writer touches the backend at a time.
//
// Update writes accounts first and scores second. A failed scores write puts
// the previous accounts table back. Only a crash between the two writes can
// leave the tables out of step (totals counted, per-game stats not).
type Records struct {
	store  Store
	clock  clock.Clock
	logger *slog.Logger

	mu sync.Mutex
}

// NewRecords wraps a backend
func NewRecords(store Store, clk clock.Clock, logger *slog.Logger) *Records {
	return &Records{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Store returns the underlying backend
func (r *Records) Store() Store {
	return r.store
}

// View loads both tables for reading. Any load failure degrades to an empty
// table so that read paths keep working after a bad write.
func (r *Records) View(ctx context.Context) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.store.LoadAccounts(ctx)
	if err != nil {
		r.logger.Warn("accounts unreadable, using empty table", slog.String("error", err.Error()))
		accounts = model.Accounts{}
	}
	scores, err := r.store.LoadScores(ctx)
	if err != nil {
		r.logger.Warn("scores unreadable, using empty table", slog.String("error", err.Error()))
		scores = model.Scores{}
	}
	return &Snapshot{Accounts: accounts, Scores: scores}
}

// Update loads both tables, applies fn to copies and saves both back.
// If fn returns an error nothing is written. A corrupt table is replaced by an
// empty one; an unreachable backend aborts the update so it cannot be wiped.
func (r *Records) Update(ctx context.Context, fn func(snap *Snapshot) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.store.LoadAccounts(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return fmt.Errorf("load accounts: %w", err)
		}
		r.logger.Warn("accounts corrupt, starting from empty table", slog.String("error", err.Error()))
		accounts = model.Accounts{}
	}
	scores, err := r.store.LoadScores(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return fmt.Errorf("load scores: %w", err)
		}
		r.logger.Warn("scores corrupt, starting from empty table", slog.String("error", err.Error()))
		scores = model.Scores{}
	}

	snap := &Snapshot{Accounts: accounts.Clone(), Scores: scores.Clone()}
	if err := fn(snap); err != nil {
		return err
	}

	if err := r.store.SaveAccounts(ctx, snap.Accounts); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	if err := r.store.SaveScores(ctx, snap.Scores); err != nil {
		// Put the accounts table back so the failed update leaves no trace.
		if rbErr := r.store.SaveAccounts(ctx, accounts); rbErr != nil {
			r.logger.Error("accounts rollback failed after scores save error",
				slog.String("error", err.Error()),
				slog.String("rollback_error", rbErr.Error()),
			)
		} else {
			r.logger.Warn("scores save failed, accounts restored",
				slog.String("error", err.Error()),
			)
		}
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}

// CreateUser inserts a zeroed account and score record for username.
// Both are persisted by the same Update, or neither is. An account with no
// score record is the leftover of a registration that crashed between the two
// writes; it never completed, so it is replaced.
func (r *Records) CreateUser(ctx context.Context, username, passwordHash string) error {
	return r.Update(ctx, func(snap *Snapshot) error {
		if _, ok := snap.Accounts[username]; ok {
			if _, scored := snap.Scores[username]; scored {
				return model.ErrAlreadyExists
			}
			r.logger.Warn("replacing half-registered account", slog.String("username", username))
		}
		snap.Accounts[username] = model.Account{
			PasswordHash: passwordHash,
			CreatedAt:    r.clock.Now().UTC(),
		}
		snap.Scores[username] = model.GameScores{}
		return nil
	})
}
