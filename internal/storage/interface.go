package storage

import (
	"context"

	"github.com/mcoot/gamehub/internal/model"
)

// Store persists the two record tables as whole snapshots.
// Implementations never expose partial-record updates: callers load a table,
// mutate a copy and save the whole mapping back.
type Store interface {
	// LoadAccounts returns the accounts table. A missing table is an empty
	// mapping with no error; an unparsable one wraps ErrCorrupt.
	LoadAccounts(ctx context.Context) (model.Accounts, error)
	LoadScores(ctx context.Context) (model.Scores, error)

	// SaveAccounts overwrites the whole accounts table
	SaveAccounts(ctx context.Context, accounts model.Accounts) error
	SaveScores(ctx context.Context, scores model.Scores) error

	Close() error
}
