package memory

import (
	"context"
	"sync"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Tables are deep-copied on the way in and out so callers never share maps.
type Storage struct {
	mu sync.RWMutex

	accounts model.Accounts
	scores   model.Scores
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts: model.Accounts{},
		scores:   model.Scores{},
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) LoadAccounts(ctx context.Context) (model.Accounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.Clone(), nil
}

func (s *Storage) LoadScores(ctx context.Context) (model.Scores, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores.Clone(), nil
}

func (s *Storage) SaveAccounts(ctx context.Context, accounts model.Accounts) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts.Clone()
	return nil
}

func (s *Storage) SaveScores(ctx context.Context, scores model.Scores) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = scores.Clone()
	return nil
}

func (s *Storage) Close() error {
	return nil
}
