package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

// Storage keeps each table in its own JSON file
type Storage struct {
	accountsPath string
	scoresPath   string
}

// New creates the data directory if needed and returns a file-backed store
func New(cfg Config) (*Storage, error) {
	def := DefaultConfig()
	if cfg.Dir == "" {
		cfg.Dir = def.Dir
	}
	if cfg.AccountsFile == "" {
		cfg.AccountsFile = def.AccountsFile
	}
	if cfg.ScoresFile == "" {
		cfg.ScoresFile = def.ScoresFile
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &Storage{
		accountsPath: filepath.Join(cfg.Dir, cfg.AccountsFile),
		scoresPath:   filepath.Join(cfg.Dir, cfg.ScoresFile),
	}, nil
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) LoadAccounts(ctx context.Context) (model.Accounts, error) {
	accounts := model.Accounts{}
	if err := readTable(s.accountsPath, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *Storage) LoadScores(ctx context.Context) (model.Scores, error) {
	scores := model.Scores{}
	if err := readTable(s.scoresPath, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *Storage) SaveAccounts(ctx context.Context, accounts model.Accounts) error {
	return writeTable(s.accountsPath, accounts)
}

func (s *Storage) SaveScores(ctx context.Context, scores model.Scores) error {
	return writeTable(s.scoresPath, scores)
}

func (s *Storage) Close() error {
	return nil
}

// readTable decodes path into v. A missing file leaves v untouched.
func readTable(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", storage.ErrUnavailable, path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", storage.ErrCorrupt, path, err)
	}
	return nil
}

// writeTable replaces path with the encoded table. The data goes to a temp
// file in the same directory first so a reader never sees a half-written file.
func writeTable(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", storage.ErrUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", storage.ErrUnavailable, tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: rename %s: %v", storage.ErrUnavailable, path, err)
	}
	return nil
}
