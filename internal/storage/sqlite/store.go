// Package sqlite provides a SQLite-backed record store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

// Store persists the record tables in SQLite. A save replaces the whole
// table inside one transaction.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps writers serialised inside the process
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ensure Store implements the interface
var _ storage.Store = (*Store)(nil)

// LoadAccounts reads every account row.
func (s *Store) LoadAccounts(ctx context.Context) (model.Accounts, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT username, password_hash, created_at, total_games, total_wins FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("%w: query accounts: %v", storage.ErrUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	accounts := model.Accounts{}
	for rows.Next() {
		var (
			username  string
			createdAt string
			acct      model.Account
		)
		if err := rows.Scan(&username, &acct.PasswordHash, &createdAt, &acct.TotalGames, &acct.TotalWins); err != nil {
			return nil, fmt.Errorf("%w: scan account: %v", storage.ErrCorrupt, err)
		}
		acct.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: created_at for %s: %v", storage.ErrCorrupt, username, err)
		}
		accounts[username] = acct
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate accounts: %v", storage.ErrUnavailable, err)
	}
	return accounts, nil
}

// LoadScores reads every score row.
func (s *Store) LoadScores(ctx context.Context) (model.Scores, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT
		username,
		ttt_games, ttt_wins, ttt_draws, ttt_losses,
		ng_games, ng_best_attempts, ng_total_attempts,
		mc_games, mc_best_moves, mc_total_moves
	FROM scores`)
	if err != nil {
		return nil, fmt.Errorf("%w: query scores: %v", storage.ErrUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	scores := model.Scores{}
	for rows.Next() {
		var (
			username  string
			gs        model.GameScores
			bestGuess sql.NullInt64
			bestMoves sql.NullInt64
		)
		if err := rows.Scan(
			&username,
			&gs.TicTacToe.Games, &gs.TicTacToe.Wins, &gs.TicTacToe.Draws, &gs.TicTacToe.Losses,
			&gs.NumberGuess.Games, &bestGuess, &gs.NumberGuess.TotalAttempts,
			&gs.MemoryCards.Games, &bestMoves, &gs.MemoryCards.TotalMoves,
		); err != nil {
			return nil, fmt.Errorf("%w: scan scores: %v", storage.ErrCorrupt, err)
		}
		gs.NumberGuess.BestAttempts = fromNull(bestGuess)
		gs.MemoryCards.BestMoves = fromNull(bestMoves)
		scores[username] = gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate scores: %v", storage.ErrUnavailable, err)
	}
	return scores, nil
}

// SaveAccounts replaces the accounts table.
func (s *Store) SaveAccounts(ctx context.Context, accounts model.Accounts) error {
	return s.replace(ctx, "accounts", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO accounts (
			username, password_hash, created_at, total_games, total_wins
		) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for username, acct := range accounts {
			if _, err := stmt.ExecContext(ctx,
				username,
				acct.PasswordHash,
				acct.CreatedAt.Format(time.RFC3339Nano),
				acct.TotalGames,
				acct.TotalWins,
			); err != nil {
				return fmt.Errorf("insert account %s: %w", username, err)
			}
		}
		return nil
	})
}

// SaveScores replaces the scores table.
func (s *Store) SaveScores(ctx context.Context, scores model.Scores) error {
	return s.replace(ctx, "scores", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO scores (
			username,
			ttt_games, ttt_wins, ttt_draws, ttt_losses,
			ng_games, ng_best_attempts, ng_total_attempts,
			mc_games, mc_best_moves, mc_total_moves
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for username, gs := range scores {
			if _, err := stmt.ExecContext(ctx,
				username,
				gs.TicTacToe.Games, gs.TicTacToe.Wins, gs.TicTacToe.Draws, gs.TicTacToe.Losses,
				gs.NumberGuess.Games, toNull(gs.NumberGuess.BestAttempts), gs.NumberGuess.TotalAttempts,
				gs.MemoryCards.Games, toNull(gs.MemoryCards.BestMoves), gs.MemoryCards.TotalMoves,
			); err != nil {
				return fmt.Errorf("insert scores %s: %w", username, err)
			}
		}
		return nil
	})
}

// replace clears table and refills it with insert inside one transaction
func (s *Store) replace(ctx context.Context, table string, insert func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", storage.ErrUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	// table is one of two constants, never user input
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("%w: clear %s: %v", storage.ErrUnavailable, table, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %v", storage.ErrUnavailable, table, err)
	}
	return nil
}

func toNull(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func fromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
