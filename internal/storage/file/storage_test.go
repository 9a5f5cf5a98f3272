package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	dir     string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = s.T().TempDir()
	st, err := New(Config{Dir: s.dir})
	s.Require().NoError(err)
	s.storage = st
	s.ctx = context.Background()
}

func (s *StorageSuite) TestMissingFilesLoadEmpty() {
	accounts, err := s.storage.LoadAccounts(s.ctx)
	s.Require().NoError(err)
	s.Empty(accounts)

	scores, err := s.storage.LoadScores(s.ctx)
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *StorageSuite) TestRoundTrip() {
	created := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	accounts := model.Accounts{
		"alice": {PasswordHash: "hash-a", CreatedAt: created, TotalGames: 3, TotalWins: 2},
		"bob":   {PasswordHash: "hash-b", CreatedAt: created},
	}
	scores := model.Scores{
		"alice": {
			TicTacToe:   model.TicTacToeStats{Games: 1, Wins: 1},
			NumberGuess: model.NumberGuessStats{Games: 1, BestAttempts: model.IntPtr(5), TotalAttempts: 5},
			MemoryCards: model.MemoryCardsStats{Games: 1, BestMoves: model.IntPtr(12), TotalMoves: 12},
		},
		"bob": {},
	}

	s.Require().NoError(s.storage.SaveAccounts(s.ctx, accounts))
	s.Require().NoError(s.storage.SaveScores(s.ctx, scores))

	loadedAccounts, err := s.storage.LoadAccounts(s.ctx)
	s.Require().NoError(err)
	s.Equal(accounts, loadedAccounts)

	loadedScores, err := s.storage.LoadScores(s.ctx)
	s.Require().NoError(err)
	s.Equal(scores, loadedScores)
}

func (s *StorageSuite) TestFileShape() {
	scores := model.Scores{"bob": {}}
	s.Require().NoError(s.storage.SaveScores(s.ctx, scores))

	data, err := os.ReadFile(filepath.Join(s.dir, "scores.json"))
	s.Require().NoError(err)

	var raw map[string]map[string]map[string]any
	s.Require().NoError(json.Unmarshal(data, &raw))

	s.Contains(raw["bob"], "tic_tac_toe")
	s.Contains(raw["bob"]["number_guess"], "best_attempts")
	s.Nil(raw["bob"]["number_guess"]["best_attempts"])
	s.Nil(raw["bob"]["memory_cards"]["best_moves"])
}

func (s *StorageSuite) TestCorruptFileReportsCorrupt() {
	err := os.WriteFile(filepath.Join(s.dir, "users.json"), []byte("{not json"), 0o600)
	s.Require().NoError(err)

	_, err = s.storage.LoadAccounts(s.ctx)
	s.ErrorIs(err, storage.ErrCorrupt)
}

func (s *StorageSuite) TestEmptyFileLoadsEmpty() {
	err := os.WriteFile(filepath.Join(s.dir, "scores.json"), nil, 0o600)
	s.Require().NoError(err)

	scores, err := s.storage.LoadScores(s.ctx)
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *StorageSuite) TestSaveLeavesNoTempFiles() {
	s.Require().NoError(s.storage.SaveAccounts(s.ctx, model.Accounts{"alice": {}}))

	entries, err := os.ReadDir(s.dir)
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.Equal("users.json", entries[0].Name())
}
