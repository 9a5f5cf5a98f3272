package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamehub/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestEmptyTablesLoadAsEmptyMaps() {
	accounts, err := s.storage.LoadAccounts(s.ctx)
	s.Require().NoError(err)
	s.NotNil(accounts)
	s.Empty(accounts)

	scores, err := s.storage.LoadScores(s.ctx)
	s.Require().NoError(err)
	s.NotNil(scores)
	s.Empty(scores)
}

func (s *StorageSuite) TestSaveAndLoadRoundTrip() {
	accounts := model.Accounts{
		"alice": {PasswordHash: "h", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TotalGames: 2, TotalWins: 1},
	}
	scores := model.Scores{
		"alice": {
			TicTacToe:   model.TicTacToeStats{Games: 1, Wins: 1},
			NumberGuess: model.NumberGuessStats{Games: 1, BestAttempts: model.IntPtr(4), TotalAttempts: 4},
		},
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

func (s *StorageSuite) TestLoadedTablesAreCopies() {
	scores := model.Scores{
		"alice": {NumberGuess: model.NumberGuessStats{Games: 1, BestAttempts: model.IntPtr(4)}},
	}
	s.Require().NoError(s.storage.SaveScores(s.ctx, scores))

	loaded, _ := s.storage.LoadScores(s.ctx)
	*loaded["alice"].NumberGuess.BestAttempts = 1
	delete(loaded, "alice")

	again, _ := s.storage.LoadScores(s.ctx)
	s.Require().Contains(again, "alice")
	s.Equal(4, *again["alice"].NumberGuess.BestAttempts)
}
