package leaderboard

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/mcoot/gamehub/internal/metrics"
	"github.com/mcoot/gamehub/internal/model"
	"github.com/mcoot/gamehub/internal/storage"
)

// missingBest ranks a user with no recorded best as if their best were the worst possible
const missingBest = math.MaxInt

// Service builds ranked views over the record store. It never writes.
type Service struct {
	records *storage.Records
	metrics *metrics.Manager
	logger  *slog.Logger
}

// New creates a new leaderboard service. metrics may be nil.
func New(records *storage.Records, m *metrics.Manager, logger *slog.Logger) *Service {
	return &Service{
		records: records,
		metrics: m,
		logger:  logger,
	}
}

// Rank returns at most limit entries (DefaultLeaderboardLimit when limit <= 0).
// A nil kind ranks every account by total wins then win rate; otherwise only
// users who played that game are ranked, using that game's ordering.
func (s *Service) Rank(ctx context.Context, kind *model.GameKind, limit int) []model.LeaderboardEntry {
	if limit <= 0 {
		limit = model.DefaultLeaderboardLimit
	}

	board := "overall"
	if kind != nil {
		board = string(*kind)
	}
	s.metrics.LeaderboardRead(board)

	snap := s.records.View(ctx)

	var entries []model.LeaderboardEntry
	if kind == nil {
		entries = RankOverall(snap.Accounts)
	} else {
		entries = RankGame(snap.Scores, *kind)
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}

	s.logger.Debug("leaderboard built",
		slog.String("board", board),
		slog.Int("entries", len(entries)),
	)
	return entries
}

// RankOverall orders every account by (total wins, win rate), both descending
func RankOverall(accounts model.Accounts) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(accounts))
	for _, username := range sortedUsernames(accounts) {
		acct := accounts[username]
		entries = append(entries, model.LeaderboardEntry{
			Username:   username,
			TotalGames: acct.TotalGames,
			TotalWins:  acct.TotalWins,
			WinRate:    acct.WinRate(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalWins != b.TotalWins {
			return a.TotalWins > b.TotalWins
		}
		return a.WinRate > b.WinRate
	})
	return entries
}

// RankGame orders the users who have played kind.
//
// Tic-tac-toe sorts descending by (wins, -losses). Number-guess and
// memory-cards use the key (games, -best) sorted descending: more games
// first, then the lower best, with a missing best last.
func RankGame(scores model.Scores, kind model.GameKind) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(scores))
	for _, username := range sortedUsernames(scores) {
		gs := scores[username]
		if gs.GamesFor(kind) <= 0 {
			continue
		}
		k := kind
		entry := model.LeaderboardEntry{Username: username, Game: &k}
		switch kind {
		case model.GameTicTacToe:
			ttt := gs.TicTacToe
			entry.TicTacToe = &ttt
		case model.GameNumberGuess:
			ng := gs.Clone().NumberGuess
			entry.NumberGuess = &ng
		case model.GameMemoryCards:
			mc := gs.Clone().MemoryCards
			entry.MemoryCards = &mc
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return gameKeyGreater(kind, entries[i], entries[j])
	})
	return entries
}

// gameKeyGreater reports whether a's two-part sort key is strictly greater than b's
func gameKeyGreater(kind model.GameKind, a, b model.LeaderboardEntry) bool {
	var a1, a2, b1, b2 int
	switch kind {
	case model.GameTicTacToe:
		a1, a2 = a.TicTacToe.Wins, -a.TicTacToe.Losses
		b1, b2 = b.TicTacToe.Wins, -b.TicTacToe.Losses
	case model.GameNumberGuess:
		a1, a2 = a.NumberGuess.Games, -bestOrMissing(a.NumberGuess.BestAttempts)
		b1, b2 = b.NumberGuess.Games, -bestOrMissing(b.NumberGuess.BestAttempts)
	case model.GameMemoryCards:
		a1, a2 = a.MemoryCards.Games, -bestOrMissing(a.MemoryCards.BestMoves)
		b1, b2 = b.MemoryCards.Games, -bestOrMissing(b.MemoryCards.BestMoves)
	}
	if a1 != b1 {
		return a1 > b1
	}
	return a2 > b2
}

func bestOrMissing(best *int) int {
	if best == nil {
		return missingBest
	}
	return *best
}

// sortedUsernames gives the ranking a fixed starting order so stable sorting is reproducible
func sortedUsernames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
