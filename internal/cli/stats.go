package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your per-game stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result UserStats

			if err := client.Get("/api/v1/user/stats", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "leaderboard [overall|tic-tac-toe|number-guess|memory-cards]",
		Short:     "Show a leaderboard",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"overall", "tic-tac-toe", "number-guess", "memory-cards"},
		RunE: func(cmd *cobra.Command, args []string) error {
			board := "overall"
			if len(args) == 1 {
				board = args[0]
			}

			var result LeaderboardResult
			if err := client.Get("/api/v1/scoreboard/"+board, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
