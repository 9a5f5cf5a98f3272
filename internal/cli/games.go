package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("position must be a number: %q", arg)
	}
	return pos, nil
}

func newTicTacToeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ttt",
		Aliases: []string{"tic-tac-toe"},
		Short:   "Play tic-tac-toe",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TicTacToeState
			if err := client.Post("/api/v1/tic-tac-toe/start", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move <position>",
		Short: "Place the current mark at a cell (0-8)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			var result TicTacToeState
			if err := client.Post("/api/v1/tic-tac-toe/move", map[string]int{"position": pos}, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}

func newGuessCmd() *cobra.Command {
	var difficulty string

	cmd := &cobra.Command{
		Use:     "guess",
		Aliases: []string{"number-guess"},
		Short:   "Play number guessing",
	}

	start := &cobra.Command{
		Use:   "start",
		Short: "Start a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if difficulty != "" {
				body = map[string]string{"difficulty": difficulty}
			}

			var result NumberGuessState
			if err := client.Post("/api/v1/number-guess/start", body, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
	start.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium, hard or expert (default medium)")
	cmd.AddCommand(start)

	cmd.AddCommand(&cobra.Command{
		Use:   "try <number>",
		Short: "Submit a guess",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("guess must be a number: %q", args[0])
			}

			var result NumberGuessState
			if err := client.Post("/api/v1/number-guess/guess", map[string]int{"guess": n}, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "forfeit",
		Short: "Give up the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result NumberGuessState
			if err := client.Post("/api/v1/number-guess/forfeit", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}

func newMemoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "memory",
		Aliases: []string{"memory-cards"},
		Short:   "Play memory cards",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Deal a new board",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MemoryCardsState
			if err := client.Post("/api/v1/memory-cards/start", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "flip <position>",
		Short: "Flip a card (0-15)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}

			var result MemoryCardsState
			if err := client.Post("/api/v1/memory-cards/flip", map[string]int{"position": pos}, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}
