package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Investigation commands",
	}

	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameBeginCmd())
	cmd.AddCommand(newGameStageCmd())
	cmd.AddCommand(newGameClueCmd())
	cmd.AddCommand(newGameInterviewCmd())
	cmd.AddCommand(newGameAccuseCmd())
	cmd.AddCommand(newGameRestartCmd())

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current investigation",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot

			if err := client.Get("/api/v1/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameBeginCmd() *cobra.Command {
	var difficulty string

	cmd := &cobra.Command{
		Use:   "begin",
		Short: "Begin the next mystery level",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if difficulty != "" {
				req["difficulty"] = difficulty
			}
			var result Snapshot

			if err := client.Post("/api/v1/game/begin", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, medium, hard (default medium)")

	return cmd
}

func newGameStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stage <clue_hunt|interview|guess>",
		Short: "Move to another investigation stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"stage": args[0]}
			var result Snapshot

			if err := client.Post("/api/v1/game/stage", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameClueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clue <number>",
		Short: "Investigate a clue by its number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Clues are numbered from 1 in the lineup; the API indexes from 0
			number, err := strconv.Atoi(args[0])
			if err != nil || number < 1 {
				return fmt.Errorf("clue number must be a positive integer")
			}

			var result Snapshot
			path := fmt.Sprintf("/api/v1/game/clues/%d", number-1)
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameInterviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interview <suspect name>",
		Short: "Interview a suspect by full name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"suspect": args[0]}
			var result Snapshot

			if err := client.Post("/api/v1/game/interviews", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAccuseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accuse <suspect name>",
		Short: "Accuse a suspect of the crime",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("accuse takes exactly one suspect name (quote multi-word names)")
			}

			req := map[string]string{"suspect": args[0]}
			var result Snapshot

			if err := client.Post("/api/v1/game/accuse", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Leave the completed case and begin the next one",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot

			if err := client.Post("/api/v1/game/restart", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
