package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Puzzle commands",
	}

	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameToggleCmd())
	cmd.AddCommand(newGameSelectCmd())
	cmd.AddCommand(newGameSubmitCmd())
	cmd.AddCommand(newGameClearCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameWordsCmd())
	cmd.AddCommand(newGameSnapshotCmd())
	cmd.AddCommand(newGameAbandonCmd())

	return cmd
}

func gamePath(id string, suffix string) string {
	return fmt.Sprintf("/api/v1/games/%s%s", id, suffix)
}

func newGameNewCmd() *cobra.Command {
	var size, words int
	var seed int64

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if size > 0 {
				req["size"] = size
			}
			if words > 0 {
				req["word_count"] = words
			}
			if cmd.Flags().Changed("seed") {
				req["seed"] = seed
			}

			var result Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "Grid size (server default if omitted)")
	cmd.Flags().IntVar(&words, "words", 0, "Number of hidden words (server default if omitted)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for a reproducible puzzle")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get(gamePath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id> <row> <col>",
		Short: "Select or deselect one cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid row: %w", err)
			}

			col, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid col: %w", err)
			}

			var result Game
			req := map[string]int{"row": row, "col": col}
			if err := client.Post(gamePath(args[0], "/toggle"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameSelectCmd() *cobra.Command {
	var submit bool

	cmd := &cobra.Command{
		Use:   "select <id> <row,col>...",
		Short: "Toggle several cells, optionally submitting afterwards",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			positions := make([]Position, 0, len(args)-1)
			for _, arg := range args[1:] {
				pos, err := parsePosition(arg)
				if err != nil {
					return err
				}
				positions = append(positions, pos)
			}

			var game Game
			for _, pos := range positions {
				if err := client.Post(gamePath(args[0], "/toggle"), pos, &game); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			if !submit {
				out.Print(game)
				return nil
			}

			var result SubmitResult
			if err := client.Post(gamePath(args[0], "/submit"), nil, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&submit, "submit", false, "Submit the selection afterwards")

	return cmd
}

func newGameSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Check the current selection against the hidden words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SubmitResult
			if err := client.Post(gamePath(args[0], "/submit"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id>",
		Short: "Deselect every cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Delete(gamePath(args[0], "/selection"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Replace the puzzle with a fresh one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Post(gamePath(args[0], "/reset"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "words <id> on|off",
		Short:     "Show or hide the remaining words",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			show, err := parseOnOff(args[1])
			if err != nil {
				return err
			}

			var result Game
			req := map[string]bool{"show_words": show}
			if err := client.Patch(gamePath(args[0], "/words"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <id>",
		Short: "Print the puzzle as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.GetRaw(gamePath(args[0], "/snapshot"), "application/yaml")
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Discard a puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0], ""), nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Game abandoned")
			return nil
		},
	}
}

// parsePosition reads "row,col"
func parsePosition(s string) (Position, error) {
	rowStr, colStr, ok := strings.Cut(s, ",")
	if !ok {
		return Position{}, fmt.Errorf("invalid position %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return Position{}, fmt.Errorf("invalid row in %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return Position{}, fmt.Errorf("invalid col in %q: %w", s, err)
	}
	return Position{Row: row, Col: col}, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
