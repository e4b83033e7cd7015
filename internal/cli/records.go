package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Best time, preferences and history",
	}

	cmd.AddCommand(newRecordsMeCmd())
	cmd.AddCommand(newRecordsShowWordsCmd())

	return cmd
}

func newRecordsMeCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show your best time and recent games",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/records/me"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result Records
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of recent games to list")

	return cmd
}

func newRecordsShowWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "show-words on|off",
		Short:     "Set whether new puzzles show the word list",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			show, err := parseOnOff(args[0])
			if err != nil {
				return err
			}

			var result Preferences
			if err := client.Patch("/api/v1/preferences", map[string]bool{"show_words": show}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
