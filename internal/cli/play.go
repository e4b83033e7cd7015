package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/mcoot/wordsearch/internal/factory"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/tui"
)

// localPlayer owns every game started by the terminal front-end
const localPlayer = "local"

type playOptions struct {
	size     int
	words    int
	seed     int64
	wordList string
	records  string
	mute     bool
}

func newPlayCmd() *cobra.Command {
	defaults := game.DefaultConfig()
	opts := playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal without a server",
		Long: `Play word search puzzles in the terminal.

Select letters with the mouse: click toggles a cell, dragging selects a
line of cells. Best times and preferences are kept in a local SQLite file;
pass --records "" to keep them in memory only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var seed *int64
			if cmd.Flags().Changed("seed") {
				seed = &opts.seed
			}
			return runPlay(cmd, opts, seed)
		},
	}

	cmd.Annotations = map[string]string{offlineAnnotation: "true"}

	cmd.Flags().IntVar(&opts.size, "size", defaults.DefaultSize, "Grid size")
	cmd.Flags().IntVar(&opts.words, "words", defaults.DefaultWordCount, "Number of hidden words")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for the first puzzle")
	cmd.Flags().StringVar(&opts.wordList, "wordlist", "data/wordlist.json", "Word list file")
	cmd.Flags().StringVar(&opts.records, "records", defaultRecordsFile(), "SQLite file for best times")
	cmd.Flags().BoolVar(&opts.mute, "mute", false, "Disable sound")

	return cmd
}

func runPlay(cmd *cobra.Command, opts playOptions, seed *int64) error {
	ctx := cmd.Context()

	logger, closeLog, err := playLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	appCfg := factory.Config{
		Logger: logger,
		GameConfig: game.Config{
			DefaultSize:      opts.size,
			DefaultWordCount: opts.words,
		},
	}
	if opts.records != "" {
		if err := os.MkdirAll(filepath.Dir(opts.records), 0700); err != nil {
			return err
		}
		appCfg.StorageType = factory.StorageTypeSQLite
		appCfg.SQLitePath = opts.records
	}

	app, err := factory.New(appCfg)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() { _ = app.Close() }()
	defer app.Shutdown()

	if err := app.LoadWordList(ctx, opts.wordList, nil); err != nil {
		return err
	}

	var sound tui.Sound = tui.Silent{}
	if !opts.mute {
		speaker, err := tui.NewSpeaker()
		if err != nil {
			logger.Warn("sound disabled", slog.String("error", err.Error()))
		} else {
			sound = speaker
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ui := tui.New(screen, app.GameController, app.Records, sound, logger, localPlayer, game.NewGameOptions{Seed: seed})
	return ui.Run(ctx)
}

// playLogger writes to a file when verbose, since stderr belongs to the screen
func playLogger() (*slog.Logger, func(), error) {
	if !cfg.Verbose {
		return cfg.Logger(), func() {}, nil
	}
	path := filepath.Join(filepath.Dir(cfg.TokenFile), "play.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

func defaultRecordsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wsgame", "records.db")
}
