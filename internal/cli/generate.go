package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/wordsearch/internal/dependencies/random"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/generator"
	"github.com/mcoot/wordsearch/internal/services/wordlist"
	"github.com/mcoot/wordsearch/internal/storage/memory"
)

// generateOptions are the flags of the generate command
type generateOptions struct {
	size     int
	words    int
	seed     int64
	seeded   bool
	wordList string
	format   string
}

func newGenerateCmd() *cobra.Command {
	defaults := game.DefaultConfig()
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a puzzle without a server",
		Long: `Generate a word search puzzle locally and print it.

The text format shows the grid and the hidden words with their positions;
the yaml format is the same snapshot the server exports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seeded = cmd.Flags().Changed("seed")
			return runGenerate(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Annotations = map[string]string{offlineAnnotation: "true"}

	cmd.Flags().IntVar(&opts.size, "size", defaults.DefaultSize, "Grid size")
	cmd.Flags().IntVar(&opts.words, "words", defaults.DefaultWordCount, "Number of hidden words")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for a reproducible puzzle (random if omitted)")
	cmd.Flags().StringVar(&opts.wordList, "wordlist", "data/wordlist.json", "Word list file")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, yaml")

	return cmd
}

func runGenerate(ctx context.Context, opts generateOptions, w io.Writer) error {
	logger := cfg.Logger()

	words := wordlist.New(memory.New(), logger)
	if err := words.LoadFromFile(ctx, opts.wordList); err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	candidates, err := words.Words(opts.size)
	if err != nil {
		return err
	}

	seed := opts.seed
	if !opts.seeded {
		seed = random.New().Seed()
	}

	puzzle, err := generator.New(random.NewSeeded(seed), logger).Generate(opts.size, candidates, opts.words, generator.DefaultAlphabet)
	if err != nil {
		return err
	}
	snapshot := generator.NewSnapshot(seed, puzzle)

	switch opts.format {
	case "yaml":
		data, err := snapshot.Serialize()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "text":
		printSnapshot(w, snapshot)
		return nil
	default:
		return fmt.Errorf("unknown format %q: want text or yaml", opts.format)
	}
}

func printSnapshot(w io.Writer, snapshot *generator.Snapshot) {
	fmt.Fprintf(w, "Seed: %d\n\n", snapshot.Seed)
	for _, row := range snapshot.Rows {
		letters := strings.Split(row, "")
		fmt.Fprintf(w, "  %s\n", strings.Join(letters, " "))
	}
	fmt.Fprintf(w, "\nWords (%d):\n", len(snapshot.Words))
	for _, pw := range snapshot.Words {
		fmt.Fprintf(w, "  %-12s %-10s row %d, col %d\n", pw.Text, pw.Orientation, pw.Start.Row, pw.Start.Col)
	}
}
