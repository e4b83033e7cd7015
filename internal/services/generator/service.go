package generator

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/mcoot/wordsearch/internal/dependencies/random"
	"github.com/mcoot/wordsearch/internal/model"
)

const (
	// MaxPlacementAttempts is the number of random positions tried per word
	MaxPlacementAttempts = 100

	// DefaultAlphabet is used for filler letters
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÜ"
)

// Puzzle is a generated grid together with the words hidden in it
type Puzzle struct {
	Grid   *model.Grid
	Placed []model.PlacedWord
}

// Service builds word-search grids. All randomness comes from the injected source.
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new generator
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger,
	}
}

// Generate creates a full puzzle: up to count words placed, remaining cells filled
func (s *Service) Generate(size int, words []string, count int, alphabet string) (*Puzzle, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidGridSize, size)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidWordCount, count)
	}
	if utf8.RuneCountInString(alphabet) == 0 {
		alphabet = DefaultAlphabet
	}

	grid := model.NewGrid(size)
	placed := s.Place(grid, words, count)
	if len(placed) == 0 {
		return nil, model.ErrEmptyWordList
	}
	s.Fill(grid, alphabet)

	return &Puzzle{Grid: grid, Placed: placed}, nil
}

// Place hides up to maxCount words in the grid. The grid is cleared first.
// A word that finds no valid position within MaxPlacementAttempts is skipped.
func (s *Service) Place(grid *model.Grid, words []string, maxCount int) []model.PlacedWord {
	grid.Clear()

	candidates := s.shuffle(words)
	used := make(map[string]struct{}, maxCount)
	placed := make([]model.PlacedWord, 0, maxCount)

	for _, word := range candidates {
		if len(placed) >= maxCount {
			break
		}
		if _, dup := used[word]; dup {
			continue
		}
		n := utf8.RuneCountInString(word)
		if n == 0 || n > grid.Size {
			continue
		}

		pw, ok := s.tryPlace(grid, word)
		if !ok {
			s.logger.Debug("placement skipped",
				slog.String("word", word),
				slog.Int("attempts", MaxPlacementAttempts),
			)
			continue
		}
		used[word] = struct{}{}
		placed = append(placed, pw)
	}

	return placed
}

func (s *Service) tryPlace(grid *model.Grid, word string) (model.PlacedWord, bool) {
	for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
		orientation := model.Horizontal
		if s.random.Intn(2) == 1 {
			orientation = model.Vertical
		}
		start := model.Position{
			Row: s.random.Intn(grid.Size),
			Col: s.random.Intn(grid.Size),
		}

		if CanPlace(grid, word, start, orientation) {
			pw := model.PlacedWord{Text: word, Orientation: orientation, Start: start}
			insertWord(grid, pw)
			return pw, true
		}
	}
	return model.PlacedWord{}, false
}

// shuffle returns a Fisher-Yates shuffled copy of words
func (s *Service) shuffle(words []string) []string {
	out := make([]string, len(words))
	copy(out, words)
	for i := len(out) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// CanPlace reports whether word fits at start: every covered cell is in
// bounds and either empty or already holding the same letter.
func CanPlace(grid *model.Grid, word string, start model.Position, orientation model.Orientation) bool {
	dRow, dCol := orientation.Step()
	i := 0
	for _, letter := range word {
		pos := start.Neighbour(i*dRow, i*dCol)
		if !grid.IsValidPosition(pos) {
			return false
		}
		existing := grid.Letter(pos)
		if existing != 0 && existing != letter {
			return false
		}
		i++
	}
	return true
}

// insertWord writes the word into the grid. Callers must check CanPlace first.
func insertWord(grid *model.Grid, pw model.PlacedWord) {
	positions := pw.Positions()
	i := 0
	for _, letter := range pw.Text {
		if err := grid.Set(positions[i], letter); err != nil {
			panic(err)
		}
		i++
	}
}

// Fill puts a random alphabet letter into every empty cell
func (s *Service) Fill(grid *model.Grid, alphabet string) {
	letters := []rune(alphabet)
	if len(letters) == 0 {
		letters = []rune(DefaultAlphabet)
	}
	grid.ForEach(func(pos model.Position, cell *model.Cell) {
		if cell.IsEmpty() {
			cell.Letter = letters[s.random.Intn(len(letters))]
			cell.State = model.CellFilled
		}
	})
}
