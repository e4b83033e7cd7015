package wincheck

import (
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mcoot/wordsearch/internal/dependencies/random"
	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/selection"
)

// Kind classifies a submitted selection
type Kind string

const (
	NoMatch Kind = "no_match"
	Found   Kind = "found"
)

// Outcome is the result of checking the current selection
type Outcome struct {
	Kind      Kind
	Word      string
	Positions []model.Position // Row-major
}

// Checker decides whether a selection spells an outstanding word and
// marks found words on the grid
type Checker struct {
	random random.Random
}

// New creates a Checker. The random source picks found-word colors.
func New(rnd random.Random) *Checker {
	return &Checker{random: rnd}
}

// Check reads the selected letters in row-major order, regardless of the
// order they were clicked, and matches them against the outstanding words.
// A match also requires the cells to form one straight, gap-free run.
func (c *Checker) Check(grid *model.Grid, sel *model.Selection, outstanding []string) Outcome {
	positions := sel.Positions()
	if len(positions) == 0 {
		return Outcome{Kind: NoMatch}
	}

	letters := make([]rune, len(positions))
	for i, pos := range positions {
		letters[i] = grid.Letter(pos)
	}
	word := string(letters)

	if !contains(outstanding, word) {
		return Outcome{Kind: NoMatch, Word: word}
	}
	if utf8.RuneCountInString(word) != len(positions) || !IsContiguous(positions) {
		return Outcome{Kind: NoMatch, Word: word}
	}

	return Outcome{Kind: Found, Word: word, Positions: positions}
}

// Apply marks the cells of a found word, gives them one shared color and
// drops them from the selection
func (c *Checker) Apply(grid *model.Grid, sel *model.Selection, outcome Outcome) model.FoundWord {
	color := c.Color()
	for _, pos := range outcome.Positions {
		grid.MustAt(pos).MarkFound(&color)
		sel.Remove(pos)
	}
	selection.Recompute(grid, sel)

	return model.FoundWord{
		Text:      outcome.Word,
		Positions: outcome.Positions,
		Color:     color,
	}
}

// Color picks a light pastel: hue 0-359, saturation 70-99%, lightness 70-89%.
// The background is 5% lighter than the border.
func (c *Checker) Color() model.ColorPair {
	hue := float64(c.random.Intn(360))
	saturation := float64(70+c.random.Intn(30)) / 100
	lightness := float64(70+c.random.Intn(20)) / 100

	return model.ColorPair{
		Border:     colorful.Hsl(hue, saturation, lightness).Hex(),
		Background: colorful.Hsl(hue, saturation, lightness+0.05).Hex(),
	}
}

// IsContiguous reports whether row-major sorted positions form a single
// horizontal or vertical run with no gaps
func IsContiguous(positions []model.Position) bool {
	if len(positions) == 0 {
		return false
	}

	sameRow, sameCol := true, true
	for i := 1; i < len(positions); i++ {
		prev, cur := positions[i-1], positions[i]
		if cur.Row != prev.Row || cur.Col != prev.Col+1 {
			sameRow = false
		}
		if cur.Col != prev.Col || cur.Row != prev.Row+1 {
			sameCol = false
		}
	}
	return sameRow || sameCol
}

func contains(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
