package generator

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v2"

	"github.com/mcoot/wordsearch/internal/model"
)

// Snapshot is a portable description of a generated puzzle
type Snapshot struct {
	Seed  int64              `yaml:"seed"`
	Size  int                `yaml:"size"`
	Words []model.PlacedWord `yaml:"words"`
	Rows  []string           `yaml:"rows"`
}

// NewSnapshot captures the letters and hidden words of a puzzle
func NewSnapshot(seed int64, puzzle *Puzzle) *Snapshot {
	return &Snapshot{
		Seed:  seed,
		Size:  puzzle.Grid.Size,
		Words: puzzle.Placed,
		Rows:  puzzle.Grid.Rows(),
	}
}

// Serialize renders the snapshot as YAML
func (snapshot *Snapshot) Serialize() ([]byte, error) {
	return yaml.Marshal(snapshot)
}

// Puzzle rebuilds the grid, checking that every hidden word matches its letters
func (snapshot *Snapshot) Puzzle() (*Puzzle, error) {
	if snapshot.Size <= 0 || len(snapshot.Rows) != snapshot.Size {
		return nil, fmt.Errorf("%w: %d rows for size %d", model.ErrInvalidGridSize, len(snapshot.Rows), snapshot.Size)
	}

	grid := model.NewGrid(snapshot.Size)
	for row, line := range snapshot.Rows {
		if utf8.RuneCountInString(line) != snapshot.Size {
			return nil, fmt.Errorf("%w: row %d has %d letters", model.ErrInvalidGridSize, row, utf8.RuneCountInString(line))
		}
		col := 0
		for _, letter := range line {
			if err := grid.Set(model.Position{Row: row, Col: col}, letter); err != nil {
				return nil, err
			}
			col++
		}
	}

	for _, pw := range snapshot.Words {
		positions := pw.Positions()
		i := 0
		for _, letter := range pw.Text {
			cell, err := grid.At(positions[i])
			if err != nil {
				return nil, err
			}
			if cell.Letter != letter {
				return nil, fmt.Errorf("%w: %s at %s", model.ErrLetterConflict, pw.Text, positions[i])
			}
			i++
		}
	}

	return &Puzzle{Grid: grid, Placed: snapshot.Words}, nil
}

// LoadSnapshot parses a YAML snapshot
func LoadSnapshot(in []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal(in, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
