package model

import (
	"encoding/json"
	"sort"

	"github.com/mcoot/wordsearch/internal/util/collections"
)

// Selection is the set of currently selected cells
type Selection struct {
	cells collections.Set[Position]
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{cells: collections.NewSet[Position]()}
}

// Contains returns true if the position is selected
func (s *Selection) Contains(pos Position) bool {
	return s.cells.Contains(pos)
}

// Add selects a position
func (s *Selection) Add(pos Position) {
	if s.cells == nil {
		s.cells = collections.NewSet[Position]()
	}
	s.cells.Add(pos)
}

// Remove deselects a position
func (s *Selection) Remove(pos Position) {
	s.cells.Remove(pos)
}

// Toggle flips membership and returns whether the position is now selected
func (s *Selection) Toggle(pos Position) bool {
	if s.cells.Contains(pos) {
		s.cells.Remove(pos)
		return false
	}
	s.Add(pos)
	return true
}

// Len returns the number of selected cells
func (s *Selection) Len() int {
	return s.cells.Len()
}

// Clear deselects everything
func (s *Selection) Clear() {
	s.cells.Clear()
}

// Positions returns the selected positions in row-major order
func (s *Selection) Positions() []Position {
	positions := s.cells.Items()
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Less(positions[j])
	})
	return positions
}

// Clone returns an independent copy of the selection
func (s *Selection) Clone() *Selection {
	return &Selection{cells: collections.NewSet(s.cells.Items()...)}
}

// MarshalJSON encodes the selection as a row-major list of positions
func (s *Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Positions())
}

// UnmarshalJSON decodes a list of positions
func (s *Selection) UnmarshalJSON(data []byte) error {
	var positions []Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return err
	}
	s.cells = collections.NewSet(positions...)
	return nil
}
