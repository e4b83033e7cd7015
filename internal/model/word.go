package model

import "unicode/utf8"

// Orientation is the direction a word runs across the grid
type Orientation string

const (
	Horizontal Orientation = "horizontal" // left to right
	Vertical   Orientation = "vertical"   // top to bottom
)

// Step returns the row and column delta between consecutive letters
func (o Orientation) Step() (dRow, dCol int) {
	if o == Vertical {
		return 1, 0
	}
	return 0, 1
}

// PlacedWord records where a word was written into the grid
type PlacedWord struct {
	Text        string      `json:"text" yaml:"text"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`
	Start       Position    `json:"start" yaml:"start"`
}

// Len returns the word length in letters
func (w PlacedWord) Len() int {
	return utf8.RuneCountInString(w.Text)
}

// Positions returns the cells covered by the word, first letter first
func (w PlacedWord) Positions() []Position {
	dRow, dCol := w.Orientation.Step()
	n := w.Len()
	positions := make([]Position, n)
	for i := 0; i < n; i++ {
		positions[i] = w.Start.Neighbour(i*dRow, i*dCol)
	}
	return positions
}

// FoundWord is a placed word the player has located
type FoundWord struct {
	Text      string     `json:"text"`
	Positions []Position `json:"positions"`
	Color     ColorPair  `json:"color"`
}
