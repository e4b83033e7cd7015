package model

import "fmt"

// Position identifies a cell on the grid
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Neighbour returns the position offset by the given deltas
func (p Position) Neighbour(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Less orders positions row-major
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// CellState is the lifecycle state of a single cell
type CellState string

const (
	CellEmpty    CellState = "empty"    // No letter yet (only during generation)
	CellFilled   CellState = "filled"   // Holds a letter, not selected
	CellSelected CellState = "selected" // Part of the current selection
	CellFound    CellState = "found"    // Part of a found word, terminal
)

// Side is a bitmask of orthogonal directions
type Side uint8

const (
	SideTop Side = 1 << iota
	SideBottom
	SideLeft
	SideRight
)

// Has reports whether all bits of s are set
func (s Side) Has(other Side) bool {
	return s&other == other
}

// Corner is a bitmask of the four cell corners
type Corner uint8

const (
	CornerTopLeft Corner = 1 << iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// AllCorners has every corner bit set
const AllCorners = CornerTopLeft | CornerTopRight | CornerBottomLeft | CornerBottomRight

// Has reports whether all bits of c are set
func (c Corner) Has(other Corner) bool {
	return c&other == other
}

// ColorPair is the highlight applied to the cells of one found word
type ColorPair struct {
	Border     string `json:"border"`
	Background string `json:"background"`
}

// Cell is one square of the grid
type Cell struct {
	Letter           rune // 0 means empty
	State            CellState
	Connections      Side       // Selected orthogonal neighbours, cosmetic
	FoundConnections Side       // Connections kept from found words
	Corners          Corner     // Inner corners to draw, cosmetic
	Color            *ColorPair // Set once the cell is found
}

// IsEmpty returns true if the cell has no letter
func (c *Cell) IsEmpty() bool {
	return c.Letter == 0
}

// MarkFound makes the cell part of a found word. The connections it holds
// now stay drawn after the selection moves on.
func (c *Cell) MarkFound(color *ColorPair) {
	c.State = CellFound
	c.Color = color
	c.FoundConnections |= c.Connections
}

// Grid is the square letter matrix of a puzzle
type Grid struct {
	Size  int
	Cells [][]Cell // Row-major: Cells[row][col]
}

// NewGrid creates a grid of the given size with every cell empty
func NewGrid(size int) *Grid {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
		for j := range cells[i] {
			cells[i][j].State = CellEmpty
		}
	}
	return &Grid{
		Size:  size,
		Cells: cells,
	}
}

// IsValidPosition returns true if the position is within bounds
func (g *Grid) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Size && pos.Col >= 0 && pos.Col < g.Size
}

// At returns the cell at the given position
func (g *Grid) At(pos Position) (*Cell, error) {
	if !g.IsValidPosition(pos) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, pos)
	}
	return &g.Cells[pos.Row][pos.Col], nil
}

// MustAt returns the cell at the given position and panics when it is out of bounds
func (g *Grid) MustAt(pos Position) *Cell {
	cell, err := g.At(pos)
	if err != nil {
		panic(err)
	}
	return cell
}

// Letter returns the letter at the given position, or 0 if empty or out of bounds
func (g *Grid) Letter(pos Position) rune {
	if !g.IsValidPosition(pos) {
		return 0
	}
	return g.Cells[pos.Row][pos.Col].Letter
}

// Set writes a letter into an empty cell. Writing the same letter again is a no-op.
func (g *Grid) Set(pos Position, letter rune) error {
	cell, err := g.At(pos)
	if err != nil {
		return err
	}
	if !cell.IsEmpty() {
		if cell.Letter != letter {
			return fmt.Errorf("%w: %s holds %q, not %q", ErrLetterConflict, pos, cell.Letter, letter)
		}
		return nil
	}
	cell.Letter = letter
	cell.State = CellFilled
	return nil
}

// Clear resets every cell to empty
func (g *Grid) Clear() {
	for row := range g.Cells {
		for col := range g.Cells[row] {
			g.Cells[row][col] = Cell{State: CellEmpty}
		}
	}
}

// IsFull returns true if all cells hold a letter
func (g *Grid) IsFull() bool {
	return g.EmptyCount() == 0
}

// EmptyCount returns the number of empty cells
func (g *Grid) EmptyCount() int {
	count := 0
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.Cells[row][col].IsEmpty() {
				count++
			}
		}
	}
	return count
}

// Row returns all letters in the given row
func (g *Grid) Row(row int) []rune {
	if row < 0 || row >= g.Size {
		return nil
	}
	result := make([]rune, g.Size)
	for col := 0; col < g.Size; col++ {
		result[col] = g.Cells[row][col].Letter
	}
	return result
}

// Col returns all letters in the given column
func (g *Grid) Col(col int) []rune {
	if col < 0 || col >= g.Size {
		return nil
	}
	result := make([]rune, g.Size)
	for row := 0; row < g.Size; row++ {
		result[row] = g.Cells[row][col].Letter
	}
	return result
}

// Rows returns the grid as one string per row
func (g *Grid) Rows() []string {
	rows := make([]string, g.Size)
	for i := range rows {
		rows[i] = string(g.Row(i))
	}
	return rows
}

// ForEach calls fn for every cell in row-major order
func (g *Grid) ForEach(fn func(pos Position, cell *Cell)) {
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			fn(Position{Row: row, Col: col}, &g.Cells[row][col])
		}
	}
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	clone := &Grid{Size: g.Size, Cells: make([][]Cell, len(g.Cells))}
	for row := range g.Cells {
		clone.Cells[row] = make([]Cell, len(g.Cells[row]))
		copy(clone.Cells[row], g.Cells[row])
		for col := range clone.Cells[row] {
			if c := clone.Cells[row][col].Color; c != nil {
				color := *c
				clone.Cells[row][col].Color = &color
			}
		}
	}
	return clone
}
