// Package selection maintains the selected cell set and the cosmetic
// connection and corner flags used to draw a selection as one path.
package selection

import (
	"github.com/mcoot/wordsearch/internal/model"
)

// Toggle flips membership of pos and recomputes the path flags.
// Found cells can join a selection, since words may cross, but keep
// their found state and appearance.
func Toggle(grid *model.Grid, sel *model.Selection, pos model.Position) error {
	cell, err := grid.At(pos)
	if err != nil {
		return err
	}

	selected := sel.Toggle(pos)
	if cell.State == model.CellFound {
		Recompute(grid, sel)
		return nil
	}
	if selected {
		cell.State = model.CellSelected
	} else {
		cell.State = model.CellFilled
	}

	Recompute(grid, sel)
	return nil
}

// Select adds pos to the selection. A cell that is already selected stays
// selected.
func Select(grid *model.Grid, sel *model.Selection, pos model.Position) error {
	cell, err := grid.At(pos)
	if err != nil {
		return err
	}
	if sel.Contains(pos) {
		return nil
	}

	sel.Add(pos)
	if cell.State != model.CellFound {
		cell.State = model.CellSelected
	}
	Recompute(grid, sel)
	return nil
}

// Clear deselects every cell
func Clear(grid *model.Grid, sel *model.Selection) {
	for _, pos := range sel.Positions() {
		if cell, err := grid.At(pos); err == nil && cell.State == model.CellSelected {
			cell.State = model.CellFilled
		}
	}
	sel.Clear()
	Recompute(grid, sel)
}

// Recompute rebuilds connection and corner flags from the selection.
// Found cells keep the flags they had when their word was found; a found
// cell selected again where words cross also links to its selected neighbours.
func Recompute(grid *model.Grid, sel *model.Selection) {
	clearConnections(grid)
	connect(grid, sel)
	updateCorners(grid, sel)
}

func clearConnections(grid *model.Grid) {
	grid.ForEach(func(_ model.Position, cell *model.Cell) {
		if cell.State == model.CellFound {
			cell.Connections = cell.FoundConnections
		} else {
			cell.Connections = 0
		}
	})
}

var neighbours = []struct {
	dRow, dCol int
	side       model.Side
}{
	{-1, 0, model.SideTop},
	{1, 0, model.SideBottom},
	{0, -1, model.SideLeft},
	{0, 1, model.SideRight},
}

func connect(grid *model.Grid, sel *model.Selection) {
	for _, pos := range sel.Positions() {
		cell := grid.MustAt(pos)
		for _, n := range neighbours {
			if sel.Contains(pos.Neighbour(n.dRow, n.dCol)) {
				cell.Connections |= n.side
			}
		}
	}
}

var corners = []struct {
	corner     model.Corner
	vertical   model.Position // orthogonal neighbour above or below
	horizontal model.Position // orthogonal neighbour left or right
	diagonal   model.Position
}{
	{model.CornerTopLeft, model.Position{Row: -1}, model.Position{Col: -1}, model.Position{Row: -1, Col: -1}},
	{model.CornerTopRight, model.Position{Row: -1}, model.Position{Col: 1}, model.Position{Row: -1, Col: 1}},
	{model.CornerBottomLeft, model.Position{Row: 1}, model.Position{Col: -1}, model.Position{Row: 1, Col: -1}},
	{model.CornerBottomRight, model.Position{Row: 1}, model.Position{Col: 1}, model.Position{Row: 1, Col: 1}},
}

func updateCorners(grid *model.Grid, sel *model.Selection) {
	grid.ForEach(func(pos model.Position, cell *model.Cell) {
		if cell.State == model.CellFound {
			return
		}
		cell.Corners = 0
		if !sel.Contains(pos) {
			return
		}

		at := func(offset model.Position) bool {
			return sel.Contains(pos.Neighbour(offset.Row, offset.Col))
		}

		top, bottom := at(model.Position{Row: -1}), at(model.Position{Row: 1})
		left, right := at(model.Position{Col: -1}), at(model.Position{Col: 1})
		if top && bottom && left && right {
			cell.Corners = model.AllCorners
			for _, c := range corners {
				if at(c.diagonal) {
					cell.Corners &^= c.corner
				}
			}
		}

		for _, c := range corners {
			if at(c.vertical) && at(c.horizontal) && !at(c.diagonal) {
				cell.Corners |= c.corner
			}
		}
	})
}
