package components

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/wordsearch/internal/model"
)

var sideClasses = []struct {
	side  model.Side
	class string
}{
	{model.SideTop, "connected-top"},
	{model.SideBottom, "connected-bottom"},
	{model.SideLeft, "connected-left"},
	{model.SideRight, "connected-right"},
}

var cornerClasses = []struct {
	corner model.Corner
	class  string
}{
	{model.CornerTopLeft, "corner-top-left"},
	{model.CornerTopRight, "corner-top-right"},
	{model.CornerBottomLeft, "corner-bottom-left"},
	{model.CornerBottomRight, "corner-bottom-right"},
}

// GameURL returns the attribute-safe path of a game page or action
func GameURL(id model.GameID, action string) string {
	path := "/games/" + url.PathEscape(string(id))
	if action != "" {
		path += "/" + action
	}
	return templ.EscapeString(path)
}

// CellClasses returns the CSS classes for a cell. A found cell can also be
// part of the current selection.
func CellClasses(cell *model.Cell, selected bool) string {
	classes := []string{"cell"}
	if selected || cell.State == model.CellSelected {
		classes = append(classes, "selected")
	}
	if cell.State == model.CellFound {
		classes = append(classes, "found")
	}
	for _, sc := range sideClasses {
		if cell.Connections.Has(sc.side) {
			classes = append(classes, sc.class)
		}
	}
	return strings.Join(classes, " ")
}

// Board renders the letter grid. Each cell is a submit button posting its
// position to the toggle action.
func Board(game *model.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		toggle := GameURL(game.ID, "toggle")
		fmt.Fprintf(&b, `<form id="game-board" class="grid grid-%d" method="post" action="%s" hx-post="%s" hx-target="#game" hx-swap="outerHTML">
`, game.Grid.Size, toggle, toggle)

		for row := 0; row < game.Grid.Size; row++ {
			b.WriteString(`<div class="row">`)
			for col := 0; col < game.Grid.Size; col++ {
				pos := model.Position{Row: row, Col: col}
				writeCell(&b, pos, game.Grid.MustAt(pos), game.Selection.Contains(pos))
			}
			b.WriteString("</div>\n")
		}
		b.WriteString("</form>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeCell(b *strings.Builder, pos model.Position, cell *model.Cell, selected bool) {
	style := ""
	if cell.State == model.CellFound && cell.Color != nil {
		style = fmt.Sprintf(` style="--background-color-found: %s; --border-color-found: %s"`,
			templ.EscapeString(cell.Color.Background), templ.EscapeString(cell.Color.Border))
	}

	fmt.Fprintf(b, `<button type="submit" name="cell" value="%d,%d" class="%s" data-row="%d" data-col="%d"%s>`,
		pos.Row, pos.Col, CellClasses(cell, selected), pos.Row, pos.Col, style)
	b.WriteString(templ.EscapeString(string(cell.Letter)))
	for _, cc := range cornerClasses {
		if cell.Corners.Has(cc.corner) {
			fmt.Fprintf(b, `<span class="corner %s"></span>`, cc.class)
		}
	}
	b.WriteString("</button>")
}
