package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/web/templates/components"
	"github.com/mcoot/wordsearch/internal/web/templates/layout"
)

// HomeData is the data for the home page
type HomeData struct {
	layout.PageData
	Next             string
	BestTime         string
	History          []*model.GameSummary
	DefaultSize      int
	DefaultWordCount int
}

// Home renders the landing page: guest sign-in, or new-game form and records
func Home(data HomeData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if data.Player == nil {
			_, err := fmt.Fprintf(w, `<section id="guest-form">
<h1>Wortsuche</h1>
<form method="post" action="/auth/guest">
<input type="hidden" name="next" value="%s">
<label>Name <input type="text" name="display_name" maxlength="20"></label>
<button type="submit">Play as guest</button>
</form>
</section>
`, templ.EscapeString(data.Next))
			return err
		}

		if _, err := fmt.Fprintf(w, `<section id="new-game">
<h1>New puzzle</h1>
<form method="post" action="/games">
<label>Size <input type="number" name="size" min="4" max="26" value="%d"></label>
<label>Words <input type="number" name="word_count" min="1" value="%d"></label>
<button type="submit">Start</button>
</form>
</section>
`, data.DefaultSize, data.DefaultWordCount); err != nil {
			return err
		}

		best := data.BestTime
		if best == "" {
			best = "-"
		}
		if _, err := fmt.Fprintf(w, `<section id="records"><p>Best time: <span id="best-time">%s</span></p>
`, templ.EscapeString(best)); err != nil {
			return err
		}
		if err := components.History(data.History).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	}))
}
