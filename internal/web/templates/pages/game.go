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

// GameData is the data for the game page
type GameData struct {
	layout.PageData
	Game     *model.Game
	Elapsed  string
	BestTime string
}

// Game renders the full game page with a live event stream
func Game(data GameData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="game-stream" hx-ext="sse" sse-connect="%s">
`, components.GameURL(data.Game.ID, "events")); err != nil {
			return err
		}
		if err := GameFragment(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	}))
}

// GameFragment renders the swappable part of the game page. htmx requests
// receive only this.
func GameFragment(data GameData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		game := data.Game
		if _, err := fmt.Fprintf(w, `<div id="game" class="game-%s" hx-get="%s" hx-trigger="sse:refresh" hx-target="this" hx-swap="outerHTML">
<div id="game-status">
`, templ.EscapeString(string(game.State)), components.GameURL(game.ID, "")); err != nil {
			return err
		}

		if game.State == model.GameStateComplete {
			if err := components.Completion(components.CompletionData{
				FinalTime: game.FinalTime,
				NewBest:   game.NewBest,
				BestTime:  data.BestTime,
			}).Render(ctx, w); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<div id="timer-wrapper" sse-swap="timer" hx-target="#timer" hx-swap="outerHTML">`); err != nil {
				return err
			}
			if err := components.Timer(data.Elapsed).Render(ctx, w); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</div>\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</div>\n"); err != nil {
			return err
		}

		if err := components.Board(game).Render(ctx, w); err != nil {
			return err
		}
		if err := components.WordList(game).Render(ctx, w); err != nil {
			return err
		}
		if err := controls(game).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

func controls(game *model.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="controls">`); err != nil {
			return err
		}
		if game.State == model.GameStatePlaying {
			if _, err := fmt.Fprintf(w, `<form method="post" action="%[1]s/submit" hx-post="%[1]s/submit" hx-target="#game" hx-swap="outerHTML"><button type="submit" id="submit-word">Submit</button></form>
<form method="post" action="%[1]s/clear" hx-post="%[1]s/clear" hx-target="#game" hx-swap="outerHTML"><button type="submit" id="clear-selection">Clear</button></form>
`, components.GameURL(game.ID, "")); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, `<form method="post" action="%[1]s/reset"><button type="submit" id="reset-game">New puzzle</button></form>
<form method="post" action="%[1]s/abandon"><button type="submit" id="abandon-game">Quit</button></form>
</section>
`, components.GameURL(game.ID, ""))
		return err
	})
}
