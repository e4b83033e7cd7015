package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/wordsearch/internal/model"
)

// WordList shows how many words remain and, when enabled, which ones
func WordList(game *model.Game) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="word-list">` + "\n")
		fmt.Fprintf(&b, `<p id="words-left">%d / %d</p>`+"\n", len(game.Outstanding), len(game.Placed))

		label := "Show words"
		if game.ShowWords {
			label = "Hide words"
		}
		words := GameURL(game.ID, "words")
		fmt.Fprintf(&b, `<form method="post" action="%s" hx-post="%s" hx-target="#game" hx-swap="outerHTML"><button type="submit" id="toggle-words">%s</button></form>`+"\n",
			words, words, label)

		if game.ShowWords {
			b.WriteString(`<ul id="outstanding-words">`)
			for _, word := range game.Outstanding {
				fmt.Fprintf(&b, `<li class="word">%s</li>`, templ.EscapeString(word))
			}
			b.WriteString("</ul>\n")
		}

		if len(game.Found) > 0 {
			b.WriteString(`<ul id="found-words">`)
			for _, fw := range game.Found {
				fmt.Fprintf(&b, `<li class="word found" style="--background-color-found: %s">%s</li>`,
					templ.EscapeString(fw.Color.Background), templ.EscapeString(fw.Text))
			}
			b.WriteString("</ul>\n")
		}

		b.WriteString("</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Timer renders the elapsed-time display
func Timer(display string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<span id="timer">%s</span>`, templ.EscapeString(display))
		return err
	})
}

// CompletionData describes a finished game
type CompletionData struct {
	FinalTime string
	NewBest   bool
	BestTime  string
}

// Completion renders the end-of-game message
func Completion(data CompletionData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="completion">`)
		fmt.Fprintf(&b, `<h2>All words found in <span id="final-time">%s</span></h2>`, templ.EscapeString(data.FinalTime))
		if data.NewBest {
			b.WriteString(`<p id="new-best">New best time!</p>`)
		} else if data.BestTime != "" {
			fmt.Fprintf(&b, `<p id="best-time">Best time: %s</p>`, templ.EscapeString(data.BestTime))
		}
		b.WriteString("</section>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// History lists recently completed games
func History(summaries []*model.GameSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(summaries) == 0 {
			_, err := io.WriteString(w, `<p id="history-empty">No finished games yet.</p>`+"\n")
			return err
		}
		var b strings.Builder
		b.WriteString(`<table id="history"><thead><tr><th>Finished</th><th>Size</th><th>Words</th><th>Time</th></tr></thead><tbody>`)
		for _, gs := range summaries {
			best := ""
			if gs.NewBest {
				best = ` class="best"`
			}
			fmt.Fprintf(&b, `<tr%s><td>%s</td><td>%dx%d</td><td>%d</td><td>%s</td></tr>`,
				best, gs.CompletedAt.Format("2006-01-02 15:04"), gs.GridSize, gs.GridSize, gs.WordCount,
				templ.EscapeString(gs.FinalTime))
		}
		b.WriteString("</tbody></table>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}
