package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/wordsearch/internal/model"
)

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string // success, error, info
	Message string
}

// PageData is shared by every full page
type PageData struct {
	Title  string
	Player *model.Player
	Flash  *FlashMessage
}

// Base wraps page content in the document shell with nav and flash
func Base(data PageData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - Wortsuche</title>
<link rel="stylesheet" href="/static/style.css">
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
</head>
<body>
`, templ.EscapeString(data.Title)); err != nil {
			return err
		}

		if err := nav(data.Player).Render(ctx, w); err != nil {
			return err
		}
		if data.Flash != nil {
			if _, err := fmt.Fprintf(w, `<div id="flash" class="flash flash-%s">%s</div>
`, templ.EscapeString(data.Flash.Type), templ.EscapeString(data.Flash.Message)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "<main>\n"); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func nav(player *model.Player) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if player == nil {
			_, err := io.WriteString(w, `<nav id="nav"><a href="/">Wortsuche</a></nav>
`)
			return err
		}
		_, err := fmt.Fprintf(w, `<nav id="nav"><a href="/">Wortsuche</a>
<span id="player-name">%s</span>
<form method="post" action="/auth/logout"><button type="submit">Logout</button></form>
</nav>
`, templ.EscapeString(player.DisplayName))
		return err
	})
}
