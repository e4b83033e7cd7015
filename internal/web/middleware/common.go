package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/wordsearch/internal/middleware"
)

const errorPage = `<!DOCTYPE html>
<html lang="de">
<head><title>Fehler</title></head>
<body>
<h1>Something went wrong</h1>
<p><a href="/">Back to the puzzles</a></p>
</body>
</html>`

// Logging logs page requests. Static assets only show up at debug level.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger, "/static/")
}

// Recovery turns panics into an HTML error page
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(errorPage))
	})
}
