package handler

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"
)

// render writes a full HTML response
func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// isHTMX reports whether the request came from htmx and wants a fragment
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// oobFlash renders a flash message that htmx swaps into place out of band
func oobFlash(flashType, message string) string {
	return fmt.Sprintf(`<div id="flash" class="flash flash-%s" hx-swap-oob="true">%s</div>`,
		templ.EscapeString(flashType), templ.EscapeString(message))
}
