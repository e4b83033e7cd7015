package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/wordsearch/internal/api/apierr"
	"github.com/mcoot/wordsearch/internal/middleware"
)

const healthPath = "/api/v1/health"

// Logging logs API requests. Health checks only show up at debug level.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger, healthPath)
}

// Recovery turns a panic into a JSON INTERNAL_ERROR response
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
