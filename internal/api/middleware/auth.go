package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/wordsearch/internal/api/apierr"
	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/auth"
)

type sessionKey struct{}

// StreamTokenParam carries the token for event streams, since EventSource
// cannot set an Authorization header
const StreamTokenParam = "token"

// Auth rejects requests without a valid session and stores the session in
// the request context
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
		})
	}
}

// extractToken checks the bearer header, then the session cookie, then the
// query string of event stream requests
func extractToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}

	if r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/events") {
		return r.URL.Query().Get(StreamTokenParam)
	}

	return ""
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionKey{}).(*auth.Session)
	return session
}

// GetPlayer returns the authenticated player from the request context
func GetPlayer(ctx context.Context) *model.Player {
	if session := GetSession(ctx); session != nil {
		return &session.Player
	}
	return nil
}

// MustGetPlayer returns the authenticated player or panics
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("no player in context - auth middleware not applied?")
	}
	return player
}
