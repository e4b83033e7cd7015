package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/auth"
)

type contextKey string

const (
	playerContextKey contextKey = "player"

	// SessionCookieName holds the session token for browser clients
	SessionCookieName = "session"
)

// GetPlayer returns the signed-in player, or nil
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// Auth requires a signed-in player and sends everyone else to the home
// page, remembering where they were going
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := playerFromSession(r, authService)
			if player == nil {
				http.Redirect(w, r, "/?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth sets the player in the context when signed in
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := playerFromSession(r, authService)
			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func playerFromSession(r *http.Request, authService *auth.Service) *model.Player {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	player, err := authService.GetPlayer(cookie.Value)
	if err != nil {
		return nil
	}
	return player
}
