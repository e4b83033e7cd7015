package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/mcoot/wordsearch/internal/services/auth"
	"github.com/mcoot/wordsearch/internal/web/middleware"
)

const maxDisplayNameLength = 20

// AuthHandler handles sign-in actions
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CreateGuest handles POST /auth/guest
func (h *AuthHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	displayName := []rune(strings.TrimSpace(r.FormValue("display_name")))
	if len(displayName) > maxDisplayNameLength {
		displayName = displayName[:maxDisplayNameLength]
	}

	session, err := h.authService.CreateGuestPlayer(r.Context(), string(displayName))
	if err != nil {
		middleware.SetFlash(w, "error", "Could not create guest player")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresAt)
	middleware.SetFlash(w, "success", "Welcome, "+session.Player.DisplayName+"!")
	http.Redirect(w, r, safeNext(r.FormValue("next")), http.StatusSeeOther)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeNext only allows local redirect targets
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
