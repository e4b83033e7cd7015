package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearch/internal/api/handler"
	"github.com/mcoot/wordsearch/internal/api/middleware"
	"github.com/mcoot/wordsearch/internal/api/response"
	"github.com/mcoot/wordsearch/internal/services/auth"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/records"
	"github.com/mcoot/wordsearch/internal/services/wordlist"
	"github.com/mcoot/wordsearch/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController game.ControllerInterface
	Records        records.ServiceInterface
	HubManager     *sse.HubManager
	WordList       wordlist.ServiceInterface // Optional; reported by the health check
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	Register(r, cfg)
	return r
}

// Register mounts the API under /api/v1 on an existing router
func Register(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Logger)
	recordsHandler := handler.NewRecordsHandler(cfg.Records)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler(cfg.WordList)).Methods(http.MethodGet)

	// Everything else requires auth
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/players/me", playerHandler.GetMe).Methods(http.MethodGet)
	protected.HandleFunc("/players/logout", playerHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/records/me", recordsHandler.GetMine).Methods(http.MethodGet)
	protected.HandleFunc("/preferences", recordsHandler.UpdatePreferences).Methods(http.MethodPatch)

	// Game routes
	protected.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	protected.HandleFunc("/games/{id}/toggle", gameHandler.Toggle).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/press", gameHandler.Press).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/drag", gameHandler.Drag).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/release", gameHandler.Release).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/selection", gameHandler.ClearSelection).Methods(http.MethodDelete)
	protected.HandleFunc("/games/{id}/submit", gameHandler.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/words", gameHandler.SetShowWords).Methods(http.MethodPatch)
	protected.HandleFunc("/games/{id}/snapshot", gameHandler.Snapshot).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)
}

// healthHandler reports 503 while no word list is loaded, since no puzzle
// can be generated until then
func healthHandler(words wordlist.ServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if words == nil {
			response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
			return
		}
		if !words.IsLoaded() {
			response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "no_word_list"})
			return
		}
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Words: words.WordCount()})
	}
}
