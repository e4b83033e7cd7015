package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearch/internal/services/auth"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/records"
	"github.com/mcoot/wordsearch/internal/web/handler"
	"github.com/mcoot/wordsearch/internal/web/middleware"
	"github.com/mcoot/wordsearch/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController game.ControllerInterface
	Records        records.ServiceInterface
	GameConfig     game.Config
	HubManager     *sse.HubManager
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler(cfg.Records, cfg.GameConfig, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.Records, hubManager, cfg.Logger)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing player info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.Use(optionalAuthMiddleware)
	authRoutes.HandleFunc("/guest", authHandler.CreateGuest).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)

	protected.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}/toggle", gameHandler.Toggle).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/submit", gameHandler.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/clear", gameHandler.Clear).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/words", gameHandler.Words).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/abandon", gameHandler.Abandon).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	return r
}
