package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/wordsearch/internal/api"
	"github.com/mcoot/wordsearch/internal/factory"
	"github.com/mcoot/wordsearch/internal/services/game"
	redisstorage "github.com/mcoot/wordsearch/internal/storage/redis"
	"github.com/mcoot/wordsearch/internal/web"
)

const sessionCleanupInterval = 10 * time.Minute

func main() {
	// A missing .env is fine; real environment variables win
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		SQLitePath:  getEnv("SQLITE_PATH", "data/wordsearch.db"),
		GameConfig: game.Config{
			DefaultSize:      getEnvInt(logger, "GRID_SIZE", 0),
			DefaultWordCount: getEnvInt(logger, "WORD_COUNT", 0),
			IdleTimeout:      getEnvDuration(logger, "GAME_IDLE_TIMEOUT", 0),
		},
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	// Load word list; games fail with 503 until one is available
	gemini := &factory.GeminiConfig{
		ProjectID: os.Getenv("GCP_PROJECT_ID"),
		Region:    getEnv("GCP_REGION", "europe-west3"),
		Theme:     os.Getenv("WORDLIST_THEME"),
	}
	if err := app.LoadWordList(context.Background(), getEnv("WORDLIST_PATH", "data/wordlist.json"), gemini); err != nil {
		logger.Warn("could not load word list", slog.String("error", err.Error()))
	}

	// Find static files directory
	staticDir := findStaticDir()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Records:        app.Records,
		HubManager:     app.HubManager,
		WordList:       app.WordList,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		Records:        app.Records,
		GameConfig:     app.GameConfig,
		HubManager:     app.HubManager,
		StaticDir:      staticDir,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = getEnvInt(logger, "PORT", serverConfig.Port)
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	go app.AuthService.RunCleanup(ctx, sessionCleanupInterval)
	go app.GameController.RunSweeper(ctx, game.SweepInterval)

	if err := server.Listen(); err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Serve in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.Int("words", app.WordList.WordCount()),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		// Timers and event streams go first so open streams do not hold up shutdown
		app.Shutdown()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(logger *slog.Logger, key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("ignoring invalid number", slog.String("key", key), slog.String("value", v))
		return def
	}
	return n
}

func getEnvDuration(logger *slog.Logger, key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warn("ignoring invalid duration", slog.String("key", key), slog.String("value", v))
		return def
	}
	return d
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		"./internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// Default to relative path
	return "internal/web/static"
}
