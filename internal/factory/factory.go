package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/wordsearch/internal/dependencies/clock"
	"github.com/mcoot/wordsearch/internal/dependencies/random"
	"github.com/mcoot/wordsearch/internal/services/auth"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/records"
	"github.com/mcoot/wordsearch/internal/services/timer"
	"github.com/mcoot/wordsearch/internal/services/wordlist"
	"github.com/mcoot/wordsearch/internal/storage"
	"github.com/mcoot/wordsearch/internal/storage/memory"
	redisstorage "github.com/mcoot/wordsearch/internal/storage/redis"
	"github.com/mcoot/wordsearch/internal/storage/sqlite"
	"github.com/mcoot/wordsearch/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	WordList       *wordlist.Service
	Records        *records.Service
	Timers         *timer.Service
	GameController *game.Controller
	AuthService    *auth.Service
	HubManager     *sse.HubManager

	GameConfig game.Config
	logger     *slog.Logger
}

// GeminiConfig selects a generated word list instead of a file
type GeminiConfig struct {
	ProjectID string
	Region    string
	Theme     string
}

// Config holds configuration for the application factory
type Config struct {
	// WordListPath is the path to the word list file (optional)
	// If empty, the word list must be loaded manually or via LoadWordList
	WordListPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig holds grid defaults (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.New(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	clk := clock.New()
	rnd := random.New()

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, timer.New(clk), authCfg, gameConfig(cfg.GameConfig), logger)

	if cfg.WordListPath != "" {
		if err := app.WordList.LoadFromFile(context.Background(), cfg.WordListPath); err != nil {
			_ = app.Close()
			return nil, err
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	timers *timer.Service,
	authCfg auth.Config,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	wordListService := wordlist.New(store, logger)
	recordsService := records.New(store, logger)
	hubManager := sse.NewHubManager(logger)
	gameController := game.NewController(store, wordListService, recordsService, timers, clk, rnd, logger, hubManager, gameCfg)
	authService := auth.New(store, clk, rnd, logger, authCfg)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		WordList:       wordListService,
		Records:        recordsService,
		Timers:         timers,
		GameController: gameController,
		AuthService:    authService,
		HubManager:     hubManager,
		GameConfig:     gameCfg,
		logger:         logger,
	}
}

// LoadWordList fills the word list when it is still empty. A configured
// Gemini theme is tried first, then the file, then whatever storage kept
// from a previous run.
func (a *App) LoadWordList(ctx context.Context, path string, gemini *GeminiConfig) error {
	if a.WordList.IsLoaded() {
		return nil
	}

	if gemini != nil && gemini.ProjectID != "" && gemini.Theme != "" {
		source, err := wordlist.NewGeminiSource(ctx, gemini.ProjectID, gemini.Region, gemini.Theme)
		if err == nil {
			err = a.WordList.LoadFromSource(ctx, source)
		}
		if err == nil {
			return nil
		}
		a.logger.Warn("generated word list unavailable, falling back",
			slog.String("theme", gemini.Theme),
			slog.String("error", err.Error()),
		)
	}

	if path != "" {
		err := a.WordList.LoadFromFile(ctx, path)
		if err == nil {
			return nil
		}
		a.logger.Warn("word list file unavailable, falling back to storage",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}

	if err := a.WordList.LoadFromStorage(ctx); err != nil {
		return fmt.Errorf("no word list available: %w", err)
	}
	return nil
}

// Shutdown stops running timers and disconnects event streams
func (a *App) Shutdown() {
	a.GameController.Shutdown()
	a.HubManager.Close()
}

// Close releases the storage backend if it holds connections
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func gameConfig(cfg game.Config) game.Config {
	defaults := game.DefaultConfig()
	if cfg.DefaultSize == 0 {
		cfg.DefaultSize = defaults.DefaultSize
	}
	if cfg.DefaultWordCount == 0 {
		cfg.DefaultWordCount = defaults.DefaultWordCount
	}
	if cfg.MinSize == 0 {
		cfg.MinSize = defaults.MinSize
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = defaults.MaxSize
	}
	if cfg.Alphabet == "" {
		cfg.Alphabet = defaults.Alphabet
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = defaults.IdleTimeout
	}
	return cfg
}
