package storage

import (
	"context"

	"github.com/mcoot/wordsearch/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Completed game history, newest first
	SaveGameSummary(ctx context.Context, summary *model.GameSummary) error
	ListGameSummaries(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.GameSummary, error)

	// Key-value records (best time, preferences). Missing keys return model.ErrRecordNotFound.
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error

	// Word list operations
	GetWordList(ctx context.Context) ([]string, error)
	SaveWordList(ctx context.Context, words []string) error
}
