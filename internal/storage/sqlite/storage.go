package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (and creates if missing) the database at path and applies migrations.
// Use ":memory:" for a throwaway database.
func New(path string, logger *slog.Logger) (*Storage, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// Single connection: SQLite has one writer and ":memory:" is per-connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) getJSON(ctx context.Context, notFound error, dest any, query string, args ...any) error {
	var data string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFound
		}
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO players (id, data) VALUES (?, ?)
         ON CONFLICT(id) DO UPDATE SET data=excluded.data`,
		string(player.ID), string(data))
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, model.ErrPlayerNotFound, &player,
		`SELECT data FROM players WHERE id=?`, string(id)); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id=?`, string(id))
	return err
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO registered_players (player_id, username, data) VALUES (?, ?, ?)
         ON CONFLICT(player_id) DO UPDATE SET username=excluded.username, data=excluded.data`,
		string(rp.PlayerID), rp.Username, string(data))
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	if err := s.getJSON(ctx, model.ErrPlayerNotFound, &rp,
		`SELECT data FROM registered_players WHERE player_id=?`, string(playerID)); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	if err := s.getJSON(ctx, model.ErrPlayerNotFound, &rp,
		`SELECT data FROM registered_players WHERE username=?`, username); err != nil {
		return nil, err
	}
	return &rp, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, player_id, data, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
         ON CONFLICT(id) DO UPDATE SET data=excluded.data, updated_at=CURRENT_TIMESTAMP`,
		string(game.ID), string(game.PlayerID), string(data))
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := s.getJSON(ctx, model.ErrGameNotFound, &game,
		`SELECT data FROM games WHERE id=?`, string(id)); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id=?`, string(id))
	return err
}

// Game history operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO game_summaries (game_id, player_id, data) VALUES (?, ?, ?)`,
		string(summary.ID), string(summary.PlayerID), string(data))
	return err
}

func (s *Storage) ListGameSummaries(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.GameSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM game_summaries WHERE player_id=? ORDER BY seq DESC LIMIT ?`,
		string(playerID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]*model.GameSummary, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var summary model.GameSummary
		if err := json.Unmarshal([]byte(data), &summary); err != nil {
			continue // Skip invalid data
		}
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}

// Record operations

func (s *Storage) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key=?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", model.ErrRecordNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *Storage) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value)
	return err
}

// Word list operations

func (s *Storage) GetWordList(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM word_list ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, model.ErrWordListNotLoaded
	}
	return words, nil
}

func (s *Storage) SaveWordList(ctx context.Context, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM word_list`); err != nil {
		_ = tx.Rollback()
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO word_list (position, word) VALUES (?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i, w := range words {
		if _, err := stmt.ExecContext(ctx, i, w); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
