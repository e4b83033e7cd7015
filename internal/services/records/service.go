package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/timer"
	"github.com/mcoot/wordsearch/internal/storage"
)

const (
	keyBestTime  = "bestTime"
	keyShowWords = "showWords"

	// NoBestTime is displayed before any game has been completed
	NoBestTime = "00:00:00"

	// DefaultHistoryLimit is the number of completed games returned when no limit is given
	DefaultHistoryLimit = 20
)

// BestTime is a player's fastest completion
type BestTime struct {
	Display string // MM:SS:hh
	Elapsed time.Duration
}

// Service persists per-player best times, preferences and game history
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new records service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

func recordKey(playerID model.PlayerID, name string) string {
	return fmt.Sprintf("%s:%s", playerID, name)
}

// BestTime returns the player's best time, or model.ErrRecordNotFound if
// they have never finished a game
func (s *Service) BestTime(ctx context.Context, playerID model.PlayerID) (*BestTime, error) {
	value, err := s.storage.GetValue(ctx, recordKey(playerID, keyBestTime))
	if err != nil {
		return nil, err
	}

	elapsed, err := timer.ParseElapsed(value)
	if err != nil || elapsed == 0 {
		// Unreadable or zero values count as no record
		return nil, model.ErrRecordNotFound
	}
	return &BestTime{Display: timer.FormatElapsed(elapsed), Elapsed: elapsed}, nil
}

// BestTimeDisplay returns the best time for display, NoBestTime when absent
func (s *Service) BestTimeDisplay(ctx context.Context, playerID model.PlayerID) (string, error) {
	best, err := s.BestTime(ctx, playerID)
	if errors.Is(err, model.ErrRecordNotFound) {
		return NoBestTime, nil
	}
	if err != nil {
		return "", err
	}
	return best.Display, nil
}

// RecordCompletion stores elapsed as the new best time when there is no
// previous record or it is strictly faster. Times are compared at the
// hundredth-of-a-second resolution they are displayed with.
func (s *Service) RecordCompletion(ctx context.Context, playerID model.PlayerID, elapsed time.Duration) (bool, *BestTime, error) {
	current := &BestTime{Display: timer.FormatElapsed(elapsed)}
	current.Elapsed, _ = timer.ParseElapsed(current.Display)

	previous, err := s.BestTime(ctx, playerID)
	if err != nil && !errors.Is(err, model.ErrRecordNotFound) {
		return false, nil, err
	}

	if previous != nil && current.Elapsed >= previous.Elapsed {
		return false, previous, nil
	}

	if err := s.storage.SetValue(ctx, recordKey(playerID, keyBestTime), current.Display); err != nil {
		return false, nil, err
	}

	s.logger.Info("new best time",
		slog.String("player_id", string(playerID)),
		slog.String("time", current.Display),
	)
	return true, current, nil
}

// ShowWords returns the player's word-list visibility preference (default off)
func (s *Service) ShowWords(ctx context.Context, playerID model.PlayerID) (bool, error) {
	value, err := s.storage.GetValue(ctx, recordKey(playerID, keyShowWords))
	if errors.Is(err, model.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	show, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return show, nil
}

// SetShowWords persists the word-list visibility preference
func (s *Service) SetShowWords(ctx context.Context, playerID model.PlayerID, show bool) error {
	return s.storage.SetValue(ctx, recordKey(playerID, keyShowWords), strconv.FormatBool(show))
}

// AddToHistory records a completed game
func (s *Service) AddToHistory(ctx context.Context, summary *model.GameSummary) error {
	return s.storage.SaveGameSummary(ctx, summary)
}

// History returns the player's completed games, newest first
func (s *Service) History(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.GameSummary, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.storage.ListGameSummaries(ctx, playerID, limit)
}

// ServiceInterface defines the records service contract
type ServiceInterface interface {
	BestTime(ctx context.Context, playerID model.PlayerID) (*BestTime, error)
	BestTimeDisplay(ctx context.Context, playerID model.PlayerID) (string, error)
	RecordCompletion(ctx context.Context, playerID model.PlayerID, elapsed time.Duration) (bool, *BestTime, error)
	ShowWords(ctx context.Context, playerID model.PlayerID) (bool, error)
	SetShowWords(ctx context.Context, playerID model.PlayerID, show bool) error
	AddToHistory(ctx context.Context, summary *model.GameSummary) error
	History(ctx context.Context, playerID model.PlayerID, limit int) ([]*model.GameSummary, error)
}

var _ ServiceInterface = (*Service)(nil)
