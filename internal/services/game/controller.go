package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/wordsearch/internal/dependencies/clock"
	"github.com/mcoot/wordsearch/internal/dependencies/random"
	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/generator"
	"github.com/mcoot/wordsearch/internal/services/records"
	"github.com/mcoot/wordsearch/internal/services/selection"
	"github.com/mcoot/wordsearch/internal/services/timer"
	"github.com/mcoot/wordsearch/internal/services/wincheck"
	"github.com/mcoot/wordsearch/internal/services/wordlist"
	"github.com/mcoot/wordsearch/internal/storage"
)

const (
	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// TimerEventInterval throttles timer events sent to notifiers
	TimerEventInterval = 100 * time.Millisecond

	// SweepInterval is how often RunSweeper looks for idle timers
	SweepInterval = time.Minute
)

// Config holds game defaults and limits
type Config struct {
	DefaultSize      int
	DefaultWordCount int
	MinSize          int
	MaxSize          int
	Alphabet         string
	// IdleTimeout stops the sampler of a game nobody has touched for this
	// long. Its clock keeps running from StartedAt and sampling resumes on
	// the next access.
	IdleTimeout time.Duration
}

// DefaultConfig returns the standard 12x12, 20 word setup
func DefaultConfig() Config {
	return Config{
		DefaultSize:      12,
		DefaultWordCount: 20,
		MinSize:          4,
		MaxSize:          26,
		Alphabet:         generator.DefaultAlphabet,
		IdleTimeout:      30 * time.Minute,
	}
}

// Notifier receives game events, e.g. to push them to connected clients
type Notifier interface {
	Notify(event model.Event)
}

// NewGameOptions customises a new game. Zero values use the configured defaults.
type NewGameOptions struct {
	Size      int
	WordCount int
	Seed      *int64
}

// SubmitResult describes what a submit did
type SubmitResult struct {
	Found     bool
	Word      string // Letters read from the selection, row-major
	FoundWord *model.FoundWord
	Complete  bool
	FinalTime string
	NewBest   bool
	BestTime  string
	Game      *model.Game
}

// Controller owns game sessions: generation, selection, submission,
// timing and completion. Every mutation of one game is serialized.
type Controller struct {
	storage  storage.Storage
	wordList wordlist.ServiceInterface
	records  records.ServiceInterface
	timers   *timer.Service
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	notifier Notifier
	cfg      Config

	mu      sync.Mutex
	locks   map[model.GameID]*gameLock
	running map[model.GameID]*timer.Handle
}

// gameLock serializes one game. It is dropped from the map once nobody
// holds or waits for it.
type gameLock struct {
	sync.Mutex
	refs int
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	wordList wordlist.ServiceInterface,
	records records.ServiceInterface,
	timers *timer.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	notifier Notifier,
	cfg Config,
) *Controller {
	return &Controller{
		storage:  storage,
		wordList: wordList,
		records:  records,
		timers:   timers,
		clock:    clock,
		random:   random,
		logger:   logger,
		notifier: notifier,
		cfg:      cfg,
		locks:    make(map[model.GameID]*gameLock),
		running:  make(map[model.GameID]*timer.Handle),
	}
}

// NewGame generates a puzzle for the player and starts its timer
func (c *Controller) NewGame(ctx context.Context, playerID model.PlayerID, opts NewGameOptions) (*model.Game, error) {
	gameID := model.GameID(c.random.String(12, gameIDAlphabet))

	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.build(ctx, gameID, playerID, opts)
	if err != nil {
		return nil, err
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	c.startTimer(game, game.StartedAt)

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
		slog.Int("grid_size", game.Grid.Size),
		slog.Int("word_count", len(game.Placed)),
		slog.Int64("seed", game.Seed),
	)
	c.notify(game, model.EventGameCreated, nil)

	return game.Clone(), nil
}

// build generates a fresh game value; it does not persist or start timers
func (c *Controller) build(ctx context.Context, gameID model.GameID, playerID model.PlayerID, opts NewGameOptions) (*model.Game, error) {
	size := opts.Size
	if size == 0 {
		size = c.cfg.DefaultSize
	}
	if size < c.cfg.MinSize || size > c.cfg.MaxSize {
		return nil, fmt.Errorf("%w: %d (allowed %d-%d)", model.ErrInvalidGridSize, size, c.cfg.MinSize, c.cfg.MaxSize)
	}

	count := opts.WordCount
	if count == 0 {
		count = c.cfg.DefaultWordCount
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidWordCount, count)
	}

	words, err := c.wordList.Words(size)
	if err != nil {
		return nil, err
	}

	var seed int64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = c.random.Seed()
	}

	puzzle, err := generator.New(random.NewSeeded(seed), c.logger).Generate(size, words, count, c.cfg.Alphabet)
	if err != nil {
		return nil, err
	}

	showWords, err := c.records.ShowWords(ctx, playerID)
	if err != nil {
		c.logger.Warn("failed to read show-words preference",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
	}

	outstanding := make([]string, len(puzzle.Placed))
	for i, pw := range puzzle.Placed {
		outstanding[i] = pw.Text
	}

	now := c.clock.Now()
	return &model.Game{
		ID:          gameID,
		PlayerID:    playerID,
		State:       model.GameStatePlaying,
		Seed:        seed,
		WordCount:   count,
		Grid:        puzzle.Grid,
		Placed:      puzzle.Placed,
		Outstanding: outstanding,
		Found:       []model.FoundWord{},
		Selection:   model.NewSelection(),
		ShowWords:   showWords,
		StartedAt:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetGame returns a snapshot of the player's game
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.withGame(ctx, gameID, playerID, false, nil)
}

// Toggle flips selection of a single cell
func (c *Controller) Toggle(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*model.Game, error) {
	return c.withGame(ctx, gameID, playerID, true, func(game *model.Game) error {
		if err := c.requirePlaying(game); err != nil {
			return err
		}
		if err := selection.Toggle(game.Grid, game.Selection, pos); err != nil {
			return err
		}
		c.notifySelection(game)
		return nil
	})
}

// Press starts a drag gesture on a cell, toggling it
func (c *Controller) Press(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*model.Game, error) {
	return c.withGame(ctx, gameID, playerID, true, func(game *model.Game) error {
		if err := c.requirePlaying(game); err != nil {
			return err
		}
		if err := selection.Toggle(game.Grid, game.Selection, pos); err != nil {
			return err
		}
		game.Dragging = true
		c.notifySelection(game)
		return nil
	})
}

// DragEnter adds a cell the pointer moved onto while pressed. Moving back
// over a selected cell keeps it selected; moves without a preceding press
// are ignored.
func (c *Controller) DragEnter(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*model.Game, error) {
	return c.withGame(ctx, gameID, playerID, true, func(game *model.Game) error {
		if err := c.requirePlaying(game); err != nil {
			return err
		}
		if !game.Dragging {
			return nil
		}
		if err := selection.Select(game.Grid, game.Selection, pos); err != nil {
			return err
		}
		c.notifySelection(game)
		return nil
	})
}

// Release ends a drag gesture
func (c *Controller) Release(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.withGame(ctx, gameID, playerID, true, func(game *model.Game) error {
		game.Dragging = false
		return nil
	})
}

// ClearSelection deselects every cell
func (c *Controller) ClearSelection(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.withGame(ctx, gameID, playerID, true, func(game *model.Game) error {
		selection.Clear(game.Grid, game.Selection)
		game.Dragging = false
		c.notifySelection(game)
		return nil
	})
}

// Submit checks the current selection against the outstanding words.
// A non-matching selection is left untouched.
func (c *Controller) Submit(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*SubmitResult, error) {
	result := &SubmitResult{}

	game, err := c.withGame(ctx, gameID, playerID, true, func(game *model.Game) error {
		if err := c.requirePlaying(game); err != nil {
			return err
		}
		game.Dragging = false

		// One color source per found word keeps colors reproducible from the seed
		checker := wincheck.New(random.NewSeeded(game.Seed + int64(len(game.Found)) + 1))
		outcome := checker.Check(game.Grid, game.Selection, game.Outstanding)
		result.Word = outcome.Word
		if outcome.Kind != wincheck.Found {
			return nil
		}

		found := checker.Apply(game.Grid, game.Selection, outcome)
		game.RemoveOutstanding(found.Text)
		game.Found = append(game.Found, found)
		result.Found = true
		result.FoundWord = &found

		c.logger.Info("word found",
			slog.String("game_id", string(game.ID)),
			slog.String("word", found.Text),
			slog.Int("outstanding", len(game.Outstanding)),
		)
		c.notify(game, model.EventWordFound, model.WordFoundPayload{Word: found, Outstanding: len(game.Outstanding)})

		if game.IsComplete() {
			return c.complete(ctx, game, result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Game = game
	return result, nil
}

// complete stops the timer and records the final time
func (c *Controller) complete(ctx context.Context, game *model.Game, result *SubmitResult) error {
	elapsed := c.stopTimer(game)
	now := c.clock.Now()

	game.State = model.GameStateComplete
	game.CompletedAt = &now
	game.FinalTime = timer.FormatElapsed(elapsed)

	newBest, best, err := c.records.RecordCompletion(ctx, game.PlayerID, elapsed)
	if err != nil {
		return err
	}
	game.NewBest = newBest

	if err := c.records.AddToHistory(ctx, &model.GameSummary{
		ID:          game.ID,
		PlayerID:    game.PlayerID,
		GridSize:    game.Grid.Size,
		WordCount:   len(game.Placed),
		FinalTime:   game.FinalTime,
		NewBest:     newBest,
		CompletedAt: now,
	}); err != nil {
		c.logger.Warn("failed to save game summary",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
	}

	result.Complete = true
	result.FinalTime = game.FinalTime
	result.NewBest = newBest
	if best != nil {
		result.BestTime = best.Display
	}

	c.logger.Info("game completed",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(game.PlayerID)),
		slog.String("time", game.FinalTime),
		slog.Bool("new_best", newBest),
	)
	c.notify(game, model.EventGameComplete, model.GameCompletePayload{
		FinalTime: game.FinalTime,
		NewBest:   newBest,
		BestTime:  result.BestTime,
	})
	return nil
}

// Reset replaces the whole game with a freshly generated one under the same
// ID. The old timer is stopped before the new one starts.
func (c *Controller) Reset(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	old, err := c.load(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	fresh, err := c.build(ctx, gameID, playerID, NewGameOptions{
		Size:      old.Grid.Size,
		WordCount: old.WordCount,
	})
	if err != nil {
		return nil, err
	}
	fresh.CreatedAt = old.CreatedAt

	c.stopTimer(old)
	if err := c.storage.SaveGame(ctx, fresh); err != nil {
		return nil, err
	}
	c.startTimer(fresh, fresh.StartedAt)

	c.logger.Info("game reset",
		slog.String("game_id", string(gameID)),
		slog.Int64("seed", fresh.Seed),
	)
	c.notify(fresh, model.EventGameReset, nil)

	return fresh.Clone(), nil
}

// SetShowWords sets and persists word-list visibility
func (c *Controller) SetShowWords(ctx context.Context, gameID model.GameID, playerID model.PlayerID, show bool) (*model.Game, error) {
	return c.withGame(ctx, gameID, playerID, true, func(game *model.Game) error {
		return c.applyShowWords(ctx, game, show)
	})
}

// ToggleShowWords flips and persists word-list visibility
func (c *Controller) ToggleShowWords(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.withGame(ctx, gameID, playerID, true, func(game *model.Game) error {
		return c.applyShowWords(ctx, game, !game.ShowWords)
	})
}

func (c *Controller) applyShowWords(ctx context.Context, game *model.Game, show bool) error {
	if err := c.records.SetShowWords(ctx, game.PlayerID, show); err != nil {
		return err
	}
	game.ShowWords = show
	c.notify(game, model.EventWordsToggled, model.WordsToggledPayload{ShowWords: show})
	return nil
}

// Abandon stops the game's timer and deletes it
func (c *Controller) Abandon(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.load(ctx, gameID, playerID)
	if err != nil {
		return err
	}

	c.stopTimer(game)
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	game.State = model.GameStateAbandoned
	c.logger.Info("game abandoned", slog.String("game_id", string(gameID)))
	c.notify(game, model.EventGameAbandoned, nil)
	return nil
}

// Elapsed returns the game's running time, or its final time once complete
func (c *Controller) Elapsed(game *model.Game) time.Duration {
	if game.State == model.GameStateComplete && game.CompletedAt != nil {
		return game.CompletedAt.Sub(game.StartedAt)
	}

	c.mu.Lock()
	handle := c.running[game.ID]
	c.mu.Unlock()
	if handle != nil && handle.StartedAt().Equal(game.StartedAt) {
		return handle.Elapsed()
	}

	elapsed := c.clock.Since(game.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ElapsedDisplay returns the MM:SS:hh time to show for the game
func (c *Controller) ElapsedDisplay(game *model.Game) string {
	if game.FinalTime != "" {
		return game.FinalTime
	}
	return timer.FormatElapsed(c.Elapsed(game))
}

// Shutdown stops every running timer
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, handle := range c.running {
		handle.Stop()
		delete(c.running, id)
	}
}

// SweepTimers stops the samplers of games that are gone from storage, no
// longer playing, or idle past the configured timeout. It returns how many
// were stopped.
func (c *Controller) SweepTimers(ctx context.Context) int {
	c.mu.Lock()
	ids := make([]model.GameID, 0, len(c.running))
	for id := range c.running {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	stopped := 0
	for _, id := range ids {
		if c.sweep(ctx, id) {
			stopped++
		}
	}
	return stopped
}

func (c *Controller) sweep(ctx context.Context, gameID model.GameID) bool {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	switch {
	case errors.Is(err, model.ErrGameNotFound):
	case err != nil:
		c.logger.Warn("failed to check game timer",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return false
	case game.State == model.GameStatePlaying && c.clock.Since(game.UpdatedAt) < c.cfg.IdleTimeout:
		return false
	}

	c.mu.Lock()
	handle := c.running[gameID]
	delete(c.running, gameID)
	c.mu.Unlock()
	if handle == nil {
		return false
	}
	handle.Stop()

	c.logger.Debug("game timer stopped", slog.String("game_id", string(gameID)))
	return true
}

// RunSweeper calls SweepTimers every interval until ctx is done
func (c *Controller) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if stopped := c.SweepTimers(ctx); stopped > 0 {
				c.logger.Info("idle game timers stopped", slog.Int("count", stopped))
			}
		}
	}
}

// withGame loads the game under its lock, runs fn, saves when mutating
// and returns a snapshot
func (c *Controller) withGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID, mutate bool, fn func(game *model.Game) error) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.load(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	if fn != nil {
		if err := fn(game); err != nil {
			return nil, err
		}
	}

	if mutate {
		game.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveGame(ctx, game); err != nil {
			c.logger.Error("failed to save game",
				slog.String("game_id", string(game.ID)),
				slog.String("error", err.Error()),
			)
			return nil, err
		}
	}

	return game.Clone(), nil
}

// load fetches a game, checks ownership and resumes its timer if this
// process has none running (e.g. after a restart with persistent storage)
func (c *Controller) load(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.PlayerID != playerID {
		return nil, model.ErrNotGameOwner
	}
	if game.Selection == nil {
		game.Selection = model.NewSelection()
	}

	if game.State == model.GameStatePlaying {
		c.mu.Lock()
		_, running := c.running[game.ID]
		c.mu.Unlock()
		if !running {
			c.startTimer(game, game.StartedAt)
		}
	}
	return game, nil
}

func (c *Controller) requirePlaying(game *model.Game) error {
	switch game.State {
	case model.GameStatePlaying:
		return nil
	case model.GameStateComplete:
		return model.ErrGameComplete
	default:
		return model.ErrGameNotFound
	}
}

// lock takes the game's lock and returns the func that releases it
func (c *Controller) lock(gameID model.GameID) func() {
	c.mu.Lock()
	l, ok := c.locks[gameID]
	if !ok {
		l = &gameLock{}
		c.locks[gameID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, gameID)
		}
		c.mu.Unlock()
	}
}

func (c *Controller) startTimer(game *model.Game, startedAt time.Time) {
	gameID, playerID := game.ID, game.PlayerID
	lastTick := int64(-1)

	handle := c.timers.StartAt(startedAt, func(sample timer.Sample) {
		tick := int64(sample.Elapsed / TimerEventInterval)
		if tick == lastTick {
			return
		}
		lastTick = tick
		if c.notifier != nil {
			c.notifier.Notify(model.Event{
				Type:      model.EventTimer,
				Timestamp: c.clock.Now(),
				GameID:    gameID,
				PlayerID:  playerID,
				Payload:   model.TimerPayload{Elapsed: sample.Display},
			})
		}
	})

	c.mu.Lock()
	previous := c.running[gameID]
	c.running[gameID] = handle
	c.mu.Unlock()

	if previous != nil {
		previous.Stop()
	}
}

// stopTimer stops the game's timer and returns the final elapsed time
func (c *Controller) stopTimer(game *model.Game) time.Duration {
	c.mu.Lock()
	handle := c.running[game.ID]
	delete(c.running, game.ID)
	c.mu.Unlock()

	if handle != nil {
		return handle.Stop()
	}
	return c.clock.Since(game.StartedAt)
}

func (c *Controller) notify(game *model.Game, eventType model.EventType, payload any) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    game.ID,
		PlayerID:  game.PlayerID,
		Payload:   payload,
	})
}

func (c *Controller) notifySelection(game *model.Game) {
	c.notify(game, model.EventSelectionChanged, model.SelectionChangedPayload{
		Selected: game.Selection.Positions(),
	})
}

// ControllerInterface defines the game controller contract
type ControllerInterface interface {
	NewGame(ctx context.Context, playerID model.PlayerID, opts NewGameOptions) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	Toggle(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*model.Game, error)
	Press(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*model.Game, error)
	DragEnter(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*model.Game, error)
	Release(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	ClearSelection(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	Submit(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*SubmitResult, error)
	Reset(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	SetShowWords(ctx context.Context, gameID model.GameID, playerID model.PlayerID, show bool) (*model.Game, error)
	ToggleShowWords(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	Abandon(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error
	ElapsedDisplay(game *model.Game) string
}

var _ ControllerInterface = (*Controller)(nil)
