package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearch/internal/dependencies/mocks"
	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/records"
	"github.com/mcoot/wordsearch/internal/services/timer"
	"github.com/mcoot/wordsearch/internal/services/wordlist"
	"github.com/mcoot/wordsearch/internal/storage/memory"
	"github.com/mcoot/wordsearch/internal/testutil"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []model.Event
}

func (n *recordingNotifier) Notify(event model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) ofType(eventType model.EventType) []model.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	var result []model.Event
	for _, e := range n.events {
		if e.Type == eventType {
			result = append(result, e)
		}
	}
	return result
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	records    *records.Service
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	notifier   *recordingNotifier
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.notifier = &recordingNotifier{}
	s.ctx = context.Background()

	words := wordlist.New(s.storage, testutil.NopLogger())
	s.Require().NoError(words.LoadWords([]string{"CAT", "DOG"}))
	s.records = records.New(s.storage, testutil.NopLogger())

	cfg := DefaultConfig()
	cfg.DefaultSize = 6
	cfg.DefaultWordCount = 2

	s.controller = NewController(
		s.storage,
		words,
		s.records,
		timer.NewWithInterval(s.clock, time.Millisecond),
		s.clock,
		s.random,
		testutil.NopLogger(),
		s.notifier,
		cfg,
	)
}

func (s *ControllerSuite) TearDownTest() {
	s.controller.Shutdown()
}

func (s *ControllerSuite) newGame(id string) *model.Game {
	s.random.QueueString(id)
	seed := int64(7)
	game, err := s.controller.NewGame(s.ctx, "p1", NewGameOptions{Seed: &seed})
	s.Require().NoError(err)
	return game
}

func (s *ControllerSuite) selectWord(game *model.Game, pw model.PlacedWord) *model.Game {
	var err error
	for _, pos := range pw.Positions() {
		game, err = s.controller.Toggle(s.ctx, game.ID, "p1", pos)
		s.Require().NoError(err)
	}
	return game
}

func (s *ControllerSuite) TestNewGame() {
	game := s.newGame("GAME1")

	s.Equal(model.GameID("GAME1"), game.ID)
	s.Equal(model.PlayerID("p1"), game.PlayerID)
	s.Equal(model.GameStatePlaying, game.State)
	s.Equal(int64(7), game.Seed)
	s.Equal(6, game.Grid.Size)
	s.True(game.Grid.IsFull())
	s.Len(game.Placed, 2)
	s.ElementsMatch([]string{"CAT", "DOG"}, game.Outstanding)
	s.Empty(game.Found)
	s.Equal(0, game.Selection.Len())
	s.False(game.ShowWords)
	s.Equal(s.clock.Now(), game.StartedAt)
	s.Len(s.notifier.ofType(model.EventGameCreated), 1)
}

func (s *ControllerSuite) TestNewGameSameSeedSamePuzzle() {
	first := s.newGame("GAME1")
	second := s.newGame("GAME2")

	s.Equal(first.Grid.Rows(), second.Grid.Rows())
	s.Equal(first.Placed, second.Placed)
}

func (s *ControllerSuite) TestNewGameUsesShowWordsPreference() {
	s.Require().NoError(s.records.SetShowWords(s.ctx, "p1", true))

	game := s.newGame("GAME1")

	s.True(game.ShowWords)
}

func (s *ControllerSuite) TestNewGameInvalidSize() {
	_, err := s.controller.NewGame(s.ctx, "p1", NewGameOptions{Size: 2})
	s.ErrorIs(err, model.ErrInvalidGridSize)

	_, err = s.controller.NewGame(s.ctx, "p1", NewGameOptions{Size: 27})
	s.ErrorIs(err, model.ErrInvalidGridSize)
}

func (s *ControllerSuite) TestNewGameInvalidWordCount() {
	_, err := s.controller.NewGame(s.ctx, "p1", NewGameOptions{WordCount: -1})
	s.ErrorIs(err, model.ErrInvalidWordCount)
}

func (s *ControllerSuite) TestGetGameWrongOwner() {
	game := s.newGame("GAME1")

	_, err := s.controller.GetGame(s.ctx, game.ID, "p2")
	s.ErrorIs(err, model.ErrNotGameOwner)
}

func (s *ControllerSuite) TestGetGameNotFound() {
	_, err := s.controller.GetGame(s.ctx, "missing", "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestToggleSelectsAndDeselects() {
	game := s.newGame("GAME1")
	pos := model.Position{Row: 2, Col: 3}

	game, err := s.controller.Toggle(s.ctx, game.ID, "p1", pos)
	s.Require().NoError(err)
	s.True(game.Selection.Contains(pos))
	s.Equal(model.CellSelected, game.Grid.MustAt(pos).State)

	game, err = s.controller.Toggle(s.ctx, game.ID, "p1", pos)
	s.Require().NoError(err)
	s.False(game.Selection.Contains(pos))
	s.Equal(model.CellFilled, game.Grid.MustAt(pos).State)

	s.Len(s.notifier.ofType(model.EventSelectionChanged), 2)
}

func (s *ControllerSuite) TestToggleOutOfBounds() {
	game := s.newGame("GAME1")

	_, err := s.controller.Toggle(s.ctx, game.ID, "p1", model.Position{Row: 6, Col: 0})
	s.ErrorIs(err, model.ErrOutOfBounds)
}

func (s *ControllerSuite) TestReturnedGameIsSnapshot() {
	game := s.newGame("GAME1")
	game.Selection.Add(model.Position{Row: 0, Col: 0})

	stored, err := s.controller.GetGame(s.ctx, game.ID, "p1")
	s.Require().NoError(err)
	s.Equal(0, stored.Selection.Len())
}

func (s *ControllerSuite) TestDragSelectsEnteredCells() {
	game := s.newGame("GAME1")

	game, err := s.controller.Press(s.ctx, game.ID, "p1", model.Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.True(game.Dragging)

	game, err = s.controller.DragEnter(s.ctx, game.ID, "p1", model.Position{Row: 0, Col: 1})
	s.Require().NoError(err)
	game, err = s.controller.DragEnter(s.ctx, game.ID, "p1", model.Position{Row: 0, Col: 2})
	s.Require().NoError(err)
	s.Equal(3, game.Selection.Len())

	// Wobbling back over the path keeps it intact
	for _, col := range []int{1, 2} {
		game, err = s.controller.DragEnter(s.ctx, game.ID, "p1", model.Position{Row: 0, Col: col})
		s.Require().NoError(err)
	}
	s.Equal([]model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, game.Selection.Positions())
	s.Equal(model.SideLeft|model.SideRight, game.Grid.MustAt(model.Position{Row: 0, Col: 1}).Connections)

	game, err = s.controller.Release(s.ctx, game.ID, "p1")
	s.Require().NoError(err)
	s.False(game.Dragging)

	game, err = s.controller.DragEnter(s.ctx, game.ID, "p1", model.Position{Row: 1, Col: 1})
	s.Require().NoError(err)
	s.False(game.Selection.Contains(model.Position{Row: 1, Col: 1}))
}

func (s *ControllerSuite) TestClearSelection() {
	game := s.newGame("GAME1")
	game = s.selectWord(game, model.PlacedWord{Text: "XX", Orientation: model.Horizontal, Start: model.Position{Row: 0, Col: 0}})
	s.Equal(2, game.Selection.Len())

	game, err := s.controller.ClearSelection(s.ctx, game.ID, "p1")
	s.Require().NoError(err)
	s.Equal(0, game.Selection.Len())
	game.Grid.ForEach(func(pos model.Position, cell *model.Cell) {
		s.Equal(model.CellFilled, cell.State, pos.String())
		s.Equal(model.Side(0), cell.Connections, pos.String())
	})
}

func (s *ControllerSuite) TestSubmitFoundWord() {
	game := s.newGame("GAME1")
	placed := game.Placed[0]
	game = s.selectWord(game, placed)

	result, err := s.controller.Submit(s.ctx, game.ID, "p1")
	s.Require().NoError(err)

	s.True(result.Found)
	s.False(result.Complete)
	s.Equal(placed.Text, result.Word)
	s.Require().NotNil(result.FoundWord)
	s.Equal(placed.Positions(), result.FoundWord.Positions)
	s.NotEmpty(result.FoundWord.Color.Background)

	game = result.Game
	s.NotContains(game.Outstanding, placed.Text)
	s.Len(game.Found, 1)
	s.Equal(0, game.Selection.Len())
	for _, pos := range placed.Positions() {
		cell := game.Grid.MustAt(pos)
		s.Equal(model.CellFound, cell.State)
		s.NotNil(cell.Color)
	}
	s.Len(s.notifier.ofType(model.EventWordFound), 1)
}

func (s *ControllerSuite) TestSubmitNoMatchKeepsSelection() {
	game := s.newGame("GAME1")
	pos := model.Position{Row: 0, Col: 0}
	game, err := s.controller.Toggle(s.ctx, game.ID, "p1", pos)
	s.Require().NoError(err)

	result, err := s.controller.Submit(s.ctx, game.ID, "p1")
	s.Require().NoError(err)

	s.False(result.Found)
	s.Nil(result.FoundWord)
	s.True(result.Game.Selection.Contains(pos))
	s.Len(result.Game.Outstanding, 2)
}

func (s *ControllerSuite) TestFoundCellCanBeSelectedAgain() {
	game := s.newGame("GAME1")
	placed := game.Placed[0]
	game = s.selectWord(game, placed)
	_, err := s.controller.Submit(s.ctx, game.ID, "p1")
	s.Require().NoError(err)

	game, err = s.controller.Toggle(s.ctx, game.ID, "p1", placed.Start)
	s.Require().NoError(err)
	s.True(game.Selection.Contains(placed.Start))
	s.Equal(model.CellFound, game.Grid.MustAt(placed.Start).State)
}

func (s *ControllerSuite) TestCompletingGameRecordsTime() {
	game := s.newGame("GAME1")
	s.clock.Advance(90 * time.Second)

	var result *SubmitResult
	for _, placed := range game.Placed {
		game = s.selectWord(game, placed)
		var err error
		result, err = s.controller.Submit(s.ctx, game.ID, "p1")
		s.Require().NoError(err)
		game = result.Game
	}

	expected := timer.FormatElapsed(90 * time.Second)
	s.True(result.Complete)
	s.True(result.NewBest)
	s.Equal(expected, result.FinalTime)
	s.Equal(expected, result.BestTime)
	s.Equal(model.GameStateComplete, game.State)
	s.NotNil(game.CompletedAt)
	s.Equal(expected, s.controller.ElapsedDisplay(game))

	best, err := s.records.BestTimeDisplay(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(expected, best)

	history, err := s.records.History(s.ctx, "p1", 10)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(game.ID, history[0].ID)
	s.Len(s.notifier.ofType(model.EventGameComplete), 1)

	_, err = s.controller.Toggle(s.ctx, game.ID, "p1", model.Position{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrGameComplete)
}

func (s *ControllerSuite) TestSlowerCompletionKeepsBest() {
	s.Require().NoError(s.storage.SetValue(s.ctx, "p1:bestTime", timer.FormatElapsed(30*time.Second)))
	game := s.newGame("GAME1")
	s.clock.Advance(45 * time.Second)

	var result *SubmitResult
	for _, placed := range game.Placed {
		game = s.selectWord(game, placed)
		var err error
		result, err = s.controller.Submit(s.ctx, game.ID, "p1")
		s.Require().NoError(err)
		game = result.Game
	}

	s.True(result.Complete)
	s.False(result.NewBest)
	s.Equal(timer.FormatElapsed(45*time.Second), result.FinalTime)
	s.Equal(timer.FormatElapsed(30*time.Second), result.BestTime)
}

func (s *ControllerSuite) TestResetReplacesSession() {
	game := s.newGame("GAME1")
	game = s.selectWord(game, game.Placed[0])
	_, err := s.controller.Submit(s.ctx, game.ID, "p1")
	s.Require().NoError(err)

	oldHandle := s.controller.running[game.ID]
	s.Require().NotNil(oldHandle)
	s.clock.Advance(time.Minute)

	reset, err := s.controller.Reset(s.ctx, game.ID, "p1")
	s.Require().NoError(err)

	s.Equal(game.ID, reset.ID)
	s.Equal(model.GameStatePlaying, reset.State)
	s.Empty(reset.Found)
	s.Len(reset.Outstanding, len(reset.Placed))
	s.Equal(0, reset.Selection.Len())
	s.Equal(s.clock.Now(), reset.StartedAt)
	s.True(oldHandle.Stopped())
	s.NotSame(oldHandle, s.controller.running[game.ID])
	s.Len(s.notifier.ofType(model.EventGameReset), 1)
}

func (s *ControllerSuite) TestToggleShowWordsPersists() {
	game := s.newGame("GAME1")

	game, err := s.controller.ToggleShowWords(s.ctx, game.ID, "p1")
	s.Require().NoError(err)
	s.True(game.ShowWords)

	show, err := s.records.ShowWords(s.ctx, "p1")
	s.Require().NoError(err)
	s.True(show)

	game, err = s.controller.SetShowWords(s.ctx, game.ID, "p1", false)
	s.Require().NoError(err)
	s.False(game.ShowWords)
	s.Len(s.notifier.ofType(model.EventWordsToggled), 2)
}

func (s *ControllerSuite) TestAbandon() {
	game := s.newGame("GAME1")
	handle := s.controller.running[game.ID]

	err := s.controller.Abandon(s.ctx, game.ID, "p1")
	s.Require().NoError(err)

	s.True(handle.Stopped())
	_, err = s.controller.GetGame(s.ctx, game.ID, "p1")
	s.ErrorIs(err, model.ErrGameNotFound)
	s.Len(s.notifier.ofType(model.EventGameAbandoned), 1)
}

func (s *ControllerSuite) TestAbandonWrongOwner() {
	game := s.newGame("GAME1")

	err := s.controller.Abandon(s.ctx, game.ID, "p2")
	s.ErrorIs(err, model.ErrNotGameOwner)
}

func (s *ControllerSuite) TestTimerResumesAfterRestart() {
	game := s.newGame("GAME1")
	s.controller.Shutdown()
	s.Empty(s.controller.running)

	s.clock.Advance(5 * time.Second)
	loaded, err := s.controller.GetGame(s.ctx, game.ID, "p1")
	s.Require().NoError(err)

	s.NotNil(s.controller.running[game.ID])
	s.Equal(timer.FormatElapsed(5*time.Second), s.controller.ElapsedDisplay(loaded))
}

func (s *ControllerSuite) TestSweepStopsIdleAndDeletedTimers() {
	idle := s.newGame("GAME1")
	deleted := s.newGame("GAME2")
	active := s.newGame("GAME3")
	idleHandle := s.controller.running[idle.ID]
	deletedHandle := s.controller.running[deleted.ID]
	s.Require().NoError(s.storage.DeleteGame(s.ctx, deleted.ID))

	s.clock.Advance(10 * time.Minute)
	_, err := s.controller.Toggle(s.ctx, active.ID, "p1", model.Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.clock.Advance(25 * time.Minute)

	s.Equal(2, s.controller.SweepTimers(s.ctx))
	s.True(idleHandle.Stopped())
	s.True(deletedHandle.Stopped())
	s.Len(s.controller.running, 1)
	s.NotNil(s.controller.running[active.ID])

	s.clock.Advance(10 * time.Minute)
	s.Equal(1, s.controller.SweepTimers(s.ctx))
	s.Empty(s.controller.running)
	s.Zero(s.controller.SweepTimers(s.ctx))

	// The clock of an idle game keeps running from its start
	loaded, err := s.controller.GetGame(s.ctx, idle.ID, "p1")
	s.Require().NoError(err)
	s.NotNil(s.controller.running[idle.ID])
	s.Equal(timer.FormatElapsed(45*time.Minute), s.controller.ElapsedDisplay(loaded))
}

func (s *ControllerSuite) TestSweepStopsFinishedGameTimers() {
	game := s.newGame("GAME1")
	handle := s.controller.running[game.ID]

	stored, err := s.storage.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	stored.State = model.GameStateComplete
	s.Require().NoError(s.storage.SaveGame(s.ctx, stored))

	s.Equal(1, s.controller.SweepTimers(s.ctx))
	s.True(handle.Stopped())
}

func (s *ControllerSuite) TestGameLocksReleased() {
	game := s.newGame("GAME1")
	_, err := s.controller.Toggle(s.ctx, game.ID, "p1", model.Position{Row: 1, Col: 1})
	s.Require().NoError(err)
	_, err = s.controller.GetGame(s.ctx, "missing", "p1")
	s.ErrorIs(err, model.ErrGameNotFound)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.controller.GetGame(s.ctx, game.ID, "p1")
		}()
	}
	wg.Wait()

	s.controller.mu.Lock()
	defer s.controller.mu.Unlock()
	s.Empty(s.controller.locks)
}
