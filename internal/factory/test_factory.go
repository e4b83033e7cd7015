package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/wordsearch/internal/dependencies/mocks"
	"github.com/mcoot/wordsearch/internal/services/auth"
	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/timer"
	"github.com/mcoot/wordsearch/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Grids default to 6x6 with two words so the test word list always fits.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	gameCfg := game.DefaultConfig()
	gameCfg.DefaultSize = 6
	gameCfg.DefaultWordCount = 2

	app := newWithDependencies(store, mockClock, mockRandom, timer.NewWithInterval(mockClock, time.Millisecond), auth.DefaultConfig(), gameCfg, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWords loads a small word list for testing
func (t *TestApp) LoadTestWords() error {
	return t.WordList.LoadWords([]string{
		"CAT", "DOG", "EMU", "OWL", "YAK",
		"BAUM", "HAUS", "MAUS", "KÄSE", "BÄR",
	})
}
