package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/wordsearch/internal/services/game"
	"github.com/mcoot/wordsearch/internal/services/timer"
)

func TestRedrawFollowsTimerFrames(t *testing.T) {
	assert.Equal(t, timer.FrameInterval, frameInterval)
	// The terminal is not throttled like remote timer events
	assert.Less(t, frameInterval, game.TimerEventInterval)
}
