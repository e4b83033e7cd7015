package timer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/wordsearch/internal/dependencies/clock"
)

// FrameInterval is the sampling cadence, roughly one display frame
const FrameInterval = 16 * time.Millisecond

// ErrInvalidFormat is returned when an elapsed time string is not MM:SS:hh
var ErrInvalidFormat = errors.New("invalid elapsed time format")

// Sample is one reading of a running timer
type Sample struct {
	Elapsed time.Duration
	Display string // MM:SS:hh
}

// Service starts game timers
type Service struct {
	clock    clock.Clock
	interval time.Duration
}

// New creates a timer service sampling at FrameInterval
func New(clk clock.Clock) *Service {
	return &Service{
		clock:    clk,
		interval: FrameInterval,
	}
}

// NewWithInterval creates a timer service with a custom sampling cadence
func NewWithInterval(clk clock.Clock, interval time.Duration) *Service {
	return &Service{
		clock:    clk,
		interval: interval,
	}
}

// Start begins timing now
func (s *Service) Start(onSample func(Sample)) *Handle {
	return s.StartAt(s.clock.Now(), onSample)
}

// StartAt begins timing from an earlier instant, used to resume a game
// whose timer was not running in this process
func (s *Service) StartAt(startedAt time.Time, onSample func(Sample)) *Handle {
	h := &Handle{
		clock:     s.clock,
		startedAt: startedAt,
		done:      make(chan struct{}),
	}
	go h.run(s.interval, onSample)
	return h
}

// Handle controls one running timer
type Handle struct {
	clock     clock.Clock
	startedAt time.Time
	done      chan struct{}

	mu      sync.Mutex
	stopped bool
	final   time.Duration
}

func (h *Handle) run(interval time.Duration, onSample func(Sample)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			if onSample == nil {
				continue
			}
			select {
			case <-h.done:
				return
			default:
			}
			elapsed := h.Elapsed()
			onSample(Sample{Elapsed: elapsed, Display: FormatElapsed(elapsed)})
		}
	}
}

// StartedAt returns the instant timing began
func (h *Handle) StartedAt() time.Time {
	return h.startedAt
}

// Elapsed returns the running time, or the final time once stopped
func (h *Handle) Elapsed() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return h.final
	}
	return h.elapsedLocked()
}

func (h *Handle) elapsedLocked() time.Duration {
	elapsed := h.clock.Now().Sub(h.startedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Stop ends sampling and returns the final elapsed time. Safe to call more than once.
func (h *Handle) Stop() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.final = h.elapsedLocked()
		h.stopped = true
		close(h.done)
	}
	return h.final
}

// Stopped reports whether Stop has been called
func (h *Handle) Stopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

// FormatElapsed renders a duration as zero-padded MM:SS:hh
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hundredths := int64(d / (10 * time.Millisecond))
	minutes := hundredths / 6000
	seconds := (hundredths / 100) % 60
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, hundredths%100)
}

// ParseElapsed converts an MM:SS:hh string back into a duration
func ParseElapsed(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
		values[i] = v
	}
	if values[1] >= 60 || values[2] >= 100 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return time.Duration(values[0])*time.Minute +
		time.Duration(values[1])*time.Second +
		time.Duration(values[2])*10*time.Millisecond, nil
}
