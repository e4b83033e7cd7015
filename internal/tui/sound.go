package tui

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays short cues for game events
type Sound interface {
	WordFound()
	Complete()
	Miss()
}

// Silent is a Sound that does nothing
type Silent struct{}

func (Silent) WordFound() {}
func (Silent) Complete()  {}
func (Silent) Miss()      {}

// Speaker plays cues through the system audio device
type Speaker struct {
	mu sync.Mutex
}

// NewSpeaker initialises the audio device. Callers fall back to Silent on error.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	return &Speaker{}, nil
}

// WordFound plays a rising two-note chime
func (s *Speaker) WordFound() {
	s.play(chime(880, 1318.51))
}

// Complete plays a three-note arpeggio
func (s *Speaker) Complete() {
	s.play(chime(659.25, 880, 1318.51))
}

// Miss plays a short low tone
func (s *Speaker) Miss() {
	s.play(chime(196))
}

func (s *Speaker) play(streamer beep.Streamer) {
	if streamer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	speaker.Play(streamer)
}

// chime sequences one short sine note per frequency
func chime(freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, freq := range freqs {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			continue
		}
		notes = append(notes, beep.Take(sampleRate.N(90*time.Millisecond), tone))
	}
	if len(notes) == 0 {
		return nil
	}
	return &effects.Volume{Streamer: beep.Seq(notes...), Base: 2, Volume: -2}
}
