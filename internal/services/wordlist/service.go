package wordlist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/storage"
)

// Service holds the normalized word list games are generated from
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.RWMutex
	words  []string
	loaded bool
}

// New creates a new word list service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// LoadFromStorage loads a previously saved word list
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetWordList(ctx)
	if err != nil {
		return err
	}
	return s.LoadWords(words)
}

// LoadFromFile loads words from a JSON or plain-text file and saves them to storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	return s.LoadFromSource(ctx, FileSource{Path: path})
}

// LoadFromSource loads words from any source and saves them to storage
func (s *Service) LoadFromSource(ctx context.Context, source Source) error {
	words, err := source.Words(ctx)
	if err != nil {
		return fmt.Errorf("load words from %s: %w", source, err)
	}

	if err := s.LoadWords(words); err != nil {
		return err
	}

	// Save to storage for future use
	if err := s.storage.SaveWordList(ctx, s.snapshot()); err != nil {
		return err
	}

	s.logger.Info("word list loaded",
		slog.String("source", source.String()),
		slog.Int("words", s.WordCount()),
	)
	return nil
}

// LoadWords replaces the list. Words are trimmed, uppercased and
// deduplicated; entries containing anything but letters are dropped.
func (s *Service) LoadWords(words []string) error {
	normalized := Normalize(words)
	if len(normalized) == 0 {
		return model.ErrEmptyWordList
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = normalized
	s.loaded = true
	return nil
}

// Words returns every word that fits a grid of the given size
func (s *Service) Words(maxLen int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, model.ErrWordListNotLoaded
	}

	result := make([]string, 0, len(s.words))
	for _, w := range s.words {
		if utf8.RuneCountInString(w) <= maxLen {
			result = append(result, w)
		}
	}
	if len(result) == 0 {
		return nil, model.ErrEmptyWordList
	}
	return result, nil
}

// IsLoaded returns whether a word list has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the list
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

func (s *Service) snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Normalize uppercases, trims and deduplicates words, keeping first-seen order
func Normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" || !isLetters(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func isLetters(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ServiceInterface defines the word list service contract
type ServiceInterface interface {
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadFromSource(ctx context.Context, source Source) error
	LoadWords(words []string) error
	Words(maxLen int) ([]string, error)
	IsLoaded() bool
	WordCount() int
}

var _ ServiceInterface = (*Service)(nil)
