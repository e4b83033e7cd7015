package wordlist

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Source supplies raw, unnormalized words
type Source interface {
	Words(ctx context.Context) ([]string, error)
	String() string
}

// FileSource reads words from a file on disk
type FileSource struct {
	Path string
}

// Words reads and parses the file
func (f FileSource) Words(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (f FileSource) String() string {
	return "file:" + f.Path
}

// StaticSource serves a fixed list
type StaticSource []string

// Words returns the list
func (s StaticSource) Words(ctx context.Context) ([]string, error) {
	return s, nil
}

func (s StaticSource) String() string {
	return fmt.Sprintf("static:%d", len(s))
}

// listKeys are the object keys recognised in JSON word lists, in priority order
var listKeys = []string{"wörter", "words", "woerter"}

// Parse accepts a JSON object holding a word array (under "wörter" or
// "words"), a bare JSON array, or one word per line
func Parse(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))

	switch {
	case len(trimmed) == 0:
		return nil, nil
	case trimmed[0] == '[':
		var words []string
		if err := json.Unmarshal(trimmed, &words); err != nil {
			return nil, fmt.Errorf("parse word array: %w", err)
		}
		return words, nil
	case trimmed[0] == '{':
		var lists map[string][]string
		if err := json.Unmarshal(trimmed, &lists); err != nil {
			return nil, fmt.Errorf("parse word object: %w", err)
		}
		for _, key := range listKeys {
			if words, ok := lists[key]; ok {
				return words, nil
			}
		}
		return nil, fmt.Errorf("parse word object: none of the keys %v present", listKeys)
	}

	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" && !strings.HasPrefix(word, "#") {
			words = append(words, word)
		}
	}
	return words, scanner.Err()
}
