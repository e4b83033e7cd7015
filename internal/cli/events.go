package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput, showTimer bool

	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Stream live events for a puzzle",
		Long: `Connect to the puzzle's event stream and print events as they arrive.

Events include:
  - selection_changed: Cells were selected or deselected
  - word_found: A hidden word was found
  - game_complete: The last word was found
  - game_reset: The puzzle was replaced
  - game_abandoned: The puzzle was discarded
  - words_toggled: The word list was shown or hidden
  - timer: Elapsed time, at most every 100ms (hidden unless --timer)

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, args[0], jsonOutput, showTimer, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().BoolVar(&showTimer, "timer", false, "Include timer events")

	return cmd
}

// SSEEvent is one parsed server-sent event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

// gameEvent mirrors the JSON body the server sends for each event
type gameEvent struct {
	Type    string          `json:"type"`
	GameID  string          `json:"game_id"`
	Payload json.RawMessage `json:"payload"`
}

func streamEvents(ctx context.Context, gameID string, jsonOutput, showTimer bool, w io.Writer) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + gamePath(gameID, "/events")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	// No client timeout: the stream stays open until one side closes it
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Fprintf(w, "Connected to game %s\n", gameID)
	}

	err = readEvents(resp.Body, func(evt SSEEvent) {
		if evt.Event == "timer" && !showTimer {
			return
		}
		printEvent(w, evt, jsonOutput)
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

// readEvents parses an event stream, calling fn for each complete event
func readEvents(r io.Reader, fn func(SSEEvent)) error {
	scanner := bufio.NewScanner(r)
	var name string
	var data []string

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case line == "":
			if name != "" {
				fn(SSEEvent{Time: time.Now(), Event: name, Data: strings.Join(data, "\n")})
			}
			name = ""
			data = nil
		}
	}
	return scanner.Err()
}

func printEvent(w io.Writer, evt SSEEvent, jsonOutput bool) {
	if jsonOutput {
		line, _ := json.Marshal(evt)
		fmt.Fprintln(w, string(line))
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", evt.Time.Format("15:04:05"), describeEvent(evt))
}

// describeEvent turns the JSON body of an event into one readable line
func describeEvent(evt SSEEvent) string {
	var ge gameEvent
	if err := json.Unmarshal([]byte(evt.Data), &ge); err != nil {
		return evt.Event + ": " + evt.Data
	}

	switch evt.Event {
	case "word_found":
		var p struct {
			Word        FoundWord `json:"word"`
			Outstanding int       `json:"outstanding"`
		}
		if json.Unmarshal(ge.Payload, &p) == nil {
			return fmt.Sprintf("Found %s, %d left", p.Word.Text, p.Outstanding)
		}
	case "game_complete":
		var p struct {
			FinalTime string `json:"final_time"`
			NewBest   bool   `json:"new_best"`
		}
		if json.Unmarshal(ge.Payload, &p) == nil {
			if p.NewBest {
				return fmt.Sprintf("Solved in %s, new best time", p.FinalTime)
			}
			return fmt.Sprintf("Solved in %s", p.FinalTime)
		}
	case "selection_changed":
		var p struct {
			Selected []Position `json:"selected"`
		}
		if json.Unmarshal(ge.Payload, &p) == nil {
			return fmt.Sprintf("%d cells selected", len(p.Selected))
		}
	case "words_toggled":
		var p struct {
			ShowWords bool `json:"show_words"`
		}
		if json.Unmarshal(ge.Payload, &p) == nil {
			if p.ShowWords {
				return "Word list shown"
			}
			return "Word list hidden"
		}
	case "timer":
		var p struct {
			Elapsed string `json:"elapsed"`
		}
		if json.Unmarshal(ge.Payload, &p) == nil {
			return "Time " + p.Elapsed
		}
	case "game_reset":
		return "New puzzle"
	case "game_abandoned":
		return "Puzzle abandoned"
	}
	return evt.Event
}
