package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return newOutputTo(format, os.Stdout)
}

func newOutputTo(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case SubmitResult:
		o.printSubmitResult(v)
	case Records:
		o.printRecords(v)
	case Preferences:
		fmt.Fprintf(o.w, "Show words: %s\n", yesNo(v.ShowWords))
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
		if v.Words > 0 {
			fmt.Fprintf(o.w, "Words: %d\n", v.Words)
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Position is a grid coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell response type
type Cell struct {
	Letter string `json:"letter"`
	State  string `json:"state"`
}

// FoundWord response type
type FoundWord struct {
	Text      string     `json:"text"`
	Positions []Position `json:"positions"`
}

// Game response type
type Game struct {
	ID          string      `json:"id"`
	State       string      `json:"state"`
	Seed        int64       `json:"seed"`
	Size        int         `json:"size"`
	Cells       [][]Cell    `json:"cells"`
	Outstanding []string    `json:"outstanding,omitempty"`
	Found       []FoundWord `json:"found"`
	Selection   []Position  `json:"selection"`
	ShowWords   bool        `json:"show_words"`
	Elapsed     string      `json:"elapsed"`
	FinalTime   string      `json:"final_time,omitempty"`
	NewBest     bool        `json:"new_best,omitempty"`
}

// SubmitResult response type
type SubmitResult struct {
	Found     bool   `json:"found"`
	Word      string `json:"word"`
	Complete  bool   `json:"complete"`
	FinalTime string `json:"final_time,omitempty"`
	NewBest   bool   `json:"new_best,omitempty"`
	BestTime  string `json:"best_time,omitempty"`
	Game      Game   `json:"game"`
}

// GameSummary response type
type GameSummary struct {
	ID        string `json:"id"`
	GridSize  int    `json:"grid_size"`
	WordCount int    `json:"word_count"`
	FinalTime string `json:"final_time"`
	NewBest   bool   `json:"new_best"`
}

// Records response type
type Records struct {
	BestTime  string        `json:"best_time"`
	ShowWords bool          `json:"show_words"`
	History   []GameSummary `json:"history"`
}

// Preferences response type
type Preferences struct {
	ShowWords bool `json:"show_words"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Words  int    `json:"words,omitempty"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Fprintf(o.w, "Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Fprintf(o.w, "Guest: %s\n", yesNo(p.IsGuest))
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "State: %s\n", g.State)
	fmt.Fprintf(o.w, "Seed: %d\n", g.Seed)
	if g.FinalTime != "" {
		fmt.Fprintf(o.w, "Time: %s\n", g.FinalTime)
	} else {
		fmt.Fprintf(o.w, "Time: %s\n", g.Elapsed)
	}
	fmt.Fprintln(o.w)
	o.printGrid(g.Cells)

	found := make([]string, len(g.Found))
	for i, fw := range g.Found {
		found[i] = fw.Text
	}
	fmt.Fprintf(o.w, "\nFound (%d): %s\n", len(found), strings.Join(found, ", "))
	if g.ShowWords {
		fmt.Fprintf(o.w, "Remaining (%d): %s\n", len(g.Outstanding), strings.Join(g.Outstanding, ", "))
	}
}

// printGrid marks selected cells with [X] and found cells with (X)
func (o *Output) printGrid(cells [][]Cell) {
	size := len(cells)
	if size == 0 {
		return
	}

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(o.w, "%2d ", col)
	}
	fmt.Fprintln(o.w)

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Fprintf(o.w, "%2d |", row)
		for col := 0; col < size; col++ {
			cell := cells[row][col]
			letter := cell.Letter
			if letter == "" {
				letter = "."
			}
			switch cell.State {
			case "selected":
				fmt.Fprintf(o.w, "[%s]", letter)
			case "found":
				fmt.Fprintf(o.w, "(%s)", letter)
			default:
				fmt.Fprintf(o.w, " %s ", letter)
			}
		}
		fmt.Fprintln(o.w, "|")
	}
}

func (o *Output) printSubmitResult(r SubmitResult) {
	switch {
	case r.Found:
		fmt.Fprintf(o.w, "Found %s!\n", r.Word)
	case r.Word == "":
		fmt.Fprintln(o.w, "Nothing selected")
	default:
		fmt.Fprintf(o.w, "Not a word: %s\n", r.Word)
	}

	if r.Complete {
		fmt.Fprintf(o.w, "All words found in %s\n", r.FinalTime)
		if r.NewBest {
			fmt.Fprintln(o.w, "New best time!")
		} else if r.BestTime != "" {
			fmt.Fprintf(o.w, "Best time: %s\n", r.BestTime)
		}
		return
	}
	if r.Game.ShowWords {
		fmt.Fprintf(o.w, "Remaining: %s\n", strings.Join(r.Game.Outstanding, ", "))
	}
}

func (o *Output) printRecords(r Records) {
	fmt.Fprintf(o.w, "Best time: %s\n", r.BestTime)
	fmt.Fprintf(o.w, "Show words: %s\n", yesNo(r.ShowWords))
	if len(r.History) == 0 {
		return
	}
	fmt.Fprintf(o.w, "Recent games (%d):\n", len(r.History))
	for _, s := range r.History {
		best := ""
		if s.NewBest {
			best = " [best]"
		}
		fmt.Fprintf(o.w, "  - %s  %dx%d, %d words  %s%s\n", s.ID, s.GridSize, s.GridSize, s.WordCount, s.FinalTime, best)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
