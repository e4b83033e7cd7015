package response

import (
	"time"

	"github.com/mcoot/wordsearch/internal/model"
	"github.com/mcoot/wordsearch/internal/services/auth"
	"github.com/mcoot/wordsearch/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Cell is one grid square. Empty fields are omitted to keep boards small.
type Cell struct {
	Letter      string           `json:"letter"`
	State       string           `json:"state"`
	Connections uint8            `json:"connections,omitempty"`
	Corners     uint8            `json:"corners,omitempty"`
	Color       *model.ColorPair `json:"color,omitempty"`
}

// CellFromModel converts a model.Cell
func CellFromModel(c *model.Cell) Cell {
	cell := Cell{
		State:       string(c.State),
		Connections: uint8(c.Connections),
		Corners:     uint8(c.Corners),
		Color:       c.Color,
	}
	if !c.IsEmpty() {
		cell.Letter = string(c.Letter)
	}
	return cell
}

// Game represents a word-search session
type Game struct {
	ID          string            `json:"id"`
	State       string            `json:"state"`
	Seed        int64             `json:"seed"`
	Size        int               `json:"size"`
	Cells       [][]Cell          `json:"cells"`
	Outstanding []string          `json:"outstanding,omitempty"`
	Found       []model.FoundWord `json:"found"`
	Selection   []model.Position  `json:"selection"`
	ShowWords   bool              `json:"show_words"`
	Elapsed     string            `json:"elapsed"`
	FinalTime   string            `json:"final_time,omitempty"`
	NewBest     bool              `json:"new_best,omitempty"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}

// GameFromModel converts a model.Game. Outstanding words are only included
// while the player has the word list switched on.
func GameFromModel(g *model.Game, elapsed string) Game {
	cells := make([][]Cell, g.Grid.Size)
	for row := range cells {
		cells[row] = make([]Cell, g.Grid.Size)
		for col := range cells[row] {
			cells[row][col] = CellFromModel(&g.Grid.Cells[row][col])
		}
	}

	found := g.Found
	if found == nil {
		found = []model.FoundWord{}
	}

	resp := Game{
		ID:          string(g.ID),
		State:       string(g.State),
		Seed:        g.Seed,
		Size:        g.Grid.Size,
		Cells:       cells,
		Found:       found,
		Selection:   g.Selection.Positions(),
		ShowWords:   g.ShowWords,
		Elapsed:     elapsed,
		FinalTime:   g.FinalTime,
		NewBest:     g.NewBest,
		StartedAt:   g.StartedAt,
		CompletedAt: g.CompletedAt,
	}
	if g.ShowWords {
		resp.Outstanding = g.Outstanding
	}
	return resp
}

// SubmitResponse is the response after submitting the selection
type SubmitResponse struct {
	Found     bool             `json:"found"`
	Word      string           `json:"word"`
	FoundWord *model.FoundWord `json:"found_word,omitempty"`
	Complete  bool             `json:"complete"`
	FinalTime string           `json:"final_time,omitempty"`
	NewBest   bool             `json:"new_best,omitempty"`
	BestTime  string           `json:"best_time,omitempty"`
	Game      Game             `json:"game"`
}

// SubmitResponseFromResult converts a game.SubmitResult
func SubmitResponseFromResult(r *game.SubmitResult, elapsed string) SubmitResponse {
	return SubmitResponse{
		Found:     r.Found,
		Word:      r.Word,
		FoundWord: r.FoundWord,
		Complete:  r.Complete,
		FinalTime: r.FinalTime,
		NewBest:   r.NewBest,
		BestTime:  r.BestTime,
		Game:      GameFromModel(r.Game, elapsed),
	}
}

// GameSummary represents a completed game
type GameSummary struct {
	ID          string    `json:"id"`
	GridSize    int       `json:"grid_size"`
	WordCount   int       `json:"word_count"`
	FinalTime   string    `json:"final_time"`
	NewBest     bool      `json:"new_best"`
	CompletedAt time.Time `json:"completed_at"`
}

// GameSummaryFromModel converts a model.GameSummary
func GameSummaryFromModel(s *model.GameSummary) GameSummary {
	return GameSummary{
		ID:          string(s.ID),
		GridSize:    s.GridSize,
		WordCount:   s.WordCount,
		FinalTime:   s.FinalTime,
		NewBest:     s.NewBest,
		CompletedAt: s.CompletedAt,
	}
}

// Records holds a player's best time, preferences and recent games
type Records struct {
	BestTime  string        `json:"best_time"`
	ShowWords bool          `json:"show_words"`
	History   []GameSummary `json:"history"`
}

// Preferences is the response after updating preferences
type Preferences struct {
	ShowWords bool `json:"show_words"`
}

// Health is the health check body
type Health struct {
	Status string `json:"status"`
	Words  int    `json:"words,omitempty"`
}
