package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStatePlaying   GameState = "playing"   // Words outstanding, timer running
	GameStateComplete  GameState = "complete"  // All words found, timer stopped
	GameStateAbandoned GameState = "abandoned" // Game was discarded by its owner
)

// Game is one word-search session: the grid, the hidden words and the
// player's progress through them
type Game struct {
	ID        GameID
	PlayerID  PlayerID
	State     GameState
	Seed      int64 // Drives placement, filler letters and found-word colors
	WordCount int   // Number of words requested at creation

	Grid        *Grid
	Placed      []PlacedWord // Every word hidden in the grid
	Outstanding []string     // Placed words not yet found, in placement order
	Found       []FoundWord
	Selection   *Selection
	Dragging    bool // A press gesture is in progress

	ShowWords bool // Whether the outstanding word list is displayed

	StartedAt   time.Time
	CompletedAt *time.Time
	FinalTime   string // MM:SS:hh, set on completion
	NewBest     bool   // Completion improved the player's best time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComplete returns true once no words are outstanding
func (g *Game) IsComplete() bool {
	return len(g.Outstanding) == 0
}

// IsOutstanding returns true if the word still has to be found
func (g *Game) IsOutstanding(word string) bool {
	for _, w := range g.Outstanding {
		if w == word {
			return true
		}
	}
	return false
}

// RemoveOutstanding drops a word from the outstanding list
func (g *Game) RemoveOutstanding(word string) bool {
	for i, w := range g.Outstanding {
		if w == word {
			g.Outstanding = append(g.Outstanding[:i], g.Outstanding[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy that shares no mutable state with g
func (g *Game) Clone() *Game {
	clone := *g
	if g.Grid != nil {
		clone.Grid = g.Grid.Clone()
	}
	if g.Selection != nil {
		clone.Selection = g.Selection.Clone()
	}
	clone.Placed = append([]PlacedWord(nil), g.Placed...)
	clone.Outstanding = append([]string(nil), g.Outstanding...)
	clone.Found = make([]FoundWord, len(g.Found))
	for i, fw := range g.Found {
		clone.Found[i] = fw
		clone.Found[i].Positions = append([]Position(nil), fw.Positions...)
	}
	if g.CompletedAt != nil {
		completedAt := *g.CompletedAt
		clone.CompletedAt = &completedAt
	}
	return &clone
}

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID          GameID
	PlayerID    PlayerID
	GridSize    int
	WordCount   int
	FinalTime   string
	NewBest     bool
	CompletedAt time.Time
}
