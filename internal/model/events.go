package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated      EventType = "game_created"
	EventSelectionChanged EventType = "selection_changed"
	EventWordFound        EventType = "word_found"
	EventGameComplete     EventType = "game_complete"
	EventGameReset        EventType = "game_reset"
	EventGameAbandoned    EventType = "game_abandoned"
	EventWordsToggled     EventType = "words_toggled"
	EventTimer            EventType = "timer"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	PlayerID  PlayerID  `json:"player_id"`
	Payload   any       `json:"payload,omitempty"` // Type-specific data
}

// SelectionChangedPayload contains data for selection changed events
type SelectionChangedPayload struct {
	Selected []Position `json:"selected"`
}

// WordFoundPayload contains data for word found events
type WordFoundPayload struct {
	Word        FoundWord `json:"word"`
	Outstanding int       `json:"outstanding"`
}

// GameCompletePayload contains data for game complete events
type GameCompletePayload struct {
	FinalTime string `json:"final_time"`
	NewBest   bool   `json:"new_best"`
	BestTime  string `json:"best_time,omitempty"`
}

// WordsToggledPayload contains data for words toggled events
type WordsToggledPayload struct {
	ShowWords bool `json:"show_words"`
}

// TimerPayload contains data for timer events
type TimerPayload struct {
	Elapsed string `json:"elapsed"`
}
