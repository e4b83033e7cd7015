package model

import "time"

// PlayerID uniquely identifies a player
type PlayerID string

// Player is someone solving puzzles. Best times and preferences are keyed
// by their ID.
type Player struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"` // Guests expire; registered players keep their records
	CreatedAt   time.Time `json:"created_at"`
}

// RegisteredPlayer holds login credentials for a non-guest player
type RegisteredPlayer struct {
	PlayerID     PlayerID  `json:"player_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"` // bcrypt
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
