package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for starting a puzzle.
// Omitted fields use the server defaults.
type CreateGameRequest struct {
	Size      int    `json:"size,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
	Seed      *int64 `json:"seed,omitempty"`
}

// PositionRequest is the request body for cell actions
type PositionRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// PreferencesRequest is the request body for updating preferences
type PreferencesRequest struct {
	ShowWords *bool `json:"show_words"`
}
