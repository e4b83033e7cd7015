package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Grid errors
	ErrOutOfBounds    = errors.New("position out of bounds")
	ErrLetterConflict = errors.New("cell already holds a different letter")

	// Game errors
	ErrGameNotFound     = errors.New("game not found")
	ErrNotGameOwner     = errors.New("player does not own this game")
	ErrGameComplete     = errors.New("game is already complete")
	ErrInvalidGridSize  = errors.New("invalid grid size")
	ErrInvalidWordCount = errors.New("invalid word count")

	// Word list errors
	ErrWordListNotLoaded = errors.New("word list not loaded")
	ErrEmptyWordList     = errors.New("no usable words in word list")

	// Record errors
	ErrRecordNotFound = errors.New("record not found")
)
