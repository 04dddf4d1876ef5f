package models

import (
	"time"
)

// Prompt is the persisted record of a prompt submitted in a game
type Prompt struct {
	// ID is the unique identifier for the prompt
	ID string

	// GameID is the ID of the game the prompt was written in
	GameID string

	// UserID is the ID of the author
	UserID string

	// UserName is the display name of the author when the store can resolve it
	UserName string

	// Round is the zero-based round the prompt belongs to
	Round int

	// Text is the prompt as submitted
	Text string

	// AssetRef references the image generated from the prompt, empty until recorded
	AssetRef string

	// CreatedAt is when the prompt was recorded
	CreatedAt time.Time
}
