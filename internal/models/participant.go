package models

import (
	"time"
)

// Participant records a user joining a persisted game
type Participant struct {
	// GameID is the ID of the game the user joined
	GameID string

	// UserID is the ID of the user
	UserID string

	// UserName is the display name of the user when the store can resolve it
	UserName string

	// JoinedAt is when the user joined
	JoinedAt time.Time
}
