package models

import (
	"time"
)

// GameStatus represents the current phase of a game
type GameStatus string

const (
	// GameStatusSetup indicates the game is waiting for players to join
	GameStatusSetup GameStatus = "SETUP"

	// GameStatusGeneratingInitialImage indicates the round's seed image is being generated
	GameStatusGeneratingInitialImage GameStatus = "GENERATING_INITIAL_IMAGE"

	// GameStatusPromptingPlayers indicates players are writing their prompts
	GameStatusPromptingPlayers GameStatus = "PROMPTING_PLAYERS"

	// GameStatusGeneratingPlayerImages indicates images are being generated from the players' prompts
	GameStatusGeneratingPlayerImages GameStatus = "GENERATING_PLAYER_IMAGES"

	// GameStatusVoting indicates players are voting on each other's images
	GameStatusVoting GameStatus = "VOTING"

	// GameStatusTallyingVotes indicates every vote is in and the round is ready to be tallied
	GameStatusTallyingVotes GameStatus = "TALLYING_VOTES"

	// GameStatusDisplayingResults indicates the game is over
	GameStatusDisplayingResults GameStatus = "DISPLAYING_RESULTS"
)

// AllGameStatuses lists every phase in forward order
var AllGameStatuses = []GameStatus{
	GameStatusSetup,
	GameStatusGeneratingInitialImage,
	GameStatusPromptingPlayers,
	GameStatusGeneratingPlayerImages,
	GameStatusVoting,
	GameStatusTallyingVotes,
	GameStatusDisplayingResults,
}

func (s GameStatus) String() string {
	return string(s)
}

// IsSetup returns true if the game is accepting players
func (s GameStatus) IsSetup() bool {
	return s == GameStatusSetup
}

// IsGenerating returns true if the game is waiting on image generation
func (s GameStatus) IsGenerating() bool {
	return s == GameStatusGeneratingInitialImage || s == GameStatusGeneratingPlayerImages
}

// IsTerminal returns true if the game is over
func (s GameStatus) IsTerminal() bool {
	return s == GameStatusDisplayingResults
}

// Valid reports whether s is a known phase
func (s GameStatus) Valid() bool {
	for _, status := range AllGameStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// GameRecord is the persisted summary of a game
type GameRecord struct {
	// ID is the unique identifier for the game
	ID string

	// Players is the configured roster size
	Players int

	// MaxRounds is the configured number of rounds
	MaxRounds int

	// WinnerID is the user ID of the overall winner, empty until the game is finalized
	WinnerID string

	// WinnerName is the display name of the winner when the store can resolve it
	WinnerName string

	// CreatedAt is when the game record was allocated
	CreatedAt time.Time

	// FinishedAt is when the game was finalized
	FinishedAt time.Time
}

// Finished reports whether a winner has been recorded
func (g *GameRecord) Finished() bool {
	return g.WinnerID != ""
}
