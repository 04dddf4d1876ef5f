package game

import "fmt"

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnknownUser        GameError = "unknown user"
	ErrNilInput           GameError = "input cannot be nil"
	ErrGameInProgress     GameError = "current game has not finished"
	ErrNilConfig          GameError = "config cannot be nil"
	ErrNilIdentity        GameError = "identity service cannot be nil"
	ErrNilHistoryRepo     GameError = "history repository cannot be nil"
	ErrNilImageGenerator  GameError = "image generator cannot be nil"
	ErrNilClock           GameError = "clock cannot be nil"
	ErrInvalidConcurrency GameError = "image concurrency cannot be negative"
	ErrInvalidTimeout     GameError = "generation timeout cannot be negative"
)

// GenerationStage names the generation step that failed
type GenerationStage string

const (
	// StageInitialImage is the seed image generation
	StageInitialImage GenerationStage = "initial_image"

	// StagePlayerImage is the generation of one player's image
	StagePlayerImage GenerationStage = "player_image"
)

// GenerationError reports a failed image generation. The game stays in the
// generating phase and the generation can be retried.
type GenerationError struct {
	Stage    GenerationStage
	PlayerID string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.PlayerID != "" {
		return fmt.Sprintf("%s generation failed for player %s: %v", e.Stage, e.PlayerID, e.Err)
	}
	return fmt.Sprintf("%s generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
