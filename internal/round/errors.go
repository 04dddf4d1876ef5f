package round

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/promptgen/internal/models"
)

// Error is a protocol violation raised by the round state machine
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidState           Error = "invalid game state"
	ErrRosterFull             Error = "game is at maximum capacity"
	ErrPlayerAlreadyJoined    Error = "player already joined"
	ErrInvalidPlayerID        Error = "player ID cannot be empty"
	ErrUnknownPlayer          Error = "player not in game"
	ErrEmptyPrompt            Error = "prompt cannot be empty"
	ErrPromptAlreadySubmitted Error = "prompt already submitted this round"
	ErrGenerationInProgress   Error = "image generation already in progress"
	ErrNoGenerationReserved   Error = "no image generation in progress"
	ErrMissingImage           Error = "generated image missing for player"
	ErrNilConfig              Error = "config cannot be nil"
	ErrTooFewPlayers          Error = "a game needs at least three players"
	ErrInvalidMaxRounds       Error = "max rounds must be positive"
)

// InvalidStateError reports an operation attempted in the wrong phase
type InvalidStateError struct {
	// Operation is the name of the rejected operation
	Operation string

	// Current is the phase the game was in
	Current models.GameStatus

	// Required lists the phases the operation is valid in
	Required []models.GameStatus
}

func newInvalidStateError(op string, current models.GameStatus, required ...models.GameStatus) *InvalidStateError {
	return &InvalidStateError{
		Operation: op,
		Current:   current,
		Required:  required,
	}
}

// Error implements the error interface
func (e *InvalidStateError) Error() string {
	required := make([]string, 0, len(e.Required))
	for _, status := range e.Required {
		required = append(required, status.String())
	}
	return fmt.Sprintf("%s: cannot %s in %s (requires %s)",
		ErrInvalidState, e.Operation, e.Current, strings.Join(required, " or "))
}

// Is lets errors.Is match InvalidStateError against ErrInvalidState
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// RejectReason explains why a vote was not accepted
type RejectReason string

const (
	RejectNone          RejectReason = ""
	RejectWrongPhase    RejectReason = "wrong_phase"
	RejectUnknownVoter  RejectReason = "unknown_voter"
	RejectUnknownTarget RejectReason = "unknown_target"
	RejectSelfVote      RejectReason = "self_vote"
	RejectAlreadyVoted  RejectReason = "already_voted"
)
