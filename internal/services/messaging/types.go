package messaging

import (
	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/KirkDiggler/promptgen/internal/round"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ErrorType names a category of user-facing error
type ErrorType string

const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeNameTaken          ErrorType = "name_taken"
	ErrorTypeUnknownUser        ErrorType = "unknown_user"
	ErrorTypeRosterFull         ErrorType = "roster_full"
	ErrorTypeAlreadyJoined      ErrorType = "already_joined"
	ErrorTypeEmptyPrompt        ErrorType = "empty_prompt"
	ErrorTypeAlreadySubmitted   ErrorType = "already_submitted"
	ErrorTypeGenerationFailed   ErrorType = "generation_failed"
	ErrorTypeGenerationBusy     ErrorType = "generation_busy"
	ErrorTypeGameInProgress     ErrorType = "game_in_progress"
)

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Seed fixes message selection for tests; zero seeds from the clock
	Seed int64
}

// GetJoinMessageInput contains parameters for getting a join message
type GetJoinMessageInput struct {
	PlayerName      string
	PlayerCount     int
	RequiredPlayers int
}

// GetJoinMessageOutput contains the generated join message
type GetJoinMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetPhaseMessageInput describes a request that arrived in the wrong phase
type GetPhaseMessageInput struct {
	// Current is the phase the game is in
	Current models.GameStatus

	// Required lists the phases the request needs
	Required []models.GameStatus
}

// GetPhaseMessageOutput contains the explanation
type GetPhaseMessageOutput struct {
	Message string
}

// GetVoteRejectionMessageInput contains the rejection reason
type GetVoteRejectionMessageInput struct {
	Reason round.RejectReason
}

// GetVoteRejectionMessageOutput contains the explanation
type GetVoteRejectionMessageOutput struct {
	Message string
}

// GetRoundResultMessageInput describes a tally
type GetRoundResultMessageInput struct {
	// WinnerName is the round winner, empty on a tie
	WinnerName string

	// Votes is the number of votes the winner received
	Votes int

	Tie bool

	// GameOver is true when the tally ended the game
	GameOver bool

	// FinalWinnerName is the overall winner once the game is over
	FinalWinnerName string
}

// GetRoundResultMessageOutput contains the announcement
type GetRoundResultMessageOutput struct {
	Title   string
	Message string
	Tone    MessageTone
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType
}

// GetErrorMessageOutput contains the generated message
type GetErrorMessageOutput struct {
	Message string
}
