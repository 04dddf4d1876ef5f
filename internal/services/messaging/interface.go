package messaging

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/promptgen/internal/services/messaging Service

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJoinMessage returns a message for when a player joins the game
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error)

	// GetPhaseMessage explains what the game is waiting for, used when a
	// request arrives in the wrong phase
	GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error)

	// GetVoteRejectionMessage explains why a vote was not counted
	GetVoteRejectionMessage(ctx context.Context, input *GetVoteRejectionMessageInput) (*GetVoteRejectionMessageOutput, error)

	// GetRoundResultMessage announces the outcome of a tally
	GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
