package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/promptgen/internal/repositories/history Repository

import (
	"context"
	"errors"

	"github.com/KirkDiggler/promptgen/internal/models"
)

var (
	// ErrGameNotFound is returned when a game record is not found
	ErrGameNotFound = errors.New("game not found")

	// ErrPromptNotFound is returned when a prompt record is not found
	ErrPromptNotFound = errors.New("prompt not found")
)

// Repository records the audit trail of played games
type Repository interface {
	// CreateGame allocates a new game record
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// AddParticipant records a user joining a game
	AddParticipant(ctx context.Context, input *AddParticipantInput) error

	// RecordPrompt stores a submitted prompt and returns its record
	RecordPrompt(ctx context.Context, input *RecordPromptInput) (*RecordPromptOutput, error)

	// RecordGeneratedAsset links a generated image to a prompt
	RecordGeneratedAsset(ctx context.Context, input *RecordGeneratedAssetInput) error

	// FinalizeGame records the winner and finish time of a game
	FinalizeGame(ctx context.Context, input *FinalizeGameInput) error

	// ListGames returns games newest first
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)

	// GetGame returns a game with its participants and prompts
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// GetPrompt returns a single prompt
	GetPrompt(ctx context.Context, input *GetPromptInput) (*models.Prompt, error)
}
