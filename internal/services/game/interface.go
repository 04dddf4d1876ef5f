package game

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/promptgen/internal/services/game Service

import "context"

// Service is one running game
type Service interface {
	// Join adds a registered user to the roster
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// GenerateInitialImage generates the round's seed image
	GenerateInitialImage(ctx context.Context, input *GenerateInitialImageInput) (*GenerateInitialImageOutput, error)

	// SubmitPrompt records a player's prompt for the round
	SubmitPrompt(ctx context.Context, input *SubmitPromptInput) (*SubmitPromptOutput, error)

	// GeneratePlayerImages generates one image per submitted prompt, all or nothing
	GeneratePlayerImages(ctx context.Context, input *GeneratePlayerImagesInput) (*GeneratePlayerImagesOutput, error)

	// CastVote records a vote; rejections are reported in the output
	CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error)

	// TallyVotes resolves the round
	TallyVotes(ctx context.Context, input *TallyVotesInput) (*TallyVotesOutput, error)

	// GetStatus returns the current progress in any phase
	GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error)

	// GetSeedImage returns the round's seed image
	GetSeedImage(ctx context.Context, input *GetSeedImageInput) (*GetSeedImageOutput, error)

	// GetPlayerImages returns the generated images while voting
	GetPlayerImages(ctx context.Context, input *GetPlayerImagesInput) (*GetPlayerImagesOutput, error)

	// GetScoreboard returns the standings in any phase
	GetScoreboard(ctx context.Context, input *GetScoreboardInput) (*GetScoreboardOutput, error)

	// GetFinalResults returns the standings once the game is over
	GetFinalResults(ctx context.Context, input *GetFinalResultsInput) (*GetFinalResultsOutput, error)

	// Wait blocks until background generation has finished
	Wait()
}
