package history

import "github.com/KirkDiggler/promptgen/internal/models"

type CreateGameInput struct {
	Players   int
	MaxRounds int
}

type CreateGameOutput struct {
	Game *models.GameRecord
}

type AddParticipantInput struct {
	GameID string
	UserID string
}

type RecordPromptInput struct {
	GameID string
	UserID string
	Round  int
	Text   string
}

type RecordPromptOutput struct {
	Prompt *models.Prompt
}

type RecordGeneratedAssetInput struct {
	PromptID string
	AssetRef string
}

type FinalizeGameInput struct {
	GameID   string
	WinnerID string
}

type ListGamesInput struct {
	// Limit caps the number of games returned; zero means no limit
	Limit int
}

type ListGamesOutput struct {
	Games []*models.GameRecord
}

type GetGameInput struct {
	GameID string
}

type GetGameOutput struct {
	Game         *models.GameRecord
	Participants []*models.Participant
	Prompts      []*models.Prompt
}

type GetPromptInput struct {
	PromptID string
}
