package game

import (
	"time"

	"github.com/KirkDiggler/promptgen/internal/common/clock"
	"github.com/KirkDiggler/promptgen/internal/models"
	historyRepo "github.com/KirkDiggler/promptgen/internal/repositories/history"
	"github.com/KirkDiggler/promptgen/internal/round"
	"github.com/KirkDiggler/promptgen/internal/services/identity"
	"github.com/KirkDiggler/promptgen/internal/services/imagegen"
)

// DefaultImageConcurrency bounds parallel player image requests when
// Config.ImageConcurrency is zero
const DefaultImageConcurrency = 4

// Config holds configuration for a game
type Config struct {
	// Players is the roster size that starts the game
	Players int

	// MaxRounds is the number of rounds, zero selects round.DefaultMaxRounds
	MaxRounds int

	// AutoAdvance starts image generation in the background as soon as a
	// generating phase is entered
	AutoAdvance bool

	// GenerationTimeout bounds each generation step, zero means no bound
	GenerationTimeout time.Duration

	// ImageConcurrency bounds parallel player image requests
	ImageConcurrency int

	// Service dependencies
	Identity identity.Service
	History  historyRepo.Repository
	Images   imagegen.Generator
	Clock    clock.Clock

	// Notifier receives change events, optional
	Notifier Notifier
}

// EventType names a change in the game
type EventType string

const (
	// EventStatus is sent after any accepted change
	EventStatus EventType = "status"

	// EventRoundResolved is sent after a tally, tied or not
	EventRoundResolved EventType = "round_resolved"

	// EventGenerationFailed is sent when a generation step fails
	EventGenerationFailed EventType = "generation_failed"
)

// Event describes a change pushed to a Notifier
type Event struct {
	Type   EventType
	Status models.StatusSnapshot

	// Tally is set on EventRoundResolved
	Tally *TallyVotesOutput

	// Error is set on EventGenerationFailed
	Error string

	At time.Time
}

// Notifier receives game events. Notify must not block.
type Notifier interface {
	Notify(event *Event)
}

// JoinInput contains parameters for joining the game
type JoinInput struct {
	// UserID is the registered user joining; it becomes the player ID
	UserID string
}

// JoinOutput contains the result of joining the game
type JoinOutput struct {
	PlayerID   string
	PlayerName string

	// RosterFull is true when this join started the game
	RosterFull bool

	Status models.StatusSnapshot
}

type GenerateInitialImageInput struct {
}

type GenerateInitialImageOutput struct {
	Seed   *models.SeedImage
	Status models.StatusSnapshot
}

type SubmitPromptInput struct {
	PlayerID string
	Prompt   string
}

type SubmitPromptOutput struct {
	// AllSubmitted is true when this prompt completed the round's prompts
	AllSubmitted bool

	Status models.StatusSnapshot
}

type GeneratePlayerImagesInput struct {
}

type GeneratePlayerImagesOutput struct {
	// Images maps player ID to the generated image
	Images map[string]*models.Image

	Status models.StatusSnapshot
}

type CastVoteInput struct {
	VoterID  string
	TargetID string
}

type CastVoteOutput struct {
	Accepted bool
	Reason   round.RejectReason

	// AllVoted is true when this vote completed the round's voting
	AllVoted bool

	Status models.StatusSnapshot
}

type TallyVotesInput struct {
}

// TallyVotesOutput reports the resolution of a round
type TallyVotesOutput struct {
	// WinnerID is the round winner, empty on a tie
	WinnerID string

	// Tie is true when no single player had the most votes; voting reopens
	Tie bool

	// Counts holds the votes received per player
	Counts map[string]int

	// ScoreDeltas holds the points awarded per player
	ScoreDeltas map[string]int

	// GameOver is true when this tally ended the game
	GameOver bool

	// FinalWinnerID is the overall winner once the game is over
	FinalWinnerID string

	Status models.StatusSnapshot
}

type GetStatusInput struct {
}

type GetStatusOutput struct {
	Status models.StatusSnapshot
}

type GetSeedImageInput struct {
}

type GetSeedImageOutput struct {
	Seed *models.SeedImage
}

type GetPlayerImagesInput struct {
}

type GetPlayerImagesOutput struct {
	Images map[string]*models.Image
}

type GetScoreboardInput struct {
}

type GetScoreboardOutput struct {
	Entries []models.ResultEntry
	Status  models.StatusSnapshot
}

type GetFinalResultsInput struct {
}

type GetFinalResultsOutput struct {
	Entries []models.ResultEntry
}
