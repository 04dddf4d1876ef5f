package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/KirkDiggler/promptgen/internal/round"
)

// service implements the Service interface
type service struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// phaseDescriptions says what a player sees in each phase
var phaseDescriptions = map[models.GameStatus]string{
	models.GameStatusSetup:                  "waiting for players to join",
	models.GameStatusGeneratingInitialImage: "painting the seed image",
	models.GameStatusPromptingPlayers:       "waiting for everyone's prompts",
	models.GameStatusGeneratingPlayerImages: "painting your prompts",
	models.GameStatusVoting:                 "voting",
	models.GameStatusTallyingVotes:          "counting the votes",
	models.GameStatusDisplayingResults:      "over",
}

// GetJoinMessage returns a message for when a player joins the game
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	remaining := input.RequiredPlayers - input.PlayerCount
	if remaining <= 0 {
		return &GetJoinMessageOutput{
			Message: s.pick(
				fmt.Sprintf("%s completes the lineup. Warming up the paintbrushes!", input.PlayerName),
				fmt.Sprintf("That's everyone! %s rounds out the gallery.", input.PlayerName),
				fmt.Sprintf("%s is in and the canvas is ready. Let's make some art.", input.PlayerName),
			),
			Tone: ToneCelebration,
		}, nil
	}

	waiting := fmt.Sprintf("%d more player", remaining)
	if remaining > 1 {
		waiting += "s"
	}

	return &GetJoinMessageOutput{
		Message: s.pick(
			fmt.Sprintf("Welcome, %s! Waiting on %s.", input.PlayerName, waiting),
			fmt.Sprintf("%s grabbed an easel. %s to go.", input.PlayerName, waiting),
			fmt.Sprintf("A new artist appears: %s. Still need %s.", input.PlayerName, waiting),
		),
		Tone: ToneFunny,
	}, nil
}

// GetPhaseMessage explains what the game is waiting for
func (s *service) GetPhaseMessage(ctx context.Context, input *GetPhaseMessageInput) (*GetPhaseMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	current := describePhase(input.Current)
	if len(input.Required) == 0 {
		return &GetPhaseMessageOutput{
			Message: fmt.Sprintf("Not ready yet: the game is %s.", current),
		}, nil
	}

	required := make([]string, 0, len(input.Required))
	for _, status := range input.Required {
		required = append(required, describePhase(status))
	}

	return &GetPhaseMessageOutput{
		Message: fmt.Sprintf("Not ready yet: the game is %s, this needs it to be %s.", current, strings.Join(required, " or ")),
	}, nil
}

// GetVoteRejectionMessage explains why a vote was not counted
func (s *service) GetVoteRejectionMessage(ctx context.Context, input *GetVoteRejectionMessageInput) (*GetVoteRejectionMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.Reason {
	case round.RejectWrongPhase:
		message = "Voting isn't open right now."
	case round.RejectUnknownVoter:
		message = "Only players in this game can vote."
	case round.RejectUnknownTarget:
		message = "That image doesn't belong to anyone in this game."
	case round.RejectSelfVote:
		message = s.pick(
			"Nice try. You can't vote for your own masterpiece.",
			"Self-love is great, self-voting is not allowed.",
			"Your own image is off the ballot.",
		)
	case round.RejectAlreadyVoted:
		message = s.pick(
			"You already voted this round.",
			"One vote per artist, and yours is in.",
		)
	default:
		message = "Your vote was counted."
	}

	return &GetVoteRejectionMessageOutput{
		Message: message,
	}, nil
}

// GetRoundResultMessage announces the outcome of a tally
func (s *service) GetRoundResultMessage(ctx context.Context, input *GetRoundResultMessageInput) (*GetRoundResultMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	switch {
	case input.Tie:
		return &GetRoundResultMessageOutput{
			Title: "It's a tie!",
			Message: s.pick(
				"The judges are split. Look again and vote one more time.",
				"Dead heat! Same images, fresh ballots.",
				"Nobody pulled ahead. Time for a re-vote.",
			),
			Tone: ToneNeutral,
		}, nil
	case input.GameOver:
		return &GetRoundResultMessageOutput{
			Title: "Game over",
			Message: fmt.Sprintf("%s takes the final round with %s, and %s wins the game!",
				input.WinnerName, pluralVotes(input.Votes), input.FinalWinnerName),
			Tone: ToneCelebration,
		}, nil
	default:
		return &GetRoundResultMessageOutput{
			Title: "Round winner",
			Message: s.pick(
				fmt.Sprintf("%s wins the round with %s!", input.WinnerName, pluralVotes(input.Votes)),
				fmt.Sprintf("The gallery has spoken: %s, %s.", input.WinnerName, pluralVotes(input.Votes)),
				fmt.Sprintf("%s paints the town with %s.", input.WinnerName, pluralVotes(input.Votes)),
			),
			Tone: ToneCelebration,
		}, nil
	}
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.ErrorType {
	case ErrorTypeInvalidCredentials:
		message = "That username and password don't match."
	case ErrorTypeNameTaken:
		message = "That username is taken. Pick another one."
	case ErrorTypeUnknownUser:
		message = "We don't know that user. Register first."
	case ErrorTypeRosterFull:
		message = s.pick(
			"The game is full. Catch the next one!",
			"No more easels left in this game.",
		)
	case ErrorTypeAlreadyJoined:
		message = "You're already in this game."
	case ErrorTypeEmptyPrompt:
		message = "Write something first. Even one word counts."
	case ErrorTypeAlreadySubmitted:
		message = "Your prompt is already in for this round."
	case ErrorTypeGenerationFailed:
		message = s.pick(
			"The painter spilled the paint. Try generating again.",
			"Image generation failed. Give it another go.",
		)
	case ErrorTypeGenerationBusy:
		message = "Images are already being painted. Hang tight."
	case ErrorTypeGameInProgress:
		message = "The current game isn't over yet."
	default:
		message = "Something went wrong. Try again."
	}

	return &GetErrorMessageOutput{
		Message: message,
	}, nil
}

func (s *service) pick(messages ...string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return messages[s.rand.Intn(len(messages))]
}

func describePhase(status models.GameStatus) string {
	if description, ok := phaseDescriptions[status]; ok {
		return description
	}
	return strings.ToLower(status.String())
}

func pluralVotes(votes int) string {
	if votes == 1 {
		return "1 vote"
	}
	return fmt.Sprintf("%d votes", votes)
}
