package web

//go:generate mockgen -package=mocks -destination=mocks/mock_games.go github.com/KirkDiggler/promptgen/internal/handlers/web Games

import (
	"context"
	"time"

	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/KirkDiggler/promptgen/internal/services/game"
	"github.com/KirkDiggler/promptgen/internal/services/identity"
	"github.com/KirkDiggler/promptgen/internal/services/messaging"
)

// Games gives handlers the game being played
type Games interface {
	// Current returns the game being played
	Current() game.Service

	// NewGame replaces a finished game with a fresh one
	NewGame(ctx context.Context) (game.Service, error)
}

// Config holds the settings and dependencies of the server
type Config struct {
	Bind string
	Port int

	// PublicURL is encoded in the join QR code; empty derives it from the request
	PublicURL string

	// AllowOrigin is sent as Access-Control-Allow-Origin when set
	AllowOrigin string

	Version string
	Verbose bool

	// AutoTally tallies the round as soon as the last vote is cast
	AutoTally bool

	// WriteTimeout bounds each response, including synchronous generation
	WriteTimeout time.Duration

	Identity identity.Service
	Games    Games
	Messages messaging.Service
	Hub      *Hub
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type addPlayerRequest struct {
	UserID string `json:"user_id"`
}

type sendPromptRequest struct {
	PlayerID string `json:"player_id"`
	Prompt   string `json:"player_prompt"`
}

type sendVoteRequest struct {
	UserID     string `json:"user_id"`
	VotedForID string `json:"voted_for_id"`
}

type statusBody struct {
	GameID          string `json:"game_id"`
	Status          string `json:"status"`
	PlayerCount     int    `json:"number_of_players"`
	RequiredPlayers int    `json:"required_players"`
	CurrentRound    int    `json:"current_round"`
	MaxRounds       int    `json:"max_rounds"`
}

func newStatusBody(snapshot models.StatusSnapshot) statusBody {
	return statusBody{
		GameID:          snapshot.GameID,
		Status:          snapshot.Status.String(),
		PlayerCount:     snapshot.PlayerCount,
		RequiredPlayers: snapshot.RequiredPlayers,
		CurrentRound:    snapshot.CurrentRound,
		MaxRounds:       snapshot.MaxRounds,
	}
}

type imageBody struct {
	Ref         string `json:"ref"`
	Data        string `json:"data,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

func newImageBody(image *models.Image) *imageBody {
	if image == nil {
		return nil
	}
	return &imageBody{
		Ref:         image.Ref,
		Data:        image.Data,
		ContentType: image.ContentType,
	}
}

type resultBody struct {
	PlayerID   string `json:"id"`
	PlayerName string `json:"name"`
	Score      int    `json:"score"`
	Rank       int    `json:"rank"`
}

func newResultBodies(entries []models.ResultEntry) []resultBody {
	results := make([]resultBody, 0, len(entries))
	for _, entry := range entries {
		results = append(results, resultBody{
			PlayerID:   entry.PlayerID,
			PlayerName: entry.PlayerName,
			Score:      entry.Score,
			Rank:       entry.Rank,
		})
	}
	return results
}

type roundBody struct {
	WinnerID      string         `json:"round_winner,omitempty"`
	Tie           bool           `json:"tie"`
	Counts        map[string]int `json:"counts"`
	ScoreDeltas   map[string]int `json:"score_deltas"`
	GameOver      bool           `json:"game_over"`
	FinalWinnerID string         `json:"final_winner,omitempty"`
	Title         string         `json:"title,omitempty"`
	Message       string         `json:"message,omitempty"`
	FinalResults  []resultBody   `json:"final_results,omitempty"`
}

type eventBody struct {
	Type   string     `json:"type"`
	Status statusBody `json:"status"`
	Round  *roundBody `json:"round,omitempty"`
	Error  string     `json:"error,omitempty"`
	Retry  string     `json:"retry,omitempty"`
	At     time.Time  `json:"at"`
}

// retryHint tells clients how to resume a parked generation
const retryHint = "POST /generate"

func newEventBody(event *game.Event) eventBody {
	body := eventBody{
		Type:   string(event.Type),
		Status: newStatusBody(event.Status),
		Error:  event.Error,
		At:     event.At,
	}
	if event.Type == game.EventGenerationFailed {
		body.Retry = retryHint
	}
	if event.Tally != nil {
		body.Round = &roundBody{
			WinnerID:      event.Tally.WinnerID,
			Tie:           event.Tally.Tie,
			Counts:        event.Tally.Counts,
			ScoreDeltas:   event.Tally.ScoreDeltas,
			GameOver:      event.Tally.GameOver,
			FinalWinnerID: event.Tally.FinalWinnerID,
		}
	}
	return body
}
