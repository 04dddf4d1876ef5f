package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/promptgen/internal/common/clock"
	"github.com/KirkDiggler/promptgen/internal/common/uuid"
	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix             = "game:"
	gamesKey                  = "games"
	gameParticipantsKeyPrefix = "game_participants:"
	promptKeyPrefix           = "prompt:"
	gamePromptsKeyPrefix      = "game_prompts:"
)

// Config holds configuration for the Redis history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// UUIDGenerator issues game and prompt IDs, defaults to random UUIDs
	UUIDGenerator uuid.UUID

	// Clock stamps records, defaults to the system clock
	Clock clock.Clock
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client        *redis.Client
	uuidGenerator uuid.UUID
	clock         clock.Clock
}

// NewRedis creates a new Redis-backed history repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	repo := &redisRepository{
		client:        cfg.RedisClient,
		uuidGenerator: cfg.UUIDGenerator,
		clock:         cfg.Clock,
	}
	if repo.uuidGenerator == nil {
		repo.uuidGenerator = uuid.New()
	}
	if repo.clock == nil {
		repo.clock = clock.New()
	}

	return repo, nil
}

// CreateGame stores a new game record and indexes it by creation time
func (r *redisRepository) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	game := &models.GameRecord{
		ID:        r.uuidGenerator.NewUUID(),
		Players:   input.Players,
		MaxRounds: input.MaxRounds,
		CreatedAt: r.clock.Now(),
	}

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, gameKey(game.ID), gameJSON, 0)
	pipe.ZAdd(ctx, gamesKey, redis.Z{
		Score:  float64(game.CreatedAt.UnixMilli()),
		Member: game.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &CreateGameOutput{
		Game: game,
	}, nil
}

// AddParticipant records the join time of a user in a game
func (r *redisRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) error {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return errors.New("input, game ID and user ID cannot be empty")
	}

	if _, err := r.getGame(ctx, input.GameID); err != nil {
		return err
	}

	// NX keeps the first join time if the same user is recorded twice
	err := r.client.ZAddNX(ctx, gameParticipantsKeyPrefix+input.GameID, redis.Z{
		Score:  float64(r.clock.Now().UnixMilli()),
		Member: input.UserID,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	return nil
}

// RecordPrompt stores a prompt and adds it to the game's prompt ledger
func (r *redisRepository) RecordPrompt(ctx context.Context, input *RecordPromptInput) (*RecordPromptOutput, error) {
	if input == nil || input.GameID == "" || input.UserID == "" {
		return nil, errors.New("input, game ID and user ID cannot be empty")
	}

	if _, err := r.getGame(ctx, input.GameID); err != nil {
		return nil, err
	}

	prompt := &models.Prompt{
		ID:        r.uuidGenerator.NewUUID(),
		GameID:    input.GameID,
		UserID:    input.UserID,
		Round:     input.Round,
		Text:      input.Text,
		CreatedAt: r.clock.Now(),
	}

	promptJSON, err := json.Marshal(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prompt: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, promptKey(prompt.ID), promptJSON, 0)
	pipe.ZAdd(ctx, gamePromptsKeyPrefix+prompt.GameID, redis.Z{
		Score:  float64(prompt.CreatedAt.UnixMilli()),
		Member: prompt.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to record prompt: %w", err)
	}

	return &RecordPromptOutput{
		Prompt: prompt,
	}, nil
}

// RecordGeneratedAsset sets the asset reference on a stored prompt
func (r *redisRepository) RecordGeneratedAsset(ctx context.Context, input *RecordGeneratedAssetInput) error {
	if input == nil || input.PromptID == "" {
		return errors.New("input and prompt ID cannot be empty")
	}

	prompt, err := r.GetPrompt(ctx, &GetPromptInput{
		PromptID: input.PromptID,
	})
	if err != nil {
		return err
	}

	prompt.AssetRef = input.AssetRef

	promptJSON, err := json.Marshal(prompt)
	if err != nil {
		return fmt.Errorf("failed to marshal prompt: %w", err)
	}

	if err := r.client.Set(ctx, promptKey(prompt.ID), promptJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to record asset: %w", err)
	}

	return nil
}

// FinalizeGame stores the winner and finish time
func (r *redisRepository) FinalizeGame(ctx context.Context, input *FinalizeGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	game, err := r.getGame(ctx, input.GameID)
	if err != nil {
		return err
	}

	game.WinnerID = input.WinnerID
	game.FinishedAt = r.clock.Now()

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	if err := r.client.Set(ctx, gameKey(game.ID), gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to finalize game: %w", err)
	}

	return nil
}

// ListGames returns games newest first
func (r *redisRepository) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	stop := int64(-1)
	if input != nil && input.Limit > 0 {
		stop = int64(input.Limit) - 1
	}

	gameIDs, err := r.client.ZRevRange(ctx, gamesKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game IDs: %w", err)
	}

	if len(gameIDs) == 0 {
		return &ListGamesOutput{
			Games: []*models.GameRecord{},
		}, nil
	}

	pipe := r.client.Pipeline()
	gameCommands := make([]*redis.StringCmd, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		gameCommands = append(gameCommands, pipe.Get(ctx, gameKey(gameID)))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	games := make([]*models.GameRecord, 0, len(gameIDs))
	for i, cmd := range gameCommands {
		gameJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get game %s: %w", gameIDs[i], err)
		}

		var game models.GameRecord
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameIDs[i], err)
		}
		games = append(games, &game)
	}

	return &ListGamesOutput{
		Games: games,
	}, nil
}

// GetGame returns a game with its participants in join order and prompts in submission order
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	game, err := r.getGame(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	members, err := r.client.ZRangeWithScores(ctx, gameParticipantsKeyPrefix+game.ID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}

	participants := make([]*models.Participant, 0, len(members))
	for _, member := range members {
		userID, ok := member.Member.(string)
		if !ok {
			continue
		}
		participants = append(participants, &models.Participant{
			GameID:   game.ID,
			UserID:   userID,
			JoinedAt: millisToTime(member.Score),
		})
	}

	promptIDs, err := r.client.ZRange(ctx, gamePromptsKeyPrefix+game.ID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get prompt IDs: %w", err)
	}

	prompts := make([]*models.Prompt, 0, len(promptIDs))
	for _, promptID := range promptIDs {
		prompt, err := r.GetPrompt(ctx, &GetPromptInput{PromptID: promptID})
		if err != nil {
			if errors.Is(err, ErrPromptNotFound) {
				continue
			}
			return nil, err
		}
		prompts = append(prompts, prompt)
	}

	return &GetGameOutput{
		Game:         game,
		Participants: participants,
		Prompts:      prompts,
	}, nil
}

// GetPrompt retrieves a prompt by ID
func (r *redisRepository) GetPrompt(ctx context.Context, input *GetPromptInput) (*models.Prompt, error) {
	if input == nil || input.PromptID == "" {
		return nil, errors.New("input and prompt ID cannot be empty")
	}

	promptJSON, err := r.client.Get(ctx, promptKey(input.PromptID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to get prompt: %w", err)
	}

	var prompt models.Prompt
	if err := json.Unmarshal([]byte(promptJSON), &prompt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prompt: %w", err)
	}

	return &prompt, nil
}

func (r *redisRepository) getGame(ctx context.Context, gameID string) (*models.GameRecord, error) {
	gameJSON, err := r.client.Get(ctx, gameKey(gameID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.GameRecord
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func millisToTime(score float64) time.Time {
	return time.UnixMilli(int64(score)).UTC()
}

func gameKey(gameID string) string {
	return gameKeyPrefix + gameID
}

func promptKey(promptID string) string {
	return promptKeyPrefix + promptID
}
