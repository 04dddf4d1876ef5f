package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	userKeyPrefix     = "user:"
	userNameKeyPrefix = "user_name:"
	usersKey          = "users"
)

// Config holds configuration for the Redis user repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed user repository
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateUser persists a user to Redis
func (r *redisRepository) CreateUser(ctx context.Context, input *CreateUserInput) error {
	if input == nil || input.User == nil {
		return errors.New("input and user cannot be nil")
	}

	u := input.User
	if u.ID == "" {
		return errors.New("user ID cannot be empty")
	}
	if u.Name == "" {
		return errors.New("user name cannot be empty")
	}

	userJSON, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	// Claim the name first so two registrations cannot both win
	nameKey := userNameKey(u.Name)
	claimed, err := r.client.SetNX(ctx, nameKey, u.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim user name: %w", err)
	}
	if !claimed {
		return ErrUserExists
	}

	pipe := r.client.Pipeline()

	userKey := fmt.Sprintf("%s%s", userKeyPrefix, u.ID)
	pipe.Set(ctx, userKey, userJSON, 0)
	pipe.ZAdd(ctx, usersKey, redis.Z{
		Score:  float64(u.CreatedAt.UnixMilli()),
		Member: u.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		r.client.Del(ctx, nameKey)
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID from Redis
func (r *redisRepository) GetUser(ctx context.Context, input *GetUserInput) (*models.User, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	userKey := fmt.Sprintf("%s%s", userKeyPrefix, input.UserID)
	userJSON, err := r.client.Get(ctx, userKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var u models.User
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &u, nil
}

// GetUserByName retrieves a user by name from Redis
func (r *redisRepository) GetUserByName(ctx context.Context, input *GetUserByNameInput) (*models.User, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	userID, err := r.client.Get(ctx, userNameKey(input.Name)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user ID for name: %w", err)
	}

	return r.GetUser(ctx, &GetUserInput{
		UserID: userID,
	})
}

// ListUsers retrieves all users from Redis
func (r *redisRepository) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	userIDs, err := r.client.ZRange(ctx, usersKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get user IDs: %w", err)
	}

	if len(userIDs) == 0 {
		return &ListUsersOutput{
			Users: []*models.User{},
		}, nil
	}

	pipe := r.client.Pipeline()
	userCommands := make([]*redis.StringCmd, 0, len(userIDs))
	for _, userID := range userIDs {
		userCommands = append(userCommands, pipe.Get(ctx, fmt.Sprintf("%s%s", userKeyPrefix, userID)))
	}

	// redis.Nil on a single key is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	users := make([]*models.User, 0, len(userIDs))
	for i, cmd := range userCommands {
		userJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get user %s: %w", userIDs[i], err)
		}

		var u models.User
		if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user %s: %w", userIDs[i], err)
		}

		users = append(users, &u)
	}

	return &ListUsersOutput{
		Users: users,
	}, nil
}

func userNameKey(name string) string {
	return userNameKeyPrefix + strings.ToLower(name)
}
