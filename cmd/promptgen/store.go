package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	historyRepo "github.com/KirkDiggler/promptgen/internal/repositories/history"
	userRepo "github.com/KirkDiggler/promptgen/internal/repositories/user"
	"github.com/KirkDiggler/promptgen/internal/storage/sqlite"
	"github.com/redis/go-redis/v9"
)

// stores are the repositories of the selected backend
type stores struct {
	users   userRepo.Repository
	history historyRepo.Repository
	close   func() error
}

func openStores(ctx context.Context, cfg *Config) (*stores, error) {
	if err := cfg.validateStore(); err != nil {
		return nil, err
	}

	switch cfg.store {
	case storeRedis:
		return openRedisStores(ctx, cfg)
	default:
		return openSQLiteStores(cfg)
	}
}

func openSQLiteStores(cfg *Config) (*stores, error) {
	db, err := sqlite.Open(cfg.dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}

	st, err := sqliteStores(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func sqliteStores(db *sql.DB) (*stores, error) {
	users, err := userRepo.NewSQLite(&userRepo.SQLiteConfig{
		DB: db,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	history, err := historyRepo.NewSQLite(&historyRepo.SQLiteConfig{
		DB: db,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create history repository: %w", err)
	}

	return &stores{
		users:   users,
		history: history,
		close:   db.Close,
	}, nil
}

func openRedisStores(ctx context.Context, cfg *Config) (*stores, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.redisAddr,
		Password: cfg.redisPassword,
		DB:       cfg.redisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	users, err := userRepo.NewRedis(&userRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	history, err := historyRepo.NewRedis(&historyRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to create history repository: %w", err)
	}

	return &stores{
		users:   users,
		history: history,
		close:   redisClient.Close,
	}, nil
}
