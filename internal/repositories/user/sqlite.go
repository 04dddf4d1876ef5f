package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/KirkDiggler/promptgen/internal/storage/sqlite"
)

// SQLiteConfig holds configuration for the SQLite user repository
type SQLiteConfig struct {
	// DB is an open database with the promptgen schema applied
	DB *sql.DB
}

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed user repository
func NewSQLite(cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("sql db cannot be nil")
	}

	return &sqliteRepository{
		db: cfg.DB,
	}, nil
}

// CreateUser inserts a user row
func (r *sqliteRepository) CreateUser(ctx context.Context, input *CreateUserInput) error {
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

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, u.PasswordHash, sqlite.ToMillis(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUser retrieves a user row by ID
func (r *sqliteRepository) GetUser(ctx context.Context, input *GetUserInput) (*models.User, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_at FROM users WHERE id = ?`,
		input.UserID,
	)
	return scanUser(row)
}

// GetUserByName retrieves a user row by name; the column collates without case
func (r *sqliteRepository) GetUserByName(ctx context.Context, input *GetUserByNameInput) (*models.User, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_at FROM users WHERE name = ?`,
		input.Name,
	)
	return scanUser(row)
}

// ListUsers returns every user ordered by registration time
func (r *sqliteRepository) ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, password_hash, created_at FROM users ORDER BY created_at, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return &ListUsersOutput{
		Users: users,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u         models.User
		createdAt int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.CreatedAt = sqlite.FromMillis(createdAt)
	return &u, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
