package user

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/promptgen/internal/repositories/user Repository

import (
	"context"
	"errors"

	"github.com/KirkDiggler/promptgen/internal/models"
)

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when the name is already registered
	ErrUserExists = errors.New("user already exists")
)

// Repository defines the interface for user account persistence
type Repository interface {
	// CreateUser persists a new user, failing with ErrUserExists on a taken name
	CreateUser(ctx context.Context, input *CreateUserInput) error

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, input *GetUserInput) (*models.User, error)

	// GetUserByName retrieves a user by name, ignoring case
	GetUserByName(ctx context.Context, input *GetUserByNameInput) (*models.User, error)

	// ListUsers returns every user ordered by registration time
	ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error)
}
