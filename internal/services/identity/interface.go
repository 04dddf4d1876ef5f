package identity

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/promptgen/internal/services/identity Service

import (
	"context"

	"github.com/KirkDiggler/promptgen/internal/models"
)

// Service manages user accounts
type Service interface {
	// Register creates an account with a hashed password
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Authenticate checks a username and password, returning ErrInvalidCredentials on mismatch
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)

	// UserExists reports whether a user ID is registered
	UserExists(ctx context.Context, userID string) (bool, error)

	// LookupUser returns a registered user by ID
	LookupUser(ctx context.Context, userID string) (*models.User, error)
}
