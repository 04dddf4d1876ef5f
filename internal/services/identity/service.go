package identity

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/KirkDiggler/promptgen/internal/common/clock"
	"github.com/KirkDiggler/promptgen/internal/common/uuid"
	"github.com/KirkDiggler/promptgen/internal/models"
	userRepo "github.com/KirkDiggler/promptgen/internal/repositories/user"
	"golang.org/x/crypto/bcrypt"
)

const maxNameLength = 32

type service struct {
	userRepo      userRepo.Repository
	clock         clock.Clock
	uuidGenerator uuid.UUID
	hashCost      int
}

// New creates a new identity service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.UserRepo == nil {
		return nil, ErrNilUserRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	hashCost := cfg.HashCost
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}

	return &service{
		userRepo:      cfg.UserRepo,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		hashCost:      hashCost,
	}, nil
}

// Register validates the name, hashes the password and stores the user
func (s *service) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if input == nil || input.Username == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	name := strings.TrimSpace(input.Username)
	if !validName(name) {
		return nil, ErrInvalidName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           s.uuidGenerator.NewUUID(),
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	err = s.userRepo.CreateUser(ctx, &userRepo.CreateUserInput{
		User: u,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserExists) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("Registered user %s (%s)", u.Name, u.ID)

	return &RegisterOutput{
		User: u,
	}, nil
}

// Authenticate compares the password against the stored hash
func (s *service) Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error) {
	if input == nil || input.Username == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	u, err := s.userRepo.GetUserByName(ctx, &userRepo.GetUserByNameInput{
		Name: strings.TrimSpace(input.Username),
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthenticateOutput{
		User: u,
	}, nil
}

// UserExists reports whether userID is registered
func (s *service) UserExists(ctx context.Context, userID string) (bool, error) {
	_, err := s.LookupUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// LookupUser returns the user with the given ID
func (s *service) LookupUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}

	u, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func validName(name string) bool {
	if name == "" || len(name) > maxNameLength {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
