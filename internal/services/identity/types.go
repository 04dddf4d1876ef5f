package identity

import (
	"github.com/KirkDiggler/promptgen/internal/common/clock"
	"github.com/KirkDiggler/promptgen/internal/common/uuid"
	"github.com/KirkDiggler/promptgen/internal/models"
	userRepo "github.com/KirkDiggler/promptgen/internal/repositories/user"
)

// Config holds the dependencies of the identity service
type Config struct {
	UserRepo      userRepo.Repository
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// HashCost is the bcrypt cost, zero selects bcrypt.DefaultCost
	HashCost int
}

type RegisterInput struct {
	Username string
	Password string
}

type RegisterOutput struct {
	User *models.User
}

type AuthenticateInput struct {
	Username string
	Password string
}

type AuthenticateOutput struct {
	User *models.User
}
