package user

import "github.com/KirkDiggler/promptgen/internal/models"

type CreateUserInput struct {
	User *models.User
}

type GetUserInput struct {
	UserID string
}

type GetUserByNameInput struct {
	Name string
}

type ListUsersInput struct {
}

type ListUsersOutput struct {
	Users []*models.User
}
