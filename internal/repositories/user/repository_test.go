package user

import (
	"context"
	"time"

	"github.com/KirkDiggler/promptgen/internal/models"
	"github.com/stretchr/testify/suite"
)

// repositorySuite runs the same behaviour checks against every backend.
type repositorySuite struct {
	suite.Suite
	repo    Repository
	testNow time.Time
}

func (s *repositorySuite) newUser(id, name string, offset time.Duration) *models.User {
	return &models.User{
		ID:           id,
		Name:         name,
		PasswordHash: "$2a$10$" + id,
		CreatedAt:    s.testNow.Add(offset),
	}
}

func (s *repositorySuite) TestCreateAndGetUser() {
	ctx := context.Background()
	s.Require().NoError(s.repo.CreateUser(ctx, &CreateUserInput{
		User: s.newUser("user-1", "Alice", 0),
	}))

	got, err := s.repo.GetUser(ctx, &GetUserInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal("Alice", got.Name)
	s.Equal("$2a$10$user-1", got.PasswordHash)
	s.True(s.testNow.Equal(got.CreatedAt))
}

func (s *repositorySuite) TestGetUserByNameIgnoresCase() {
	ctx := context.Background()
	s.Require().NoError(s.repo.CreateUser(ctx, &CreateUserInput{
		User: s.newUser("user-1", "Alice", 0),
	}))

	got, err := s.repo.GetUserByName(ctx, &GetUserByNameInput{Name: "alice"})
	s.Require().NoError(err)
	s.Equal("user-1", got.ID)
}

func (s *repositorySuite) TestCreateUserRejectsTakenName() {
	ctx := context.Background()
	s.Require().NoError(s.repo.CreateUser(ctx, &CreateUserInput{
		User: s.newUser("user-1", "Alice", 0),
	}))

	err := s.repo.CreateUser(ctx, &CreateUserInput{
		User: s.newUser("user-2", "ALICE", time.Second),
	})
	s.ErrorIs(err, ErrUserExists)

	_, err = s.repo.GetUser(ctx, &GetUserInput{UserID: "user-2"})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *repositorySuite) TestGetMissingUser() {
	ctx := context.Background()

	_, err := s.repo.GetUser(ctx, &GetUserInput{UserID: "nobody"})
	s.ErrorIs(err, ErrUserNotFound)

	_, err = s.repo.GetUserByName(ctx, &GetUserByNameInput{Name: "nobody"})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *repositorySuite) TestListUsersInRegistrationOrder() {
	ctx := context.Background()

	out, err := s.repo.ListUsers(ctx, &ListUsersInput{})
	s.Require().NoError(err)
	s.Empty(out.Users)

	s.Require().NoError(s.repo.CreateUser(ctx, &CreateUserInput{User: s.newUser("user-2", "Bob", time.Minute)}))
	s.Require().NoError(s.repo.CreateUser(ctx, &CreateUserInput{User: s.newUser("user-1", "Alice", 0)}))

	out, err = s.repo.ListUsers(ctx, &ListUsersInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Users, 2)
	s.Equal("Alice", out.Users[0].Name)
	s.Equal("Bob", out.Users[1].Name)
}

func (s *repositorySuite) TestInvalidInput() {
	ctx := context.Background()

	s.Error(s.repo.CreateUser(ctx, nil))
	s.Error(s.repo.CreateUser(ctx, &CreateUserInput{User: &models.User{Name: "NoID"}}))

	_, err := s.repo.GetUser(ctx, &GetUserInput{})
	s.Error(err)
}
