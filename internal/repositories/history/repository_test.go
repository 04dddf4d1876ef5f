package history

import (
	"context"
	"fmt"
	"time"

	clockmocks "github.com/KirkDiggler/promptgen/internal/common/clock/mocks"
	uuidmocks "github.com/KirkDiggler/promptgen/internal/common/uuid/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// repositorySuite runs the same behaviour checks against every backend.
type repositorySuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockUUID *uuidmocks.MockUUID
	mockClk  *clockmocks.MockClock
	repo     Repository
	testNow  time.Time
	ticks    int
	ids      int
}

// setupMocks wires a clock that advances one second per call and sequential IDs.
func (s *repositorySuite) setupMocks() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUUID = uuidmocks.NewMockUUID(s.ctrl)
	s.mockClk = clockmocks.NewMockClock(s.ctrl)
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.ticks = 0
	s.ids = 0

	s.mockClk.EXPECT().Now().DoAndReturn(func() time.Time {
		s.ticks++
		return s.testNow.Add(time.Duration(s.ticks) * time.Second)
	}).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.ids++
		return fmt.Sprintf("id-%d", s.ids)
	}).AnyTimes()
}

func (s *repositorySuite) createGame() string {
	out, err := s.repo.CreateGame(context.Background(), &CreateGameInput{
		Players:   3,
		MaxRounds: 5,
	})
	s.Require().NoError(err)
	return out.Game.ID
}

func (s *repositorySuite) TestCreateAndGetGame() {
	ctx := context.Background()

	out, err := s.repo.CreateGame(ctx, &CreateGameInput{Players: 3, MaxRounds: 5})
	s.Require().NoError(err)
	s.Equal("id-1", out.Game.ID)
	s.False(out.Game.Finished())

	got, err := s.repo.GetGame(ctx, &GetGameInput{GameID: "id-1"})
	s.Require().NoError(err)
	s.Equal(3, got.Game.Players)
	s.Equal(5, got.Game.MaxRounds)
	s.True(out.Game.CreatedAt.Equal(got.Game.CreatedAt))
	s.True(got.Game.FinishedAt.IsZero())
	s.Empty(got.Participants)
	s.Empty(got.Prompts)
}

func (s *repositorySuite) TestGetMissingGame() {
	_, err := s.repo.GetGame(context.Background(), &GetGameInput{GameID: "missing"})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *repositorySuite) TestParticipantsInJoinOrder() {
	ctx := context.Background()
	gameID := s.createGame()

	s.Require().NoError(s.repo.AddParticipant(ctx, &AddParticipantInput{GameID: gameID, UserID: "bob"}))
	s.Require().NoError(s.repo.AddParticipant(ctx, &AddParticipantInput{GameID: gameID, UserID: "alice"}))
	s.Require().NoError(s.repo.AddParticipant(ctx, &AddParticipantInput{GameID: gameID, UserID: "bob"}))

	got, err := s.repo.GetGame(ctx, &GetGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Require().Len(got.Participants, 2)
	s.Equal("bob", got.Participants[0].UserID)
	s.Equal("alice", got.Participants[1].UserID)
	s.True(got.Participants[0].JoinedAt.Before(got.Participants[1].JoinedAt))
}

func (s *repositorySuite) TestAddParticipantUnknownGame() {
	err := s.repo.AddParticipant(context.Background(), &AddParticipantInput{GameID: "missing", UserID: "bob"})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *repositorySuite) TestRecordPromptAndAsset() {
	ctx := context.Background()
	gameID := s.createGame()

	out, err := s.repo.RecordPrompt(ctx, &RecordPromptInput{
		GameID: gameID,
		UserID: "alice",
		Round:  1,
		Text:   "a cat in a hat",
	})
	s.Require().NoError(err)
	promptID := out.Prompt.ID
	s.NotEmpty(promptID)
	s.Empty(out.Prompt.AssetRef)

	s.Require().NoError(s.repo.RecordGeneratedAsset(ctx, &RecordGeneratedAssetInput{
		PromptID: promptID,
		AssetRef: "sha256:abc",
	}))

	got, err := s.repo.GetPrompt(ctx, &GetPromptInput{PromptID: promptID})
	s.Require().NoError(err)
	s.Equal(gameID, got.GameID)
	s.Equal("alice", got.UserID)
	s.Equal(1, got.Round)
	s.Equal("a cat in a hat", got.Text)
	s.Equal("sha256:abc", got.AssetRef)
}

func (s *repositorySuite) TestPromptsInSubmissionOrder() {
	ctx := context.Background()
	gameID := s.createGame()

	for _, text := range []string{"first", "second", "third"} {
		_, err := s.repo.RecordPrompt(ctx, &RecordPromptInput{GameID: gameID, UserID: "alice", Text: text})
		s.Require().NoError(err)
	}

	got, err := s.repo.GetGame(ctx, &GetGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Require().Len(got.Prompts, 3)
	s.Equal("first", got.Prompts[0].Text)
	s.Equal("second", got.Prompts[1].Text)
	s.Equal("third", got.Prompts[2].Text)
}

func (s *repositorySuite) TestRecordPromptUnknownGame() {
	_, err := s.repo.RecordPrompt(context.Background(), &RecordPromptInput{GameID: "missing", UserID: "alice", Text: "x"})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *repositorySuite) TestRecordAssetUnknownPrompt() {
	err := s.repo.RecordGeneratedAsset(context.Background(), &RecordGeneratedAssetInput{PromptID: "missing", AssetRef: "x"})
	s.ErrorIs(err, ErrPromptNotFound)

	_, err = s.repo.GetPrompt(context.Background(), &GetPromptInput{PromptID: "missing"})
	s.ErrorIs(err, ErrPromptNotFound)
}

func (s *repositorySuite) TestFinalizeGame() {
	ctx := context.Background()
	gameID := s.createGame()

	s.Require().NoError(s.repo.FinalizeGame(ctx, &FinalizeGameInput{GameID: gameID, WinnerID: "alice"}))

	got, err := s.repo.GetGame(ctx, &GetGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.True(got.Game.Finished())
	s.Equal("alice", got.Game.WinnerID)
	s.True(got.Game.FinishedAt.After(got.Game.CreatedAt))

	err = s.repo.FinalizeGame(ctx, &FinalizeGameInput{GameID: "missing", WinnerID: "alice"})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *repositorySuite) TestListGamesNewestFirst() {
	ctx := context.Background()

	out, err := s.repo.ListGames(ctx, &ListGamesInput{})
	s.Require().NoError(err)
	s.Empty(out.Games)

	first := s.createGame()
	second := s.createGame()
	third := s.createGame()

	out, err = s.repo.ListGames(ctx, &ListGamesInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Games, 3)
	s.Equal(third, out.Games[0].ID)
	s.Equal(second, out.Games[1].ID)
	s.Equal(first, out.Games[2].ID)

	out, err = s.repo.ListGames(ctx, &ListGamesInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Games, 2)
	s.Equal(third, out.Games[0].ID)
}
