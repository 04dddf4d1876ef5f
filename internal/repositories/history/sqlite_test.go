package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/KirkDiggler/promptgen/internal/storage/sqlite"
	"github.com/stretchr/testify/suite"
)

type SQLiteRepositoryTestSuite struct {
	repositorySuite
	db *sql.DB
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.setupMocks()

	db, err := sqlite.Open(filepath.Join(s.T().TempDir(), "history.db"))
	s.Require().NoError(err)
	s.db = db

	repo, err := NewSQLite(&SQLiteConfig{
		DB:            db,
		UUIDGenerator: s.mockUUID,
		Clock:         s.mockClk,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SQLiteRepositoryTestSuite) TearDownTest() {
	s.db.Close()
	s.ctrl.Finish()
}

func (s *SQLiteRepositoryTestSuite) TestNamesResolvedFromUsers() {
	ctx := context.Background()
	_, err := s.db.Exec(`INSERT INTO users (id, name, password_hash, created_at) VALUES ('alice', 'Alice', 'hash', 0)`)
	s.Require().NoError(err)

	gameID := s.createGame()
	s.Require().NoError(s.repo.AddParticipant(ctx, &AddParticipantInput{GameID: gameID, UserID: "alice"}))
	s.Require().NoError(s.repo.AddParticipant(ctx, &AddParticipantInput{GameID: gameID, UserID: "ghost"}))
	out, err := s.repo.RecordPrompt(ctx, &RecordPromptInput{GameID: gameID, UserID: "alice", Text: "a red fox"})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.FinalizeGame(ctx, &FinalizeGameInput{GameID: gameID, WinnerID: "alice"}))

	got, err := s.repo.GetGame(ctx, &GetGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Equal("Alice", got.Game.WinnerName)
	s.Require().Len(got.Participants, 2)
	s.Equal("Alice", got.Participants[0].UserName)
	s.Empty(got.Participants[1].UserName)

	prompt, err := s.repo.GetPrompt(ctx, &GetPromptInput{PromptID: out.Prompt.ID})
	s.Require().NoError(err)
	s.Equal("Alice", prompt.UserName)
}

func (s *SQLiteRepositoryTestSuite) TestNewSQLiteValidatesConfig() {
	_, err := NewSQLite(nil)
	s.Error(err)

	_, err = NewSQLite(&SQLiteConfig{})
	s.Error(err)
}

func TestSQLiteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}
