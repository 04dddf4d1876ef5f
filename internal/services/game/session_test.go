package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/promptgen/internal/common/clock/mocks"
	"github.com/KirkDiggler/promptgen/internal/models"
	historyRepo "github.com/KirkDiggler/promptgen/internal/repositories/history"
	historyMocks "github.com/KirkDiggler/promptgen/internal/repositories/history/mocks"
	"github.com/KirkDiggler/promptgen/internal/round"
	"github.com/KirkDiggler/promptgen/internal/services/identity"
	identityMocks "github.com/KirkDiggler/promptgen/internal/services/identity/mocks"
	imagegenMocks "github.com/KirkDiggler/promptgen/internal/services/imagegen/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type recordingNotifier struct {
	mu      sync.Mutex
	events  []*Event
	onEvent func(*Event)
}

func (n *recordingNotifier) Notify(event *Event) {
	n.mu.Lock()
	n.events = append(n.events, event)
	onEvent := n.onEvent
	n.mu.Unlock()

	if onEvent != nil {
		onEvent(event)
	}
}

func (n *recordingNotifier) types() []EventType {
	n.mu.Lock()
	defer n.mu.Unlock()

	types := make([]EventType, 0, len(n.events))
	for _, event := range n.events {
		types = append(types, event.Type)
	}
	return types
}

type SessionTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockIdentity *identityMocks.MockService
	mockHistory  *historyMocks.MockRepository
	mockImages   *imagegenMocks.MockGenerator
	mockClock    *clockMocks.MockClock
	notifier     *recordingNotifier
	ctx          context.Context

	testTime   time.Time
	testGameID string
	players    []string
}

func (s *SessionTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockIdentity = identityMocks.NewMockService(s.mockCtrl)
	s.mockHistory = historyMocks.NewMockRepository(s.mockCtrl)
	s.mockImages = imagegenMocks.NewMockGenerator(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.notifier = &recordingNotifier{}
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.testGameID = "game-1"
	s.players = []string{"alice", "bob", "carol"}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	for _, id := range append(s.players, "dave") {
		s.mockIdentity.EXPECT().
			LookupUser(gomock.Any(), id).
			Return(&models.User{ID: id, Name: "Player " + id}, nil).
			AnyTimes()
	}
}

func (s *SessionTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) newSession(cfg Config) *session {
	cfg.Identity = s.mockIdentity
	cfg.History = s.mockHistory
	cfg.Images = s.mockImages
	cfg.Clock = s.mockClock
	cfg.Notifier = s.notifier
	if cfg.Players == 0 {
		cfg.Players = len(s.players)
	}

	svc, err := New(&cfg)
	s.Require().NoError(err)
	return svc
}

func (s *SessionTestSuite) expectHistory() {
	s.mockHistory.EXPECT().
		CreateGame(gomock.Any(), gomock.Any()).
		Return(&historyRepo.CreateGameOutput{Game: &models.GameRecord{ID: s.testGameID}}, nil)
	s.mockHistory.EXPECT().AddParticipant(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.mockHistory.EXPECT().
		RecordPrompt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.RecordPromptInput) (*historyRepo.RecordPromptOutput, error) {
			return &historyRepo.RecordPromptOutput{Prompt: &models.Prompt{ID: "prompt-" + input.UserID}}, nil
		}).AnyTimes()
	s.mockHistory.EXPECT().RecordGeneratedAsset(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (s *SessionTestSuite) expectImages() {
	s.mockImages.EXPECT().
		GenerateSeedImage(gomock.Any()).
		Return(&models.SeedImage{Prompt: "a lighthouse", Image: &models.Image{Ref: "sha256:seed"}}, nil).
		AnyTimes()
	s.mockImages.EXPECT().
		GeneratePlayerImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (*models.Image, error) {
			return &models.Image{Ref: "sha256:" + prompt}, nil
		}).AnyTimes()
}

func (s *SessionTestSuite) joinAll(svc *session) {
	for _, id := range s.players {
		_, err := svc.Join(s.ctx, &JoinInput{UserID: id})
		s.Require().NoError(err)
	}
}

func (s *SessionTestSuite) submitAll(svc *session) {
	for _, id := range s.players {
		_, err := svc.SubmitPrompt(s.ctx, &SubmitPromptInput{PlayerID: id, Prompt: id + "'s prompt"})
		s.Require().NoError(err)
	}
}

// toVoting drives a fresh session to the VOTING phase
func (s *SessionTestSuite) toVoting(svc *session) {
	s.joinAll(svc)
	_, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.Require().NoError(err)
	s.submitAll(svc)
	_, err = svc.GeneratePlayerImages(s.ctx, &GeneratePlayerImagesInput{})
	s.Require().NoError(err)
}

func (s *SessionTestSuite) status(svc *session) models.StatusSnapshot {
	out, err := svc.GetStatus(s.ctx, &GetStatusInput{})
	s.Require().NoError(err)
	return out.Status
}

func (s *SessionTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	base := Config{
		Players:  3,
		Identity: s.mockIdentity,
		History:  s.mockHistory,
		Images:   s.mockImages,
		Clock:    s.mockClock,
	}

	cfg := base
	cfg.Identity = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilIdentity)

	cfg = base
	cfg.History = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilHistoryRepo)

	cfg = base
	cfg.Images = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilImageGenerator)

	cfg = base
	cfg.Clock = nil
	_, err = New(&cfg)
	s.ErrorIs(err, ErrNilClock)

	cfg = base
	cfg.Players = 1
	_, err = New(&cfg)
	s.ErrorIs(err, round.ErrTooFewPlayers)

	cfg = base
	cfg.ImageConcurrency = -1
	_, err = New(&cfg)
	s.ErrorIs(err, ErrInvalidConcurrency)

	svc, err := New(&base)
	s.Require().NoError(err)
	s.Equal(round.DefaultMaxRounds, s.status(svc).MaxRounds)
}

func (s *SessionTestSuite) TestFullGame() {
	svc := s.newSession(Config{MaxRounds: 1})

	s.mockHistory.EXPECT().
		CreateGame(gomock.Any(), &historyRepo.CreateGameInput{Players: 3, MaxRounds: 1}).
		Return(&historyRepo.CreateGameOutput{Game: &models.GameRecord{ID: s.testGameID}}, nil)
	for _, id := range s.players {
		s.mockHistory.EXPECT().
			AddParticipant(gomock.Any(), &historyRepo.AddParticipantInput{GameID: s.testGameID, UserID: id}).
			Return(nil)
		s.mockHistory.EXPECT().
			RecordPrompt(gomock.Any(), &historyRepo.RecordPromptInput{GameID: s.testGameID, UserID: id, Round: 0, Text: id + "'s prompt"}).
			Return(&historyRepo.RecordPromptOutput{Prompt: &models.Prompt{ID: "prompt-" + id}}, nil)
		s.mockHistory.EXPECT().
			RecordGeneratedAsset(gomock.Any(), &historyRepo.RecordGeneratedAssetInput{PromptID: "prompt-" + id, AssetRef: "sha256:" + id + "'s prompt"}).
			Return(nil)
	}
	s.mockHistory.EXPECT().
		FinalizeGame(gomock.Any(), &historyRepo.FinalizeGameInput{GameID: s.testGameID, WinnerID: "bob"}).
		Return(nil)
	s.expectImages()

	s.Equal(models.GameStatusSetup, s.status(svc).Status)

	out, err := svc.Join(s.ctx, &JoinInput{UserID: "alice"})
	s.Require().NoError(err)
	s.Equal("alice", out.PlayerID)
	s.Equal("Player alice", out.PlayerName)
	s.False(out.RosterFull)
	s.Equal(s.testGameID, out.Status.GameID)

	_, err = svc.Join(s.ctx, &JoinInput{UserID: "bob"})
	s.Require().NoError(err)
	out, err = svc.Join(s.ctx, &JoinInput{UserID: "carol"})
	s.Require().NoError(err)
	s.True(out.RosterFull)
	s.Equal(models.GameStatusGeneratingInitialImage, out.Status.Status)

	seedOut, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.Require().NoError(err)
	s.Equal("a lighthouse", seedOut.Seed.Prompt)
	s.Equal(models.GameStatusPromptingPlayers, seedOut.Status.Status)

	seedImage, err := svc.GetSeedImage(s.ctx, &GetSeedImageInput{})
	s.Require().NoError(err)
	s.Equal("sha256:seed", seedImage.Seed.Image.Ref)

	s.submitAll(svc)
	s.Equal(models.GameStatusGeneratingPlayerImages, s.status(svc).Status)

	imagesOut, err := svc.GeneratePlayerImages(s.ctx, &GeneratePlayerImagesInput{})
	s.Require().NoError(err)
	s.Len(imagesOut.Images, 3)
	s.Equal(models.GameStatusVoting, imagesOut.Status.Status)

	images, err := svc.GetPlayerImages(s.ctx, &GetPlayerImagesInput{})
	s.Require().NoError(err)
	s.Equal("sha256:bob's prompt", images.Images["bob"].Ref)

	for _, vote := range [][2]string{{"alice", "bob"}, {"bob", "carol"}, {"carol", "bob"}} {
		voteOut, err := svc.CastVote(s.ctx, &CastVoteInput{VoterID: vote[0], TargetID: vote[1]})
		s.Require().NoError(err)
		s.True(voteOut.Accepted)
	}
	s.Equal(models.GameStatusTallyingVotes, s.status(svc).Status)

	tally, err := svc.TallyVotes(s.ctx, &TallyVotesInput{})
	s.Require().NoError(err)
	s.Equal("bob", tally.WinnerID)
	s.False(tally.Tie)
	s.True(tally.GameOver)
	s.Equal("bob", tally.FinalWinnerID)
	s.Equal(map[string]int{"bob": 2, "carol": 1}, tally.ScoreDeltas)
	s.Equal(models.GameStatusDisplayingResults, tally.Status.Status)
	s.Equal(1, tally.Status.CurrentRound)

	results, err := svc.GetFinalResults(s.ctx, &GetFinalResultsInput{})
	s.Require().NoError(err)
	s.Require().Len(results.Entries, 3)
	s.Equal("bob", results.Entries[0].PlayerID)
	s.Equal("carol", results.Entries[1].PlayerID)
	s.Equal("alice", results.Entries[2].PlayerID)

	s.Contains(s.notifier.types(), EventRoundResolved)
}

func (s *SessionTestSuite) TestJoinUnknownUser() {
	svc := s.newSession(Config{})
	s.mockIdentity.EXPECT().LookupUser(gomock.Any(), "mallory").Return(nil, identity.ErrUserNotFound)

	_, err := svc.Join(s.ctx, &JoinInput{UserID: "mallory"})
	s.ErrorIs(err, ErrUnknownUser)
	s.Equal(0, s.status(svc).PlayerCount)
}

func (s *SessionTestSuite) TestJoinValidation() {
	svc := s.newSession(Config{})
	s.expectHistory()

	_, err := svc.Join(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)

	_, err = svc.Join(s.ctx, &JoinInput{})
	s.ErrorIs(err, round.ErrInvalidPlayerID)

	_, err = svc.Join(s.ctx, &JoinInput{UserID: "alice"})
	s.Require().NoError(err)

	_, err = svc.Join(s.ctx, &JoinInput{UserID: "alice"})
	s.ErrorIs(err, round.ErrPlayerAlreadyJoined)

	_, err = svc.Join(s.ctx, &JoinInput{UserID: "bob"})
	s.Require().NoError(err)
	_, err = svc.Join(s.ctx, &JoinInput{UserID: "carol"})
	s.Require().NoError(err)

	_, err = svc.Join(s.ctx, &JoinInput{UserID: "dave"})
	s.ErrorIs(err, round.ErrInvalidState)

	var stateErr *round.InvalidStateError
	s.Require().ErrorAs(err, &stateErr)
	s.Equal(models.GameStatusGeneratingInitialImage, stateErr.Current)
}

func (s *SessionTestSuite) TestPersistenceFailuresDoNotBlockPlay() {
	svc := s.newSession(Config{MaxRounds: 1})
	s.expectImages()

	storeErr := errors.New("disk full")
	gomock.InOrder(
		s.mockHistory.EXPECT().CreateGame(gomock.Any(), gomock.Any()).Return(nil, storeErr),
		s.mockHistory.EXPECT().
			CreateGame(gomock.Any(), gomock.Any()).
			Return(&historyRepo.CreateGameOutput{Game: &models.GameRecord{ID: s.testGameID}}, nil),
	)
	var participants []string
	s.mockHistory.EXPECT().
		AddParticipant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.AddParticipantInput) error {
			s.Equal(s.testGameID, input.GameID)
			participants = append(participants, input.UserID)
			return storeErr
		}).Times(3)
	s.mockHistory.EXPECT().RecordPrompt(gomock.Any(), gomock.Any()).Return(nil, storeErr).Times(3)
	s.mockHistory.EXPECT().
		FinalizeGame(gomock.Any(), &historyRepo.FinalizeGameInput{GameID: s.testGameID, WinnerID: "bob"}).
		Return(storeErr)

	s.toVoting(svc)
	s.Equal(s.testGameID, s.status(svc).GameID)
	s.ElementsMatch(s.players, participants)

	for _, vote := range [][2]string{{"alice", "bob"}, {"bob", "carol"}, {"carol", "bob"}} {
		_, err := svc.CastVote(s.ctx, &CastVoteInput{VoterID: vote[0], TargetID: vote[1]})
		s.Require().NoError(err)
	}

	tally, err := svc.TallyVotes(s.ctx, &TallyVotesInput{})
	s.Require().NoError(err)
	s.True(tally.GameOver)
	s.Equal("bob", tally.FinalWinnerID)

	results, err := svc.GetFinalResults(s.ctx, &GetFinalResultsInput{})
	s.Require().NoError(err)
	s.Equal("bob", results.Entries[0].PlayerID)
}

func (s *SessionTestSuite) TestRecordCreatedAtPromptBackfillsRoster() {
	svc := s.newSession(Config{})
	s.expectImages()

	storeErr := errors.New("connection refused")
	gomock.InOrder(
		s.mockHistory.EXPECT().CreateGame(gomock.Any(), gomock.Any()).Return(nil, storeErr).Times(3),
		s.mockHistory.EXPECT().
			CreateGame(gomock.Any(), gomock.Any()).
			Return(&historyRepo.CreateGameOutput{Game: &models.GameRecord{ID: s.testGameID}}, nil),
	)

	var participants []string
	s.mockHistory.EXPECT().
		AddParticipant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.AddParticipantInput) error {
			s.Equal(s.testGameID, input.GameID)
			participants = append(participants, input.UserID)
			return nil
		}).Times(3)

	var prompts []string
	s.mockHistory.EXPECT().
		RecordPrompt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.RecordPromptInput) (*historyRepo.RecordPromptOutput, error) {
			s.Equal(s.testGameID, input.GameID)
			s.Equal(0, input.Round)
			prompts = append(prompts, input.UserID)
			return &historyRepo.RecordPromptOutput{Prompt: &models.Prompt{ID: "prompt-" + input.UserID}}, nil
		}).Times(3)
	s.mockHistory.EXPECT().RecordGeneratedAsset(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	s.joinAll(svc)
	s.Empty(s.status(svc).GameID)
	s.Empty(participants)

	_, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.Require().NoError(err)
	s.submitAll(svc)
	s.Equal(s.testGameID, s.status(svc).GameID)
	s.ElementsMatch(s.players, participants)
	s.ElementsMatch(s.players, prompts)

	_, err = svc.GeneratePlayerImages(s.ctx, &GeneratePlayerImagesInput{})
	s.Require().NoError(err)
}

func (s *SessionTestSuite) TestRecordCreatedAtGameOverBackfillsEverything() {
	svc := s.newSession(Config{MaxRounds: 1})
	s.expectImages()

	storeErr := errors.New("connection refused")
	gomock.InOrder(
		s.mockHistory.EXPECT().CreateGame(gomock.Any(), gomock.Any()).Return(nil, storeErr).Times(6),
		s.mockHistory.EXPECT().
			CreateGame(gomock.Any(), gomock.Any()).
			Return(&historyRepo.CreateGameOutput{Game: &models.GameRecord{ID: s.testGameID}}, nil),
	)

	var participants []string
	s.mockHistory.EXPECT().
		AddParticipant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.AddParticipantInput) error {
			participants = append(participants, input.UserID)
			return nil
		}).Times(3)
	s.mockHistory.EXPECT().
		RecordPrompt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.RecordPromptInput) (*historyRepo.RecordPromptOutput, error) {
			s.Equal(0, input.Round)
			s.Equal(input.UserID+"'s prompt", input.Text)
			return &historyRepo.RecordPromptOutput{Prompt: &models.Prompt{ID: "prompt-" + input.UserID}}, nil
		}).Times(3)
	var assets []string
	s.mockHistory.EXPECT().
		RecordGeneratedAsset(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.RecordGeneratedAssetInput) error {
			assets = append(assets, input.PromptID)
			return nil
		}).Times(3)
	s.mockHistory.EXPECT().
		FinalizeGame(gomock.Any(), &historyRepo.FinalizeGameInput{GameID: s.testGameID, WinnerID: "bob"}).
		Return(nil)

	s.toVoting(svc)
	s.Empty(s.status(svc).GameID)

	for _, vote := range [][2]string{{"alice", "bob"}, {"bob", "carol"}, {"carol", "bob"}} {
		_, err := svc.CastVote(s.ctx, &CastVoteInput{VoterID: vote[0], TargetID: vote[1]})
		s.Require().NoError(err)
	}

	tally, err := svc.TallyVotes(s.ctx, &TallyVotesInput{})
	s.Require().NoError(err)
	s.True(tally.GameOver)
	s.Equal(s.testGameID, s.status(svc).GameID)
	s.ElementsMatch(s.players, participants)
	s.ElementsMatch([]string{"prompt-alice", "prompt-bob", "prompt-carol"}, assets)
}

func (s *SessionTestSuite) TestInitialImageFailureIsRetryable() {
	svc := s.newSession(Config{})
	s.expectHistory()
	s.joinAll(svc)

	providerErr := errors.New("provider unavailable")
	gomock.InOrder(
		s.mockImages.EXPECT().GenerateSeedImage(gomock.Any()).Return(nil, providerErr),
		s.mockImages.EXPECT().
			GenerateSeedImage(gomock.Any()).
			Return(&models.SeedImage{Prompt: "retry", Image: &models.Image{Ref: "sha256:retry"}}, nil),
	)

	_, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	var genErr *GenerationError
	s.Require().ErrorAs(err, &genErr)
	s.Equal(StageInitialImage, genErr.Stage)
	s.ErrorIs(err, providerErr)
	s.Equal(models.GameStatusGeneratingInitialImage, s.status(svc).Status)
	s.Contains(s.notifier.types(), EventGenerationFailed)

	_, err = svc.GetSeedImage(s.ctx, &GetSeedImageInput{})
	s.ErrorIs(err, round.ErrInvalidState)

	out, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.Require().NoError(err)
	s.Equal("retry", out.Seed.Prompt)
	s.Equal(models.GameStatusPromptingPlayers, out.Status.Status)
}

func (s *SessionTestSuite) TestSeedWithoutImageIsRejected() {
	svc := s.newSession(Config{})
	s.expectHistory()
	s.joinAll(svc)

	s.mockImages.EXPECT().GenerateSeedImage(gomock.Any()).Return(&models.SeedImage{Prompt: "no image"}, nil)

	_, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.ErrorIs(err, round.ErrMissingImage)
	s.Equal(models.GameStatusGeneratingInitialImage, s.status(svc).Status)
}

func (s *SessionTestSuite) TestPlayerImagesAllOrNothing() {
	svc := s.newSession(Config{})
	s.expectHistory()
	s.mockImages.EXPECT().
		GenerateSeedImage(gomock.Any()).
		Return(&models.SeedImage{Prompt: "seed", Image: &models.Image{Ref: "sha256:seed"}}, nil)

	s.joinAll(svc)
	_, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.Require().NoError(err)
	s.submitAll(svc)

	providerErr := errors.New("content policy")
	s.mockImages.EXPECT().
		GeneratePlayerImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (*models.Image, error) {
			if prompt == "bob's prompt" {
				return nil, providerErr
			}
			return &models.Image{Ref: "sha256:" + prompt}, nil
		}).Times(3)

	_, err = svc.GeneratePlayerImages(s.ctx, &GeneratePlayerImagesInput{})
	var genErr *GenerationError
	s.Require().ErrorAs(err, &genErr)
	s.Equal(StagePlayerImage, genErr.Stage)
	s.Equal("bob", genErr.PlayerID)
	s.ErrorIs(err, providerErr)

	s.Equal(models.GameStatusGeneratingPlayerImages, s.status(svc).Status)
	_, err = svc.GetPlayerImages(s.ctx, &GetPlayerImagesInput{})
	s.ErrorIs(err, round.ErrInvalidState)

	s.mockImages.EXPECT().
		GeneratePlayerImage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (*models.Image, error) {
			return &models.Image{Ref: "sha256:" + prompt}, nil
		}).Times(3)

	out, err := svc.GeneratePlayerImages(s.ctx, &GeneratePlayerImagesInput{})
	s.Require().NoError(err)
	s.Len(out.Images, 3)
	s.Equal(models.GameStatusVoting, out.Status.Status)
}

func (s *SessionTestSuite) TestStatusDoesNotWaitOnGeneration() {
	svc := s.newSession(Config{})
	s.expectHistory()
	s.joinAll(svc)

	started := make(chan struct{})
	release := make(chan struct{})
	s.mockImages.EXPECT().
		GenerateSeedImage(gomock.Any()).
		DoAndReturn(func(context.Context) (*models.SeedImage, error) {
			close(started)
			<-release
			return &models.SeedImage{Prompt: "slow", Image: &models.Image{Ref: "sha256:slow"}}, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
		done <- err
	}()
	<-started

	statusDone := make(chan models.StatusSnapshot, 1)
	go func() {
		statusDone <- s.status(svc)
	}()
	select {
	case snapshot := <-statusDone:
		s.Equal(models.GameStatusGeneratingInitialImage, snapshot.Status)
	case <-time.After(time.Second):
		s.Fail("status blocked while the seed image was generating")
	}

	_, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.ErrorIs(err, round.ErrGenerationInProgress)

	_, err = svc.GetScoreboard(s.ctx, &GetScoreboardInput{})
	s.NoError(err)

	close(release)
	s.Require().NoError(<-done)
	s.Equal(models.GameStatusPromptingPlayers, s.status(svc).Status)
}

func (s *SessionTestSuite) TestGenerationTimeout() {
	svc := s.newSession(Config{GenerationTimeout: 20 * time.Millisecond})
	s.expectHistory()
	s.joinAll(svc)

	s.mockImages.EXPECT().
		GenerateSeedImage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*models.SeedImage, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	_, err := svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.ErrorIs(err, context.DeadlineExceeded)
	s.Equal(models.GameStatusGeneratingInitialImage, s.status(svc).Status)
}

func (s *SessionTestSuite) TestCancelledCallerLeavesPhaseUnchanged() {
	svc := s.newSession(Config{})
	s.expectHistory()
	s.joinAll(svc)

	ctx, cancel := context.WithCancel(s.ctx)
	s.mockImages.EXPECT().
		GenerateSeedImage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*models.SeedImage, error) {
			cancel()
			return nil, ctx.Err()
		})

	_, err := svc.GenerateInitialImage(ctx, &GenerateInitialImageInput{})
	s.ErrorIs(err, context.Canceled)
	s.Equal(models.GameStatusGeneratingInitialImage, s.status(svc).Status)
}

func (s *SessionTestSuite) TestAutoAdvance() {
	svc := s.newSession(Config{AutoAdvance: true, MaxRounds: 2})
	s.expectHistory()
	s.expectImages()

	s.joinAll(svc)
	svc.Wait()
	s.Equal(models.GameStatusPromptingPlayers, s.status(svc).Status)

	s.submitAll(svc)
	svc.Wait()
	s.Equal(models.GameStatusVoting, s.status(svc).Status)

	for _, vote := range [][2]string{{"alice", "bob"}, {"bob", "alice"}, {"carol", "alice"}} {
		_, err := svc.CastVote(s.ctx, &CastVoteInput{VoterID: vote[0], TargetID: vote[1]})
		s.Require().NoError(err)
	}
	tally, err := svc.TallyVotes(s.ctx, &TallyVotesInput{})
	s.Require().NoError(err)
	s.Equal("alice", tally.WinnerID)

	svc.Wait()
	snapshot := s.status(svc)
	s.Equal(models.GameStatusPromptingPlayers, snapshot.Status)
	s.Equal(1, snapshot.CurrentRound)
}

func (s *SessionTestSuite) TestAssetRecordedWhenImagesBeatPromptWrite() {
	svc := s.newSession(Config{AutoAdvance: true})
	s.expectImages()

	s.mockHistory.EXPECT().
		CreateGame(gomock.Any(), gomock.Any()).
		Return(&historyRepo.CreateGameOutput{Game: &models.GameRecord{ID: s.testGameID}}, nil)
	s.mockHistory.EXPECT().AddParticipant(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	voting := make(chan struct{})
	var once sync.Once
	s.notifier.onEvent = func(event *Event) {
		if event.Status.Status == models.GameStatusVoting {
			once.Do(func() { close(voting) })
		}
	}

	s.mockHistory.EXPECT().
		RecordPrompt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *historyRepo.RecordPromptInput) (*historyRepo.RecordPromptOutput, error) {
			if input.UserID == "carol" {
				<-voting
			}
			return &historyRepo.RecordPromptOutput{Prompt: &models.Prompt{ID: "prompt-" + input.UserID}}, nil
		}).Times(3)

	for _, id := range s.players {
		s.mockHistory.EXPECT().
			RecordGeneratedAsset(gomock.Any(), &historyRepo.RecordGeneratedAssetInput{PromptID: "prompt-" + id, AssetRef: "sha256:" + id + "'s prompt"}).
			Return(nil).
			Times(1)
	}

	s.joinAll(svc)
	svc.Wait()
	s.submitAll(svc)
	svc.Wait()

	s.Equal(models.GameStatusVoting, s.status(svc).Status)
}

func (s *SessionTestSuite) TestTieReopensVoting() {
	s.players = []string{"alice", "bob", "carol", "dave"}
	svc := s.newSession(Config{})
	s.expectHistory()
	s.expectImages()
	s.toVoting(svc)

	for _, vote := range [][2]string{{"alice", "bob"}, {"bob", "alice"}, {"carol", "dave"}, {"dave", "carol"}} {
		_, err := svc.CastVote(s.ctx, &CastVoteInput{VoterID: vote[0], TargetID: vote[1]})
		s.Require().NoError(err)
	}

	tally, err := svc.TallyVotes(s.ctx, &TallyVotesInput{})
	s.Require().NoError(err)
	s.True(tally.Tie)
	s.Empty(tally.WinnerID)
	s.Empty(tally.ScoreDeltas)
	s.Equal(models.GameStatusVoting, tally.Status.Status)
	s.Equal(0, tally.Status.CurrentRound)

	board, err := svc.GetScoreboard(s.ctx, &GetScoreboardInput{})
	s.Require().NoError(err)
	for _, entry := range board.Entries {
		s.Equal(0, entry.Score)
		s.Equal(1, entry.Rank)
	}

	images, err := svc.GetPlayerImages(s.ctx, &GetPlayerImagesInput{})
	s.Require().NoError(err)
	s.Len(images.Images, 4)
}

func (s *SessionTestSuite) TestVoteRejections() {
	svc := s.newSession(Config{})
	s.expectHistory()
	s.expectImages()

	out, err := svc.CastVote(s.ctx, &CastVoteInput{VoterID: "alice", TargetID: "bob"})
	s.Require().NoError(err)
	s.False(out.Accepted)
	s.Equal(round.RejectWrongPhase, out.Reason)

	s.toVoting(svc)

	cases := []struct {
		voter, target string
		reason        round.RejectReason
	}{
		{"mallory", "bob", round.RejectUnknownVoter},
		{"alice", "mallory", round.RejectUnknownTarget},
		{"alice", "alice", round.RejectSelfVote},
	}
	for _, tc := range cases {
		out, err := svc.CastVote(s.ctx, &CastVoteInput{VoterID: tc.voter, TargetID: tc.target})
		s.Require().NoError(err)
		s.False(out.Accepted)
		s.Equal(tc.reason, out.Reason)
	}

	out, err = svc.CastVote(s.ctx, &CastVoteInput{VoterID: "alice", TargetID: "bob"})
	s.Require().NoError(err)
	s.True(out.Accepted)

	out, err = svc.CastVote(s.ctx, &CastVoteInput{VoterID: "alice", TargetID: "carol"})
	s.Require().NoError(err)
	s.False(out.Accepted)
	s.Equal(round.RejectAlreadyVoted, out.Reason)

	_, err = svc.TallyVotes(s.ctx, &TallyVotesInput{})
	s.ErrorIs(err, round.ErrInvalidState)

	_, err = svc.GetFinalResults(s.ctx, &GetFinalResultsInput{})
	s.ErrorIs(err, round.ErrInvalidState)
}

func (s *SessionTestSuite) TestSubmitPromptRejections() {
	svc := s.newSession(Config{})
	s.expectHistory()
	s.expectImages()

	_, err := svc.SubmitPrompt(s.ctx, &SubmitPromptInput{PlayerID: "alice", Prompt: "early"})
	s.ErrorIs(err, round.ErrInvalidState)

	s.joinAll(svc)
	_, err = svc.GenerateInitialImage(s.ctx, &GenerateInitialImageInput{})
	s.Require().NoError(err)

	_, err = svc.SubmitPrompt(s.ctx, &SubmitPromptInput{PlayerID: "mallory", Prompt: "x"})
	s.ErrorIs(err, round.ErrUnknownPlayer)

	_, err = svc.SubmitPrompt(s.ctx, &SubmitPromptInput{PlayerID: "alice", Prompt: "   "})
	s.ErrorIs(err, round.ErrEmptyPrompt)

	out, err := svc.SubmitPrompt(s.ctx, &SubmitPromptInput{PlayerID: "alice", Prompt: "a fox"})
	s.Require().NoError(err)
	s.False(out.AllSubmitted)

	_, err = svc.SubmitPrompt(s.ctx, &SubmitPromptInput{PlayerID: "alice", Prompt: "a second fox"})
	s.ErrorIs(err, round.ErrPromptAlreadySubmitted)
	s.Equal(models.GameStatusPromptingPlayers, s.status(svc).Status)
}

func (s *SessionTestSuite) TestLobbyReplacesFinishedGame() {
	s.expectHistory()
	s.expectImages()
	s.mockHistory.EXPECT().FinalizeGame(gomock.Any(), gomock.Any()).Return(nil)

	lobby, err := NewLobby(&Config{
		Players:   3,
		MaxRounds: 1,
		Identity:  s.mockIdentity,
		History:   s.mockHistory,
		Images:    s.mockImages,
		Clock:     s.mockClock,
	})
	s.Require().NoError(err)

	first := lobby.Current()
	_, err = lobby.NewGame(s.ctx)
	s.ErrorIs(err, ErrGameInProgress)

	s.toVoting(first.(*session))
	for _, vote := range [][2]string{{"alice", "bob"}, {"bob", "carol"}, {"carol", "bob"}} {
		_, err := first.CastVote(s.ctx, &CastVoteInput{VoterID: vote[0], TargetID: vote[1]})
		s.Require().NoError(err)
	}
	tally, err := first.TallyVotes(s.ctx, &TallyVotesInput{})
	s.Require().NoError(err)
	s.Require().True(tally.GameOver)

	next, err := lobby.NewGame(s.ctx)
	s.Require().NoError(err)
	s.NotSame(first, next)
	s.Same(next, lobby.Current())

	status, err := next.GetStatus(s.ctx, &GetStatusInput{})
	s.Require().NoError(err)
	s.Equal(models.GameStatusSetup, status.Status.Status)
	s.Empty(status.Status.GameID)
	s.Equal(0, status.Status.PlayerCount)
}
