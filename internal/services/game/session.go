package game

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/promptgen/internal/common/clock"
	"github.com/KirkDiggler/promptgen/internal/models"
	historyRepo "github.com/KirkDiggler/promptgen/internal/repositories/history"
	"github.com/KirkDiggler/promptgen/internal/round"
	"github.com/KirkDiggler/promptgen/internal/services/identity"
	"github.com/KirkDiggler/promptgen/internal/services/imagegen"
	"golang.org/x/sync/errgroup"
)

// session is one game. mu guards machine and gameID and is never held across
// a call to a collaborator.
type session struct {
	mu      sync.Mutex
	machine *round.Machine
	gameID  string

	// recordMu serialises the lazy creation of the history record
	recordMu sync.Mutex

	identity          identity.Service
	history           historyRepo.Repository
	images            imagegen.Generator
	clock             clock.Clock
	notifier          Notifier
	autoAdvance       bool
	generationTimeout time.Duration
	imageConcurrency  int
	players           int
	maxRounds         int

	background sync.WaitGroup
}

// New creates a game in the SETUP phase
func New(cfg *Config) (*session, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Identity == nil {
		return nil, ErrNilIdentity
	}

	if cfg.History == nil {
		return nil, ErrNilHistoryRepo
	}

	if cfg.Images == nil {
		return nil, ErrNilImageGenerator
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.ImageConcurrency < 0 {
		return nil, ErrInvalidConcurrency
	}

	if cfg.GenerationTimeout < 0 {
		return nil, ErrInvalidTimeout
	}

	machine, err := round.New(&round.Config{
		Players:   cfg.Players,
		MaxRounds: cfg.MaxRounds,
	})
	if err != nil {
		return nil, err
	}

	concurrency := cfg.ImageConcurrency
	if concurrency == 0 {
		concurrency = DefaultImageConcurrency
	}

	return &session{
		machine:           machine,
		identity:          cfg.Identity,
		history:           cfg.History,
		images:            cfg.Images,
		clock:             cfg.Clock,
		notifier:          cfg.Notifier,
		autoAdvance:       cfg.AutoAdvance,
		generationTimeout: cfg.GenerationTimeout,
		imageConcurrency:  concurrency,
		players:           cfg.Players,
		maxRounds:         machine.MaxRounds(),
	}, nil
}

// Join adds a registered user to the roster. The first join allocates the
// history record.
func (s *session) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.UserID == "" {
		return nil, round.ErrInvalidPlayerID
	}

	user, err := s.identity.LookupUser(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	// Reject early so a doomed join never allocates a record
	s.mu.Lock()
	err = s.machine.CheckJoin(user.ID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.ensureGameRecord(ctx)

	s.mu.Lock()
	rosterFull, err := s.machine.Join(user.ID, user.Name)
	gameID := s.gameID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	log.Printf("Player %s (%s) joined game %s (%d/%d)", user.Name, user.ID, gameID, snapshot.PlayerCount, snapshot.RequiredPlayers)

	if gameID != "" {
		if err := s.history.AddParticipant(ctx, &historyRepo.AddParticipantInput{
			GameID: gameID,
			UserID: user.ID,
		}); err != nil {
			log.Printf("Failed to record participant %s in game %s: %v", user.ID, gameID, err)
		}
	}

	s.notify(&Event{Type: EventStatus, Status: snapshot})

	if rosterFull && s.autoAdvance {
		s.generateInitialImageInBackground()
	}

	return &JoinOutput{
		PlayerID:   user.ID,
		PlayerName: user.Name,
		RosterFull: rosterFull,
		Status:     snapshot,
	}, nil
}

// GenerateInitialImage reserves the generation, calls the generator without
// holding the lock and commits the seed. On failure the phase is unchanged.
func (s *session) GenerateInitialImage(ctx context.Context, input *GenerateInitialImageInput) (*GenerateInitialImageOutput, error) {
	s.mu.Lock()
	err := s.machine.BeginInitialImage()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	genCtx, cancel := s.generationContext(ctx)
	seed, err := s.images.GenerateSeedImage(genCtx)
	cancel()
	if err == nil && (seed == nil || seed.Image == nil) {
		err = round.ErrMissingImage
	}

	s.mu.Lock()
	if err == nil {
		err = s.machine.CommitInitialImage(*seed)
	}
	if err != nil {
		s.machine.AbortGeneration()
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		genErr := &GenerationError{Stage: StageInitialImage, Err: err}
		log.Printf("Failed to generate initial image: %v", err)
		s.notify(&Event{Type: EventGenerationFailed, Status: snapshot, Error: genErr.Error()})
		return nil, genErr
	}

	log.Printf("Seed image ready for round %d: %q", snapshot.CurrentRound+1, seed.Prompt)
	s.notify(&Event{Type: EventStatus, Status: snapshot})

	return &GenerateInitialImageOutput{
		Seed:   seed,
		Status: snapshot,
	}, nil
}

// SubmitPrompt records a player's prompt, then the prompt audit event
func (s *session) SubmitPrompt(ctx context.Context, input *SubmitPromptInput) (*SubmitPromptOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	allSubmitted, err := s.machine.SubmitPrompt(input.PlayerID, input.Prompt)
	currentRound := s.machine.CurrentRound()
	gameID := s.gameID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.notify(&Event{Type: EventStatus, Status: snapshot})

	if allSubmitted && s.autoAdvance {
		s.generatePlayerImagesInBackground()
	}

	if gameID != "" {
		s.recordPrompt(ctx, gameID, input.PlayerID, currentRound, input.Prompt)
	} else {
		// a record created now back-fills this prompt
		s.ensureGameRecord(ctx)
	}

	return &SubmitPromptOutput{
		AllSubmitted: allSubmitted,
		Status:       snapshot,
	}, nil
}

func (s *session) recordPrompt(ctx context.Context, gameID, playerID string, currentRound int, text string) {
	out, err := s.history.RecordPrompt(ctx, &historyRepo.RecordPromptInput{
		GameID: gameID,
		UserID: playerID,
		Round:  currentRound,
		Text:   text,
	})
	if err != nil {
		log.Printf("Failed to record prompt of player %s in game %s: %v", playerID, gameID, err)
		return
	}

	// Images may already exist when generation beat the write
	s.mu.Lock()
	link, complete := s.machine.AttachPromptID(playerID, currentRound, out.Prompt.ID)
	s.mu.Unlock()

	if complete {
		s.recordAssets(ctx, []round.AssetLink{link})
	}
}

// GeneratePlayerImages generates every submitted prompt concurrently and
// commits only if all of them succeeded
func (s *session) GeneratePlayerImages(ctx context.Context, input *GeneratePlayerImagesInput) (*GeneratePlayerImagesOutput, error) {
	s.mu.Lock()
	jobs, err := s.machine.BeginPlayerImages()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	genCtx, cancel := s.generationContext(ctx)
	images, err := s.generateAll(genCtx, jobs)
	cancel()

	var links []round.AssetLink
	s.mu.Lock()
	if err == nil {
		links, err = s.machine.CommitPlayerImages(images)
		if err != nil {
			err = &GenerationError{Stage: StagePlayerImage, Err: err}
		}
	}
	if err != nil {
		s.machine.AbortGeneration()
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		log.Printf("Failed to generate player images: %v", err)
		s.notify(&Event{Type: EventGenerationFailed, Status: snapshot, Error: err.Error()})
		return nil, err
	}

	s.recordAssets(ctx, links)
	s.notify(&Event{Type: EventStatus, Status: snapshot})

	return &GeneratePlayerImagesOutput{
		Images: images,
		Status: snapshot,
	}, nil
}

func (s *session) generateAll(ctx context.Context, jobs []round.PromptJob) (map[string]*models.Image, error) {
	var (
		mu     sync.Mutex
		images = make(map[string]*models.Image, len(jobs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.imageConcurrency)

	for _, job := range jobs {
		g.Go(func() error {
			image, err := s.images.GeneratePlayerImage(gctx, job.Prompt)
			if err == nil && image == nil {
				err = round.ErrMissingImage
			}
			if err != nil {
				return &GenerationError{Stage: StagePlayerImage, PlayerID: job.PlayerID, Err: err}
			}

			mu.Lock()
			images[job.PlayerID] = image
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// CastVote records a vote. Rejections are not errors.
func (s *session) CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	s.mu.Lock()
	result := s.machine.CastVote(input.VoterID, input.TargetID)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if result.Accepted {
		s.notify(&Event{Type: EventStatus, Status: snapshot})
	}

	return &CastVoteOutput{
		Accepted: result.Accepted,
		Reason:   result.Reason,
		AllVoted: result.AllVoted,
		Status:   snapshot,
	}, nil
}

// TallyVotes resolves the round and finalizes the record when the game ends
func (s *session) TallyVotes(ctx context.Context, input *TallyVotesInput) (*TallyVotesOutput, error) {
	s.mu.Lock()
	result, err := s.machine.Tally()
	gameID := s.gameID
	snapshot := s.snapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	output := &TallyVotesOutput{
		WinnerID:      result.WinnerID,
		Tie:           result.Tie,
		Counts:        result.Counts,
		ScoreDeltas:   result.ScoreDeltas,
		GameOver:      result.GameOver,
		FinalWinnerID: result.FinalWinnerID,
		Status:        snapshot,
	}

	switch {
	case result.Tie:
		log.Printf("Round %d tied at %d votes, voting reopens", snapshot.CurrentRound+1, result.TopVotes)
	case result.GameOver:
		if gameID == "" {
			gameID = s.ensureGameRecord(ctx)
		}
		log.Printf("Game %s over, winner %s", gameID, result.FinalWinnerID)
		if gameID != "" {
			if err := s.history.FinalizeGame(ctx, &historyRepo.FinalizeGameInput{
				GameID:   gameID,
				WinnerID: result.FinalWinnerID,
			}); err != nil {
				log.Printf("Failed to finalize game %s: %v", gameID, err)
			}
		}
	default:
		log.Printf("Round %d won by %s", snapshot.CurrentRound, result.WinnerID)
	}

	s.notify(&Event{Type: EventRoundResolved, Status: snapshot, Tally: output})

	if !result.Tie && !result.GameOver && s.autoAdvance {
		s.generateInitialImageInBackground()
	}

	return output, nil
}

// GetStatus returns a snapshot of the game
func (s *session) GetStatus(ctx context.Context, input *GetStatusInput) (*GetStatusOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &GetStatusOutput{
		Status: s.snapshotLocked(),
	}, nil
}

// GetSeedImage returns the round's seed image
func (s *session) GetSeedImage(ctx context.Context, input *GetSeedImageInput) (*GetSeedImageOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed, err := s.machine.SeedImage()
	if err != nil {
		return nil, err
	}

	return &GetSeedImageOutput{
		Seed: seed,
	}, nil
}

// GetPlayerImages returns the generated images while voting is open
func (s *session) GetPlayerImages(ctx context.Context, input *GetPlayerImagesInput) (*GetPlayerImagesOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	images, err := s.machine.PlayerImages()
	if err != nil {
		return nil, err
	}

	return &GetPlayerImagesOutput{
		Images: images,
	}, nil
}

// GetScoreboard returns the standings with the status they were taken at
func (s *session) GetScoreboard(ctx context.Context, input *GetScoreboardInput) (*GetScoreboardOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &GetScoreboardOutput{
		Entries: s.machine.Standings(),
		Status:  s.snapshotLocked(),
	}, nil
}

// GetFinalResults returns the standings once the game is over
func (s *session) GetFinalResults(ctx context.Context, input *GetFinalResultsInput) (*GetFinalResultsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.machine.FinalResults()
	if err != nil {
		return nil, err
	}

	return &GetFinalResultsOutput{
		Entries: entries,
	}, nil
}

// Wait blocks until background generation has finished
func (s *session) Wait() {
	s.background.Wait()
}

// ensureGameRecord creates the history record once and returns its ID, empty
// when the write failed. Players and prompts that arrived while the record
// was missing are back-filled; later ones record themselves.
func (s *session) ensureGameRecord(ctx context.Context) string {
	s.recordMu.Lock()
	defer s.recordMu.Unlock()

	s.mu.Lock()
	gameID := s.gameID
	s.mu.Unlock()
	if gameID != "" {
		return gameID
	}

	out, err := s.history.CreateGame(ctx, &historyRepo.CreateGameInput{
		Players:   s.players,
		MaxRounds: s.maxRounds,
	})
	if err != nil {
		log.Printf("Failed to create game record: %v", err)
		return ""
	}
	gameID = out.Game.ID

	// set and snapshot together so every join and prompt is recorded exactly once
	s.mu.Lock()
	s.gameID = gameID
	players := s.machine.Players()
	promptRound := s.machine.PromptRound()
	s.mu.Unlock()

	log.Printf("Created game %s for %d players, %d rounds", gameID, s.players, s.maxRounds)

	for _, player := range players {
		if err := s.history.AddParticipant(ctx, &historyRepo.AddParticipantInput{
			GameID: gameID,
			UserID: player.ID,
		}); err != nil {
			log.Printf("Failed to record participant %s in game %s: %v", player.ID, gameID, err)
		}
	}
	for _, player := range players {
		if player.Prompt != nil && player.Prompt.PromptID == "" {
			s.recordPrompt(ctx, gameID, player.ID, promptRound, player.Prompt.Text)
		}
	}

	return gameID
}

func (s *session) recordAssets(ctx context.Context, links []round.AssetLink) {
	for _, link := range links {
		if err := s.history.RecordGeneratedAsset(ctx, &historyRepo.RecordGeneratedAssetInput{
			PromptID: link.PromptID,
			AssetRef: link.AssetRef,
		}); err != nil {
			log.Printf("Failed to record asset for prompt %s: %v", link.PromptID, err)
		}
	}
}

func (s *session) generateInitialImageInBackground() {
	s.runInBackground("initial image", func(ctx context.Context) error {
		_, err := s.GenerateInitialImage(ctx, &GenerateInitialImageInput{})
		return err
	})
}

func (s *session) generatePlayerImagesInBackground() {
	s.runInBackground("player images", func(ctx context.Context) error {
		_, err := s.GeneratePlayerImages(ctx, &GeneratePlayerImagesInput{})
		return err
	})
}

// runInBackground detaches fn from the request that triggered it
func (s *session) runInBackground(name string, fn func(ctx context.Context) error) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		if err := fn(context.Background()); err != nil {
			log.Printf("Background %s generation stopped: %v", name, err)
		}
	}()
}

func (s *session) generationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.generationTimeout > 0 {
		return context.WithTimeout(ctx, s.generationTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *session) snapshotLocked() models.StatusSnapshot {
	snapshot := s.machine.Snapshot()
	snapshot.GameID = s.gameID
	return snapshot
}

func (s *session) notify(event *Event) {
	if s.notifier == nil {
		return
	}
	event.At = s.clock.Now()
	s.notifier.Notify(event)
}
