package round

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/promptgen/internal/models"
)

const (
	// DefaultMaxRounds is used when Config.MaxRounds is zero
	DefaultMaxRounds = 5

	// MinPlayers is the smallest roster that can produce a round winner;
	// with two players and no self votes every round ties
	MinPlayers = 3
)

// Config holds the fixed parameters of one game
type Config struct {
	// Players is the roster size that starts the game
	Players int

	// MaxRounds is the number of rounds before results are displayed
	MaxRounds int
}

// PromptJob is a player prompt waiting for its image
type PromptJob struct {
	PlayerID string
	Prompt   string
}

// AssetLink pairs a persisted prompt with the asset generated from it
type AssetLink struct {
	PlayerID string
	PromptID string
	AssetRef string
}

// VoteResult reports the outcome of a single vote
type VoteResult struct {
	// Accepted is true when the vote was recorded
	Accepted bool

	// Reason explains a rejected vote
	Reason RejectReason

	// AllVoted is true when this vote completed the round's voting
	AllVoted bool
}

// TallyResult reports the resolution of a round
type TallyResult struct {
	Outcome

	// ScoreDeltas holds the points awarded this round, empty on a tie
	ScoreDeltas map[string]int

	// CompletedRounds is the round counter after the tally
	CompletedRounds int

	// GameOver is true when the tally ended the game
	GameOver bool

	// FinalWinnerID is the overall winner once the game is over
	FinalWinnerID string

	// Status is the phase the machine moved to
	Status models.GameStatus
}

// Machine is the sequencing authority of one game. It validates and performs
// every transition but does no I/O and is not safe for concurrent use.
//
// Image generation is split in three steps so the caller can do the slow work
// without holding its lock: Begin* validates and reserves the transition,
// Commit* applies the generated result, AbortGeneration releases the
// reservation after a failure and leaves the phase untouched.
type Machine struct {
	status       models.GameStatus
	registry     *Registry
	tally        *Tally
	currentRound int
	maxRounds    int
	seed         *models.SeedImage
	generating   bool
}

// New creates a machine in the SETUP phase
func New(cfg *Config) (*Machine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Players < MinPlayers {
		return nil, ErrTooFewPlayers
	}

	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = DefaultMaxRounds
	}
	if maxRounds < 0 {
		return nil, ErrInvalidMaxRounds
	}

	return &Machine{
		status:    models.GameStatusSetup,
		registry:  NewRegistry(cfg.Players),
		tally:     NewTally(),
		maxRounds: maxRounds,
	}, nil
}

// Status returns the current phase
func (m *Machine) Status() models.GameStatus {
	return m.status
}

// CurrentRound returns the number of completed rounds
func (m *Machine) CurrentRound() int {
	return m.currentRound
}

// PromptRound returns the round the prompts currently held belong to. Once
// the game is over they belong to the final round.
func (m *Machine) PromptRound() int {
	if m.status.IsTerminal() && m.currentRound > 0 {
		return m.currentRound - 1
	}
	return m.currentRound
}

// MaxRounds returns the configured number of rounds
func (m *Machine) MaxRounds() int {
	return m.maxRounds
}

// Generating returns true while an image generation is reserved
func (m *Machine) Generating() bool {
	return m.generating
}

func (m *Machine) require(op string, required ...models.GameStatus) error {
	for _, status := range required {
		if m.status == status {
			return nil
		}
	}
	return newInvalidStateError(op, m.status, required...)
}

// CheckJoin validates a join without changing anything
func (m *Machine) CheckJoin(playerID string) error {
	if err := m.require("join", models.GameStatusSetup); err != nil {
		return err
	}
	if playerID == "" {
		return ErrInvalidPlayerID
	}
	if _, ok := m.registry.Get(playerID); ok {
		return ErrPlayerAlreadyJoined
	}
	if m.registry.Full() {
		return ErrRosterFull
	}
	return nil
}

// Join adds a player. When the roster becomes full the machine moves to
// GENERATING_INITIAL_IMAGE and rosterFull is true.
func (m *Machine) Join(playerID, name string) (rosterFull bool, err error) {
	if err := m.CheckJoin(playerID); err != nil {
		return false, err
	}
	if _, err := m.registry.Add(playerID, name); err != nil {
		return false, err
	}

	if m.registry.Full() {
		m.status = models.GameStatusGeneratingInitialImage
		return true, nil
	}
	return false, nil
}

// BeginInitialImage reserves the seed image generation
func (m *Machine) BeginInitialImage() error {
	if err := m.require("generate initial image", models.GameStatusGeneratingInitialImage); err != nil {
		return err
	}
	if m.generating {
		return ErrGenerationInProgress
	}
	m.generating = true
	return nil
}

// CommitInitialImage stores the round's seed and opens prompting
func (m *Machine) CommitInitialImage(seed models.SeedImage) error {
	if err := m.require("commit initial image", models.GameStatusGeneratingInitialImage); err != nil {
		return err
	}
	if !m.generating {
		return ErrNoGenerationReserved
	}
	if seed.Image == nil {
		return ErrMissingImage
	}

	m.seed = &seed
	m.generating = false
	m.status = models.GameStatusPromptingPlayers
	return nil
}

// AbortGeneration releases a reservation taken by BeginInitialImage or
// BeginPlayerImages. The phase is left as is so the generation can be retried.
func (m *Machine) AbortGeneration() {
	m.generating = false
}

// SubmitPrompt records a player's prompt. A player submits once per round.
func (m *Machine) SubmitPrompt(playerID, text string) (allSubmitted bool, err error) {
	if err := m.require("submit prompt", models.GameStatusPromptingPlayers); err != nil {
		return false, err
	}
	player, ok := m.registry.Get(playerID)
	if !ok {
		return false, ErrUnknownPlayer
	}
	if strings.TrimSpace(text) == "" {
		return false, ErrEmptyPrompt
	}
	if player.HasSubmittedPrompt {
		return false, ErrPromptAlreadySubmitted
	}

	player.Prompt = &models.PromptEntry{Text: text}
	player.HasSubmittedPrompt = true

	if m.registry.AllSubmitted() {
		m.status = models.GameStatusGeneratingPlayerImages
		return true, nil
	}
	return false, nil
}

// AttachPromptID links a persisted prompt record to the player's entry for
// round. If the image was already generated the returned link is complete
// and ready to be recorded.
func (m *Machine) AttachPromptID(playerID string, round int, promptID string) (AssetLink, bool) {
	player, ok := m.registry.Get(playerID)
	if !ok || round != m.PromptRound() || player.Prompt == nil || player.Prompt.PromptID != "" {
		return AssetLink{}, false
	}

	player.Prompt.PromptID = promptID

	if player.Prompt.Image == nil {
		return AssetLink{}, false
	}
	return AssetLink{
		PlayerID: playerID,
		PromptID: promptID,
		AssetRef: player.Prompt.Image.Ref,
	}, true
}

// BeginPlayerImages reserves the player image generation and returns the
// prompts to generate, in join order
func (m *Machine) BeginPlayerImages() ([]PromptJob, error) {
	if err := m.require("generate player images", models.GameStatusGeneratingPlayerImages); err != nil {
		return nil, err
	}
	if m.generating {
		return nil, ErrGenerationInProgress
	}

	jobs := make([]PromptJob, 0, m.registry.Len())
	for _, player := range m.registry.All() {
		if player.HasSubmittedPrompt && player.Prompt != nil && player.Prompt.Text != "" {
			jobs = append(jobs, PromptJob{
				PlayerID: player.ID,
				Prompt:   player.Prompt.Text,
			})
		}
	}

	m.generating = true
	return jobs, nil
}

// CommitPlayerImages applies every generated image at once and opens voting.
// Nothing is applied unless every submitted prompt has an image. The returned
// links cover the prompts whose records were already persisted.
func (m *Machine) CommitPlayerImages(images map[string]*models.Image) ([]AssetLink, error) {
	if err := m.require("commit player images", models.GameStatusGeneratingPlayerImages); err != nil {
		return nil, err
	}
	if !m.generating {
		return nil, ErrNoGenerationReserved
	}

	players := m.registry.All()
	for _, player := range players {
		if player.HasSubmittedPrompt && player.Prompt != nil && images[player.ID] == nil {
			return nil, ErrMissingImage
		}
	}

	var links []AssetLink
	for _, player := range players {
		if !player.HasSubmittedPrompt || player.Prompt == nil {
			continue
		}
		player.Prompt.Image = images[player.ID]
		if player.Prompt.PromptID != "" {
			links = append(links, AssetLink{
				PlayerID: player.ID,
				PromptID: player.Prompt.PromptID,
				AssetRef: player.Prompt.Image.Ref,
			})
		}
	}

	m.generating = false
	m.status = models.GameStatusVoting
	return links, nil
}

// CastVote records voterID's vote for targetID. Rejections are reported in
// the result, never as errors.
func (m *Machine) CastVote(voterID, targetID string) VoteResult {
	if m.status != models.GameStatusVoting {
		return VoteResult{Reason: RejectWrongPhase}
	}
	voter, ok := m.registry.Get(voterID)
	if !ok {
		return VoteResult{Reason: RejectUnknownVoter}
	}
	if _, ok := m.registry.Get(targetID); !ok {
		return VoteResult{Reason: RejectUnknownTarget}
	}
	if voterID == targetID {
		return VoteResult{Reason: RejectSelfVote}
	}
	if voter.HasVoted() {
		return VoteResult{Reason: RejectAlreadyVoted}
	}

	voter.Vote = targetID
	m.tally.Add(targetID)

	result := VoteResult{Accepted: true}
	if m.registry.AllVoted() {
		m.status = models.GameStatusTallyingVotes
		result.AllVoted = true
	}
	return result
}

// Tally resolves the round. A clear winner awards every candidate the votes
// they received and advances the round. A tie awards nothing, keeps the round
// counter and sends the players back to VOTING on the same images.
func (m *Machine) Tally() (*TallyResult, error) {
	if err := m.require("tally votes", models.GameStatusTallyingVotes); err != nil {
		return nil, err
	}

	outcome := m.tally.Resolve()
	result := &TallyResult{
		Outcome:     outcome,
		ScoreDeltas: map[string]int{},
	}

	m.tally.Clear()
	m.registry.ResetVotes()

	if outcome.Tie {
		m.status = models.GameStatusVoting
		result.CompletedRounds = m.currentRound
		result.Status = m.status
		return result, nil
	}

	for playerID, votes := range outcome.Counts {
		if player, ok := m.registry.Get(playerID); ok {
			player.Score += votes
			result.ScoreDeltas[playerID] = votes
		}
	}

	m.currentRound++
	m.advance()

	result.CompletedRounds = m.currentRound
	result.Status = m.status
	if m.status.IsTerminal() {
		result.GameOver = true
		result.FinalWinnerID = m.winnerID()
	}
	return result, nil
}

// advance applies the round-reset rule after a resolved tally
func (m *Machine) advance() {
	if m.currentRound >= m.maxRounds {
		m.status = models.GameStatusDisplayingResults
		return
	}

	m.registry.ResetRound()
	m.seed = nil
	m.status = models.GameStatusGeneratingInitialImage
}

func (m *Machine) winnerID() string {
	standings := m.Standings()
	if len(standings) == 0 {
		return ""
	}
	return standings[0].PlayerID
}

// Snapshot returns the progress of the game
func (m *Machine) Snapshot() models.StatusSnapshot {
	return models.StatusSnapshot{
		Status:          m.status,
		PlayerCount:     m.registry.Len(),
		RequiredPlayers: m.registry.Capacity(),
		CurrentRound:    m.currentRound,
		MaxRounds:       m.maxRounds,
	}
}

// Standings returns players by score, highest first. Equal scores keep join
// order and share a rank.
func (m *Machine) Standings() []models.ResultEntry {
	players := m.registry.All()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	entries := make([]models.ResultEntry, 0, len(players))
	for i, player := range players {
		rank := i + 1
		if i > 0 && player.Score == entries[i-1].Score {
			rank = entries[i-1].Rank
		}
		entries = append(entries, models.ResultEntry{
			PlayerID:   player.ID,
			PlayerName: player.Name,
			Score:      player.Score,
			Rank:       rank,
		})
	}
	return entries
}

// FinalResults returns the standings once the game is over
func (m *Machine) FinalResults() ([]models.ResultEntry, error) {
	if err := m.require("get final results", models.GameStatusDisplayingResults); err != nil {
		return nil, err
	}
	return m.Standings(), nil
}

// SeedImage returns the round's seed while one is set
func (m *Machine) SeedImage() (*models.SeedImage, error) {
	if m.seed == nil {
		return nil, newInvalidStateError("get seed image", m.status, models.GameStatusPromptingPlayers)
	}
	seed := *m.seed
	return &seed, nil
}

// PlayerImages returns the generated image per player while voting is open
func (m *Machine) PlayerImages() (map[string]*models.Image, error) {
	if err := m.require("get player images", models.GameStatusVoting, models.GameStatusTallyingVotes); err != nil {
		return nil, err
	}

	images := make(map[string]*models.Image, m.registry.Len())
	for _, player := range m.registry.All() {
		if player.Prompt != nil && player.Prompt.Image != nil {
			image := *player.Prompt.Image
			images[player.ID] = &image
		}
	}
	return images, nil
}

// Player returns a copy of a player
func (m *Machine) Player(playerID string) (models.Player, bool) {
	player, ok := m.registry.Get(playerID)
	if !ok {
		return models.Player{}, false
	}
	return copyPlayer(player), true
}

// Players returns copies of every player in join order
func (m *Machine) Players() []models.Player {
	all := m.registry.All()
	players := make([]models.Player, 0, len(all))
	for _, player := range all {
		players = append(players, copyPlayer(player))
	}
	return players
}

func copyPlayer(player *models.Player) models.Player {
	cp := *player
	if player.Prompt != nil {
		entry := *player.Prompt
		if entry.Image != nil {
			image := *entry.Image
			entry.Image = &image
		}
		cp.Prompt = &entry
	}
	return cp
}
