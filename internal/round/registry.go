package round

import (
	"github.com/KirkDiggler/promptgen/internal/models"
)

// Registry holds the players of one game in join order
type Registry struct {
	capacity int
	players  map[string]*models.Player
	order    []string
}

// NewRegistry creates a registry that accepts at most capacity players
func NewRegistry(capacity int) *Registry {
	return &Registry{
		capacity: capacity,
		players:  make(map[string]*models.Player, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Add registers a new player with a zero score
func (r *Registry) Add(id, name string) (*models.Player, error) {
	if id == "" {
		return nil, ErrInvalidPlayerID
	}
	if _, ok := r.players[id]; ok {
		return nil, ErrPlayerAlreadyJoined
	}
	if r.Full() {
		return nil, ErrRosterFull
	}

	player := &models.Player{
		ID:        id,
		Name:      name,
		JoinOrder: len(r.order),
	}
	r.players[id] = player
	r.order = append(r.order, id)

	return player, nil
}

// Get looks up a player by ID
func (r *Registry) Get(id string) (*models.Player, bool) {
	player, ok := r.players[id]
	return player, ok
}

// Len returns the number of players
func (r *Registry) Len() int {
	return len(r.order)
}

// Capacity returns the configured roster size
func (r *Registry) Capacity() int {
	return r.capacity
}

// Full returns true once the roster reached capacity
func (r *Registry) Full() bool {
	return len(r.order) >= r.capacity
}

// All returns the players in join order
func (r *Registry) All() []*models.Player {
	players := make([]*models.Player, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.players[id])
	}
	return players
}

// AllSubmitted returns true when every player submitted a prompt this round.
// An empty registry never counts as all submitted.
func (r *Registry) AllSubmitted() bool {
	if len(r.order) == 0 {
		return false
	}
	for _, player := range r.players {
		if !player.HasSubmittedPrompt {
			return false
		}
	}
	return true
}

// AllVoted returns true when every player voted this round.
// An empty registry never counts as all voted.
func (r *Registry) AllVoted() bool {
	if len(r.order) == 0 {
		return false
	}
	for _, player := range r.players {
		if !player.HasVoted() {
			return false
		}
	}
	return true
}

// ResetVotes clears every player's vote
func (r *Registry) ResetVotes() {
	for _, player := range r.players {
		player.Vote = ""
	}
}

// ResetRound clears submissions, prompts, images and votes
func (r *Registry) ResetRound() {
	for _, player := range r.players {
		player.HasSubmittedPrompt = false
		player.Prompt = nil
		player.Vote = ""
	}
}
