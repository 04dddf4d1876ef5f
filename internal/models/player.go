package models

// Player represents a participant in the running game
type Player struct {
	// ID is the user ID the player joined with
	ID string

	// Name is the display name of the player
	Name string

	// Score is the player's cumulative vote count
	Score int

	// Prompt is the player's entry for the current round, nil until submitted
	Prompt *PromptEntry

	// HasSubmittedPrompt is reset every round
	HasSubmittedPrompt bool

	// Vote is the ID of the player this player voted for this round, empty when none
	Vote string

	// JoinOrder is the zero-based position in which the player joined
	JoinOrder int
}

// HasVoted returns true if the player cast a vote this round
func (p *Player) HasVoted() bool {
	return p.Vote != ""
}

// PromptEntry is a player's prompt for a round and the image generated from it
type PromptEntry struct {
	// Text is the prompt as submitted
	Text string

	// PromptID is the persisted prompt record, empty until the audit write completes
	PromptID string

	// Image is the generated image, nil until generation commits
	Image *Image
}
