package models

// StatusSnapshot is a read-only view of a game's progress
type StatusSnapshot struct {
	// GameID is the persisted game ID, empty until the first player joins
	GameID string

	// Status is the current phase
	Status GameStatus

	// PlayerCount is the number of players that joined
	PlayerCount int

	// RequiredPlayers is the roster size that starts the game
	RequiredPlayers int

	// CurrentRound is the number of completed rounds
	CurrentRound int

	// MaxRounds is the number of rounds in the game
	MaxRounds int
}

// ResultEntry is a player's standing
type ResultEntry struct {
	// PlayerID is the ID of the player
	PlayerID string

	// PlayerName is the display name of the player
	PlayerName string

	// Score is the player's cumulative vote count
	Score int

	// Rank is the one-based position in the standings
	Rank int
}
