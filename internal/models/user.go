package models

import (
	"time"
)

// User is a registered account that can join games
type User struct {
	// ID is the unique identifier for the user
	ID string

	// Name is the unique login and display name
	Name string

	// PasswordHash is the bcrypt hash of the user's password
	PasswordHash string

	// CreatedAt is when the user registered
	CreatedAt time.Time
}
