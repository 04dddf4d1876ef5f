package identity

// IdentityError is a custom error type for account errors
type IdentityError string

// Error implements the error interface
func (e IdentityError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrMissingCredentials IdentityError = "missing username or password"
	ErrInvalidName        IdentityError = "username must be 1-32 characters without spaces"
	ErrNameTaken          IdentityError = "username already taken"
	ErrInvalidCredentials IdentityError = "invalid credentials"
	ErrUserNotFound       IdentityError = "user not found"
	ErrNilConfig          IdentityError = "config cannot be nil"
	ErrNilUserRepo        IdentityError = "user repository cannot be nil"
	ErrNilClock           IdentityError = "clock cannot be nil"
	ErrNilUUIDGenerator   IdentityError = "UUID generator cannot be nil"
)
