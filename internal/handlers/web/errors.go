package web

// WebError is a custom error type for server construction errors
type WebError string

// Error implements the error interface
func (e WebError) Error() string {
	return string(e)
}

const (
	ErrNilConfig   WebError = "config cannot be nil"
	ErrNilIdentity WebError = "identity service cannot be nil"
	ErrNilGames    WebError = "games cannot be nil"
	ErrNilMessages WebError = "messaging service cannot be nil"
	ErrNilHub      WebError = "hub cannot be nil"
	ErrInvalidPort WebError = "port must be between 0 and 65535"
)
