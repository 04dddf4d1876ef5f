package game

import (
	"context"
	"log"
	"sync"
)

// Lobby holds the game currently being played and replaces it once it is over
type Lobby struct {
	mu      sync.RWMutex
	cfg     Config
	current *session
}

// NewLobby creates a lobby with a fresh game built from cfg
func NewLobby(cfg *Config) (*Lobby, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	current, err := New(cfg)
	if err != nil {
		return nil, err
	}

	return &Lobby{
		cfg:     *cfg,
		current: current,
	}, nil
}

// Current returns the game being played
func (l *Lobby) Current() Service {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.current
}

// NewGame replaces a finished game with a fresh one
func (l *Lobby) NewGame(ctx context.Context) (Service, error) {
	next, err := l.replace(ctx)
	if err != nil {
		return nil, err
	}

	// notify outside the lobby lock; subscribers read Current while holding theirs
	next.mu.Lock()
	snapshot := next.snapshotLocked()
	next.mu.Unlock()
	next.notify(&Event{Type: EventStatus, Status: snapshot})

	return next, nil
}

func (l *Lobby) replace(ctx context.Context) (*session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out, err := l.current.GetStatus(ctx, &GetStatusInput{})
	if err != nil {
		return nil, err
	}
	if !out.Status.Status.IsTerminal() {
		return nil, ErrGameInProgress
	}

	next, err := New(&l.cfg)
	if err != nil {
		return nil, err
	}

	l.current.Wait()
	l.current = next

	log.Printf("Started a new game after %s", out.Status.GameID)
	return next, nil
}

// Wait blocks until the current game's background work has finished
func (l *Lobby) Wait() {
	l.mu.RLock()
	current := l.current
	l.mu.RUnlock()

	current.Wait()
}
