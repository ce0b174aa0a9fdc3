package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/freeeve/broadside/pkg/battleship"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrRegistryFull  = errors.New("game registry is full")
)

// GameSettings is what a game was created with. Restart builds a new
// battleship.Game from the same settings.
type GameSettings struct {
	Mode       battleship.Mode
	Difficulty int // single-player only
	GridSize   int
	Fleet      battleship.Fleet
	Players    [2]string
}

// GameEntry is one live game in the registry. The engine does no locking of
// its own, so every read or write of Game goes through Lock/Unlock on the
// entry. Entries for different games never share a lock.
type GameEntry struct {
	mu        sync.Mutex
	ID        string
	Settings  GameSettings
	Game      *battleship.Game
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *GameEntry) Lock()   { e.mu.Lock() }
func (e *GameEntry) Unlock() { e.mu.Unlock() }

// Touch records activity on the entry. Callers hold the entry lock.
func (e *GameEntry) Touch(now time.Time) { e.UpdatedAt = now }

// HasPlayer reports whether name is one of the game's sides.
func (e *GameEntry) HasPlayer(name string) bool {
	return e.Settings.Players[0] == name || e.Settings.Players[1] == name
}

// GameRegistry holds the live games of this process, keyed by id.
type GameRegistry interface {
	Add(ctx context.Context, entry *GameEntry) error
	Get(ctx context.Context, id string) (*GameEntry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*GameEntry, error)
	Count(ctx context.Context) (int, error)
}

// ScoreBoard is the process-wide win tally across all games.
type ScoreBoard interface {
	AddWin(ctx context.Context, actor string) error
	RemoveWin(ctx context.Context, actor string) error
	Scores(ctx context.Context) (map[string]int, error)
}
