package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/freeeve/broadside/internal/repository"
)

// GameRegistry is the in-process repository.GameRegistry. The map is
// guarded by an RWMutex held only for the lookup itself; callers then lock
// the entry they got back.
type GameRegistry struct {
	mu       sync.RWMutex
	games    map[string]*repository.GameEntry
	maxGames int
}

// NewGameRegistry creates an empty registry holding at most maxGames games.
// Zero means no limit.
func NewGameRegistry(maxGames int) *GameRegistry {
	return &GameRegistry{
		games:    make(map[string]*repository.GameEntry),
		maxGames: maxGames,
	}
}

func (r *GameRegistry) Add(_ context.Context, entry *repository.GameEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[entry.ID]; ok {
		return fmt.Errorf("game %s: %w", entry.ID, repository.ErrAlreadyExists)
	}
	if r.maxGames > 0 && len(r.games) >= r.maxGames {
		return fmt.Errorf("%w: %d games", repository.ErrRegistryFull, r.maxGames)
	}
	r.games[entry.ID] = entry
	return nil
}

func (r *GameRegistry) Get(_ context.Context, id string) (*repository.GameEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", id, repository.ErrNotFound)
	}
	return e, nil
}

func (r *GameRegistry) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return fmt.Errorf("game %s: %w", id, repository.ErrNotFound)
	}
	delete(r.games, id)
	return nil
}

// List returns every entry ordered by creation time, oldest first.
func (r *GameRegistry) List(_ context.Context) ([]*repository.GameEntry, error) {
	r.mu.RLock()
	out := make([]*repository.GameEntry, 0, len(r.games))
	for _, e := range r.games {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *GameRegistry) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games), nil
}
