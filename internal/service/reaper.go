package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// IdleReaper periodically removes games nobody has touched for a while, so
// abandoned matches do not hold registry slots forever.
type IdleReaper struct {
	games    *GameService
	ttl      time.Duration
	interval time.Duration
}

// NewIdleReaper creates an IdleReaper that drops games idle longer than ttl,
// checking every interval.
func NewIdleReaper(games *GameService, ttl, interval time.Duration) *IdleReaper {
	return &IdleReaper{games: games, ttl: ttl, interval: interval}
}

// Start runs the reaper until ctx is cancelled.
func (r *IdleReaper) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info().Dur("ttl", r.ttl).Dur("interval", r.interval).Msg("Idle game reaper started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Idle game reaper stopped")
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *IdleReaper) sweep(ctx context.Context) {
	n, err := r.games.ReapIdle(ctx, r.ttl)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reap idle games")
		return
	}
	if n > 0 {
		log.Info().Int("count", n).Msg("Reaped idle games")
	}
}
