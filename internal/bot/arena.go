package bot

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/broadside/pkg/battleship"
)

// ArenaConfig configures one solo arena run: a strategy firing at a randomly
// deployed grid until every ship is sunk.
type ArenaConfig struct {
	Difficulty int
	GridSize   int              // 0 = battleship.DefaultGridSize
	Fleet      battleship.Fleet // nil = battleship.DefaultFleet()
	Seed       int64            // 0 = random
}

// ArenaResult describes how a strategy fared in one arena run.
type ArenaResult struct {
	Difficulty int    `json:"difficulty"`
	Strategy   string `json:"strategy"`
	GridSize   int    `json:"gridSize"`
	Shots      int    `json:"shots"`
	Hits       int    `json:"hits"`
	Misses     int    `json:"misses"`
	Sunk       int    `json:"sunk"`
}

// Accuracy is the share of shots that hit.
func (r *ArenaResult) Accuracy() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Shots)
}

// RunArena deploys the fleet at random and lets the strategy for
// cfg.Difficulty fire until the grid is cleared.
func RunArena(ctx context.Context, cfg ArenaConfig) (*ArenaResult, error) {
	if cfg.GridSize == 0 {
		cfg.GridSize = battleship.DefaultGridSize
	}
	if !battleship.ValidGridSize(cfg.GridSize) {
		return nil, fmt.Errorf("%w: %d", battleship.ErrInvalidGridSize, cfg.GridSize)
	}
	if cfg.Fleet == nil {
		cfg.Fleet = battleship.DefaultFleet()
	}
	rng := battleship.NewRand(cfg.Seed)

	grid := battleship.NewGrid(cfg.GridSize)
	if err := battleship.DeployRandom(grid, cfg.Fleet, rng); err != nil {
		return nil, fmt.Errorf("deploy arena fleet: %w", err)
	}
	strategy, err := StrategyForDifficulty(cfg.Difficulty, cfg.GridSize, cfg.Fleet, rng)
	if err != nil {
		return nil, err
	}
	observer, _ := strategy.(battleship.SinkObserver)

	result := &ArenaResult{
		Difficulty: cfg.Difficulty,
		Strategy:   strategy.Name(),
		GridSize:   cfg.GridSize,
	}
	limit := cfg.GridSize * cfg.GridSize
	struckBy := make(map[byte][]battleship.Coord)
	for !grid.AllSunk() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if result.Shots >= limit {
			return nil, fmt.Errorf("%s strategy fired %d shots without clearing the grid", strategy.Name(), result.Shots)
		}
		target, err := strategy.NextTarget(grid)
		if err != nil {
			return nil, fmt.Errorf("shot %d: %w", result.Shots+1, err)
		}
		shot, err := battleship.Fire(grid, target.Row, target.Col)
		if err != nil {
			return nil, fmt.Errorf("shot %d at %s: %w", result.Shots+1, target, err)
		}
		if shot.Outcome == battleship.OutcomeNoOp {
			return nil, fmt.Errorf("%s strategy repeated shot at %s", strategy.Name(), target)
		}
		result.Shots++
		hit := shot.Outcome == battleship.OutcomeHit
		strategy.Record(target, hit)
		if !hit {
			result.Misses++
			continue
		}
		result.Hits++
		struckBy[shot.Ship[0]] = append(struckBy[shot.Ship[0]], target)
		if shot.Sunk {
			result.Sunk++
			if observer != nil {
				length, _ := cfg.Fleet.Length(shot.Ship[0])
				observer.ShipSunk(length, struckBy[shot.Ship[0]])
			}
		}
	}

	log.Debug().Str("strategy", result.Strategy).Int("shots", result.Shots).Int("hits", result.Hits).Msg("Arena run finished")
	return result, nil
}
