package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/broadside/internal/bot"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var (
		levels   string
		numGames int
		workers  int
		gridSize int
		seed     int64
		verbose  bool
		jsonOut  bool
	)

	flag.StringVar(&levels, "d", "easy,medium,hard", "Difficulties to run (names or 1-3, comma separated)")
	flag.IntVar(&numGames, "n", 100, "Games per difficulty")
	flag.IntVar(&workers, "workers", 4, "Concurrency (parallel games)")
	flag.IntVar(&gridSize, "grid", 10, "Grid size (8, 10 or 12)")
	flag.Int64Var(&seed, "seed", 0, "Base seed (0 = random)")
	flag.BoolVar(&verbose, "v", false, "Log every game")
	flag.BoolVar(&jsonOut, "json", false, "Output results as JSON")

	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	difficulties, err := parseDifficulties(levels)
	if err != nil {
		log.Fatal().Err(err).Msg("Bad -d flag")
	}
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	// Run games
	total := numGames * len(difficulties)
	results := make([]*bot.ArenaResult, total)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	errCount := 0

	for i := 0; i < total; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			gameSeed := seed
			if seed != 0 {
				gameSeed = seed + int64(idx%numGames)
			}

			cfg := bot.ArenaConfig{
				Difficulty: difficulties[idx/numGames],
				GridSize:   gridSize,
				Seed:       gameSeed,
			}

			result, err := bot.RunArena(ctx, cfg)
			if err != nil {
				log.Error().Err(err).Int("game", idx+1).Msg("Game failed")
				mu.Lock()
				errCount++
				mu.Unlock()
				return
			}

			mu.Lock()
			results[idx] = result
			mu.Unlock()

			log.Debug().Int("game", idx+1).Str("strategy", result.Strategy).Int("shots", result.Shots).Msg("Game completed")
		}(i)
	}

	wg.Wait()

	if jsonOut {
		printJSON(results, total, errCount)
	} else {
		printSummary(results, difficulties, gridSize, errCount)
	}
}

// parseDifficulties accepts "easy,hard" or "1,3" style lists.
func parseDifficulties(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			d = 0
			for level := bot.Easy; level <= bot.Hard; level++ {
				if bot.DifficultyName(level) == part {
					d = level
				}
			}
		}
		if d < bot.Easy || d > bot.Hard {
			return nil, fmt.Errorf("%w: %q", bot.ErrInvalidDifficulty, part)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: none given", bot.ErrInvalidDifficulty)
	}
	return out, nil
}

func printSummary(results []*bot.ArenaResult, difficulties []int, gridSize, errCount int) {
	// Aggregate stats
	type stats struct {
		games    int
		shots    int
		hits     int
		best     int
		worst    int
		strategy string
	}

	byDifficulty := make(map[int]*stats)
	for _, d := range difficulties {
		byDifficulty[d] = &stats{}
	}

	completed := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		completed++
		s := byDifficulty[r.Difficulty]
		s.strategy = r.Strategy
		s.games++
		s.shots += r.Shots
		s.hits += r.Hits
		if s.best == 0 || r.Shots < s.best {
			s.best = r.Shots
		}
		if r.Shots > s.worst {
			s.worst = r.Shots
		}
	}

	fmt.Printf("\nResults (%d games, %dx%d grid):\n", completed, gridSize, gridSize)
	if errCount > 0 {
		fmt.Printf("  (%d games failed)\n", errCount)
	}

	for _, d := range difficulties {
		s := byDifficulty[d]
		avgShots, accuracy := 0.0, 0.0
		if s.games > 0 {
			avgShots = float64(s.shots) / float64(s.games)
		}
		if s.shots > 0 {
			accuracy = 100 * float64(s.hits) / float64(s.shots)
		}
		fmt.Printf("  %-7s (%s):  %d games, avg shots %.1f (best %d, worst %d)  -- accuracy: %.1f%%\n",
			bot.DifficultyName(d), s.strategy, s.games, avgShots, s.best, s.worst, accuracy)
	}
}

func printJSON(results []*bot.ArenaResult, total, errCount int) {
	out := struct {
		Total   int                `json:"total"`
		Errors  int                `json:"errors"`
		Results []*bot.ArenaResult `json:"results"`
	}{
		Total:   total,
		Errors:  errCount,
		Results: results,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
