package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/freeeve/broadside/pkg/battleship"
)

func TestRunArena_AllDifficulties(t *testing.T) {
	ctx := context.Background()
	for _, d := range []int{Easy, Medium, Hard} {
		for _, size := range battleship.GridSizes {
			result, err := RunArena(ctx, ArenaConfig{Difficulty: d, GridSize: size, Seed: 42})
			if err != nil {
				t.Fatalf("%s on %d: %v", DifficultyName(d), size, err)
			}
			fleet := battleship.DefaultFleet()
			if result.Hits != fleet.TotalSegments() {
				t.Errorf("%s on %d: expected %d hits, got %d", DifficultyName(d), size, fleet.TotalSegments(), result.Hits)
			}
			if result.Sunk != len(fleet) {
				t.Errorf("%s on %d: expected %d sunk, got %d", DifficultyName(d), size, len(fleet), result.Sunk)
			}
			if result.Shots != result.Hits+result.Misses {
				t.Errorf("%s on %d: shots %d != hits %d + misses %d", DifficultyName(d), size, result.Shots, result.Hits, result.Misses)
			}
			t.Logf("%s on %dx%d: %d shots (%.0f%% accuracy)", result.Strategy, size, size, result.Shots, result.Accuracy()*100)
		}
	}
}

func TestRunArena_Deterministic(t *testing.T) {
	ctx := context.Background()
	cfg := ArenaConfig{Difficulty: Medium, Seed: 7}
	a, err := RunArena(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunArena(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if *a != *b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

func TestRunArena_InvalidConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := RunArena(ctx, ArenaConfig{Difficulty: Easy, GridSize: 9}); !errors.Is(err, battleship.ErrInvalidGridSize) {
		t.Errorf("expected ErrInvalidGridSize, got %v", err)
	}
	if _, err := RunArena(ctx, ArenaConfig{Difficulty: 5}); !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestRunArena_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunArena(ctx, ArenaConfig{Difficulty: Hard}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
