package bot

import (
	"errors"
	"fmt"

	"github.com/freeeve/broadside/pkg/battleship"
)

// ErrInvalidDifficulty is returned for difficulty levels outside 1..3.
var ErrInvalidDifficulty = errors.New("difficulty must be 1, 2 or 3")

// Difficulty levels, one per targeting strategy.
const (
	Easy   = 1 // RandomStrategy
	Medium = 2 // PerimeterStrategy
	Hard   = 3 // ProbabilityStrategy
)

// Strategy picks the bot's shots. Every strategy is a battleship.Targeter and
// may also implement battleship.SinkObserver.
type Strategy interface {
	battleship.Targeter
}

// StrategyForDifficulty returns a fresh strategy for a bot difficulty level,
// sized for the grid it will fire at.
func StrategyForDifficulty(difficulty, gridSize int, fleet battleship.Fleet, rng battleship.Rand) (Strategy, error) {
	switch difficulty {
	case Easy:
		return NewRandomStrategy(rng), nil
	case Medium:
		return NewPerimeterStrategy(gridSize, rng), nil
	case Hard:
		return NewProbabilityStrategy(gridSize, fleet), nil
	default:
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDifficulty, difficulty)
	}
}

// DifficultyName is the human label for a difficulty level.
func DifficultyName(difficulty int) string {
	switch difficulty {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty-%d", difficulty)
	}
}

// shotState is a strategy's private record of one cell.
type shotState uint8

const (
	unknown shotState = iota
	missed
	struck
)

// neighbours lists the orthogonal offsets in search order: right, down, left, up.
var neighbours = [4]battleship.Coord{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: -1}, {Row: -1, Col: 0}}
