package bot

import "github.com/freeeve/broadside/pkg/battleship"

// RandomStrategy fires at uniformly random unattacked cells. It keeps no
// memory of its own and reads attacked cells straight off the board.
type RandomStrategy struct {
	rng battleship.Rand
}

// NewRandomStrategy creates a RandomStrategy drawing from rng.
func NewRandomStrategy(rng battleship.Rand) *RandomStrategy {
	return &RandomStrategy{rng: orDefault(rng)}
}

func (s *RandomStrategy) Name() string { return "random" }

// NextTarget samples cells until it finds one not yet attacked, giving up on
// sampling after MaxTargetAttempts and choosing among the remaining cells.
func (s *RandomStrategy) NextTarget(b battleship.Board) (battleship.Coord, error) {
	size := b.Size()
	for attempt := 0; attempt < MaxTargetAttempts; attempt++ {
		r, c := s.rng.Intn(size), s.rng.Intn(size)
		if !b.Attacked(r, c) {
			return battleship.Coord{Row: r, Col: c}, nil
		}
	}
	return pickCell(openCells(size, b.Attacked), s.rng)
}

func (s *RandomStrategy) Record(battleship.Coord, bool)  {}
func (s *RandomStrategy) Restore(battleship.Coord, bool) {}
