package bot

import "github.com/freeeve/broadside/pkg/battleship"

// MaxTargetAttempts caps rejection sampling when the random strategy looks for
// an unattacked cell. After that many misses the strategy draws from the list
// of remaining cells instead, so a nearly full board cannot stall it.
const MaxTargetAttempts = 1000

// orDefault returns rng, or a clock-seeded source when rng is nil.
func orDefault(rng battleship.Rand) battleship.Rand {
	if rng == nil {
		return battleship.NewRand(0)
	}
	return rng
}

// openCells lists, in row-major order, every cell for which taken is false.
func openCells(size int, taken func(row, col int) bool) []battleship.Coord {
	var cells []battleship.Coord
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if !taken(r, c) {
				cells = append(cells, battleship.Coord{Row: r, Col: c})
			}
		}
	}
	return cells
}

// pickCell draws one cell uniformly from cells.
func pickCell(cells []battleship.Coord, rng battleship.Rand) (battleship.Coord, error) {
	if len(cells) == 0 {
		return battleship.Coord{}, battleship.ErrNoTargets
	}
	return cells[rng.Intn(len(cells))], nil
}
