package bot

import "github.com/freeeve/broadside/pkg/battleship"

// huntBonus is added to every untried neighbour of a hit on a ship still
// afloat.
const huntBonus = 5

// ProbabilityStrategy scores each untried cell by how many placements of the
// ships still afloat would cover it and fires at the highest score. Ties go
// to the lowest row, then the lowest column.
type ProbabilityStrategy struct {
	size  int
	shots []shotState
	// sunk marks hits that belong to a ship already sunk.
	sunk []bool
	// lengths holds the lengths of ships not yet sunk.
	lengths []int
	prob    []int
}

// NewProbabilityStrategy creates a ProbabilityStrategy for a size x size grid
// hiding the given fleet.
func NewProbabilityStrategy(size int, fleet battleship.Fleet) *ProbabilityStrategy {
	s := &ProbabilityStrategy{
		size:    size,
		shots:   make([]shotState, size*size),
		sunk:    make([]bool, size*size),
		lengths: fleet.Lengths(),
		prob:    make([]int, size*size),
	}
	s.recompute()
	return s
}

func (s *ProbabilityStrategy) Name() string { return "probability" }

func (s *ProbabilityStrategy) inBounds(r, c int) bool {
	return r >= 0 && r < s.size && c >= 0 && c < s.size
}

// NextTarget returns the first untried cell, in row-major order, holding the
// highest score.
func (s *ProbabilityStrategy) NextTarget(battleship.Board) (battleship.Coord, error) {
	best := -1
	for i, st := range s.shots {
		if st != unknown {
			continue
		}
		if best < 0 || s.prob[i] > s.prob[best] {
			best = i
		}
	}
	if best < 0 {
		return battleship.Coord{}, battleship.ErrNoTargets
	}
	return battleship.Coord{Row: best / s.size, Col: best % s.size}, nil
}

func (s *ProbabilityStrategy) Record(c battleship.Coord, hit bool) {
	if !s.inBounds(c.Row, c.Col) {
		return
	}
	if hit {
		s.shots[c.Row*s.size+c.Col] = struck
	} else {
		s.shots[c.Row*s.size+c.Col] = missed
	}
	s.recompute()
}

func (s *ProbabilityStrategy) Restore(c battleship.Coord, _ bool) {
	if !s.inBounds(c.Row, c.Col) {
		return
	}
	s.shots[c.Row*s.size+c.Col] = unknown
	s.sunk[c.Row*s.size+c.Col] = false
	s.recompute()
}

// ShipSunk drops one ship of the given length from the candidate set. Its
// cells stop attracting the hunt bonus and block later segments.
func (s *ProbabilityStrategy) ShipSunk(length int, cells []battleship.Coord) {
	s.markSunk(cells, true)
	for i, l := range s.lengths {
		if l == length {
			s.lengths = append(s.lengths[:i], s.lengths[i+1:]...)
			break
		}
	}
	s.recompute()
}

// ShipRestored puts a ship of the given length back after an undo.
func (s *ProbabilityStrategy) ShipRestored(length int, cells []battleship.Coord) {
	s.markSunk(cells, false)
	s.lengths = append(s.lengths, length)
	s.recompute()
}

func (s *ProbabilityStrategy) markSunk(cells []battleship.Coord, sunk bool) {
	for _, c := range cells {
		if s.inBounds(c.Row, c.Col) {
			s.sunk[c.Row*s.size+c.Col] = sunk
		}
	}
}

// Remaining returns the lengths of ships the strategy still hunts.
func (s *ProbabilityStrategy) Remaining() []int {
	return append([]int(nil), s.lengths...)
}

// Probabilities returns a copy of the score grid, indexed [row][col].
func (s *ProbabilityStrategy) Probabilities() [][]int {
	out := make([][]int, s.size)
	for r := range out {
		out[r] = append([]int(nil), s.prob[r*s.size:(r+1)*s.size]...)
	}
	return out
}

// recompute rebuilds the score grid. A candidate segment starts on an
// untried cell, runs in one of the four axis directions and may cross hits on
// ships afloat but not misses or sunk ships. Untried neighbours of hits on
// ships afloat then get huntBonus on top.
func (s *ProbabilityStrategy) recompute() {
	clear(s.prob)
	for _, length := range s.lengths {
		for r := 0; r < s.size; r++ {
			for c := 0; c < s.size; c++ {
				if s.shots[r*s.size+c] != unknown {
					continue
				}
				for _, d := range neighbours {
					if s.fits(r, c, d, length) {
						s.cover(r, c, d, length)
					}
				}
			}
		}
	}
	for i, st := range s.shots {
		if st != struck || s.sunk[i] {
			continue
		}
		r, c := i/s.size, i%s.size
		for _, d := range neighbours {
			nr, nc := r+d.Row, c+d.Col
			if s.inBounds(nr, nc) && s.shots[nr*s.size+nc] == unknown {
				s.prob[nr*s.size+nc] += huntBonus
			}
		}
	}
}

func (s *ProbabilityStrategy) fits(r, c int, d battleship.Coord, length int) bool {
	for k := 0; k < length; k++ {
		nr, nc := r+k*d.Row, c+k*d.Col
		if !s.inBounds(nr, nc) {
			return false
		}
		if i := nr*s.size + nc; s.shots[i] == missed || s.sunk[i] {
			return false
		}
	}
	return true
}

func (s *ProbabilityStrategy) cover(r, c int, d battleship.Coord, length int) {
	for k := 0; k < length; k++ {
		s.prob[(r+k*d.Row)*s.size+c+k*d.Col]++
	}
}
