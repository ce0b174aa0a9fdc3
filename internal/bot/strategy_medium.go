package bot

import "github.com/freeeve/broadside/pkg/battleship"

// PerimeterStrategy is a hunt/target policy. While it has no unexplored hits
// it fires at random untried cells; after a hit it tries that cell's
// orthogonal neighbours (right, down, left, up) until none are left untried.
type PerimeterStrategy struct {
	size  int
	shots []shotState
	rng   battleship.Rand
	// hits holds every recorded hit in record order.
	hits []battleship.Coord
	// queue holds hits whose neighbours may still be untried, oldest first.
	queue []battleship.Coord
}

// NewPerimeterStrategy creates a PerimeterStrategy for a size x size grid.
func NewPerimeterStrategy(size int, rng battleship.Rand) *PerimeterStrategy {
	return &PerimeterStrategy{
		size:  size,
		shots: make([]shotState, size*size),
		rng:   orDefault(rng),
	}
}

func (s *PerimeterStrategy) Name() string { return "perimeter" }

func (s *PerimeterStrategy) untried(r, c int) bool {
	return r >= 0 && r < s.size && c >= 0 && c < s.size && s.shots[r*s.size+c] == unknown
}

// Targeting reports whether the strategy is working through a found ship.
func (s *PerimeterStrategy) Targeting() bool { return len(s.queue) > 0 }

// NextTarget returns the first untried neighbour of the oldest queued hit,
// dropping queued hits that have none left; with the queue empty it picks a
// random untried cell.
func (s *PerimeterStrategy) NextTarget(battleship.Board) (battleship.Coord, error) {
	for len(s.queue) > 0 {
		h := s.queue[0]
		for _, d := range neighbours {
			r, c := h.Row+d.Row, h.Col+d.Col
			if s.untried(r, c) {
				return battleship.Coord{Row: r, Col: c}, nil
			}
		}
		s.queue = s.queue[1:]
	}
	return pickCell(openCells(s.size, func(r, c int) bool { return !s.untried(r, c) }), s.rng)
}

// Record marks c as tried and queues it when it was a hit.
func (s *PerimeterStrategy) Record(c battleship.Coord, hit bool) {
	if !s.untried(c.Row, c.Col) {
		return
	}
	if hit {
		s.shots[c.Row*s.size+c.Col] = struck
		s.hits = append(s.hits, c)
		s.queue = append(s.queue, c)
		return
	}
	s.shots[c.Row*s.size+c.Col] = missed
}

// Restore marks c untried again. The queue is rebuilt from the remaining
// hits; any of them whose neighbours are all tried is dropped again on the
// next NextTarget.
func (s *PerimeterStrategy) Restore(c battleship.Coord, hit bool) {
	if c.Row < 0 || c.Row >= s.size || c.Col < 0 || c.Col >= s.size {
		return
	}
	s.shots[c.Row*s.size+c.Col] = unknown
	if !hit {
		return
	}
	for i := len(s.hits) - 1; i >= 0; i-- {
		if s.hits[i] == c {
			s.hits = append(s.hits[:i], s.hits[i+1:]...)
			break
		}
	}
	s.queue = append(s.queue[:0:0], s.hits...)
}
