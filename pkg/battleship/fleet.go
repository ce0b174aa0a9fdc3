package battleship

import (
	"fmt"
	"sort"
)

// ShipSpec registers one ship type.
type ShipSpec struct {
	ID     byte `json:"id"`
	Length int  `json:"length"`
}

// Fleet is an ordered ship registry. Order matters: random deployment and
// explicit placement both walk the fleet front to back.
type Fleet []ShipSpec

// DefaultFleet returns the standard six-ship set.
func DefaultFleet() Fleet {
	return Fleet{
		{ID: 'A', Length: 1},
		{ID: 'B', Length: 2},
		{ID: 'C', Length: 2},
		{ID: 'D', Length: 3},
		{ID: 'E', Length: 3},
		{ID: 'F', Length: 4},
	}
}

// ParseFleet builds a Fleet from an id->length map, ordered by id.
func ParseFleet(lengths map[byte]int) (Fleet, error) {
	f := make(Fleet, 0, len(lengths))
	for id, n := range lengths {
		f = append(f, ShipSpec{ID: id, Length: n})
	}
	sort.Slice(f, func(i, j int) bool { return f[i].ID < f[j].ID })
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks ids are distinct capital letters usable as cell markers and
// every length is positive.
func (f Fleet) Validate() error {
	if len(f) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidFleet)
	}
	seen := make(map[byte]bool, len(f))
	for _, s := range f {
		if s.ID < 'A' || s.ID > 'Z' || Cell(s.ID) == CellHit || Cell(s.ID) == CellMiss {
			return fmt.Errorf("%w: ship id %q", ErrInvalidFleet, s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate ship id %q", ErrInvalidFleet, s.ID)
		}
		seen[s.ID] = true
		if s.Length < 1 {
			return fmt.Errorf("%w: ship %q has length %d", ErrInvalidFleet, s.ID, s.Length)
		}
	}
	return nil
}

// Length returns the registered length of ship id.
func (f Fleet) Length(id byte) (int, bool) {
	for _, s := range f {
		if s.ID == id {
			return s.Length, true
		}
	}
	return 0, false
}

// TotalSegments is the number of cells the whole fleet occupies.
func (f Fleet) TotalSegments() int {
	n := 0
	for _, s := range f {
		n += s.Length
	}
	return n
}

// Lengths returns ship lengths in fleet order.
func (f Fleet) Lengths() []int {
	out := make([]int, len(f))
	for i, s := range f {
		out[i] = s.Length
	}
	return out
}

// Clone returns an independent copy.
func (f Fleet) Clone() Fleet {
	return append(Fleet(nil), f...)
}
