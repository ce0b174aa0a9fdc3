package battleship

import (
	"fmt"
	"strings"
)

// Cell is the state of one grid coordinate. Ship segments are stored as the
// ship's id byte ('A'..'Z'); the remaining values are reserved markers.
type Cell byte

const (
	CellEmpty Cell = 0
	CellHit   Cell = 'X'
	CellMiss  Cell = 'O'
)

// IsShip reports whether the cell holds an unhit ship segment.
func (c Cell) IsShip() bool {
	return c != CellEmpty && c != CellHit && c != CellMiss
}

// Attacked reports whether the cell has already been fired upon.
func (c Cell) Attacked() bool {
	return c == CellHit || c == CellMiss
}

// ShipID returns the ship id for a segment cell, or 0.
func (c Cell) ShipID() byte {
	if c.IsShip() {
		return byte(c)
	}
	return 0
}

// Coord is a zero-based (row, column) position.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.Row, c.Col) }

// Valid grid sizes.
var GridSizes = []int{8, 10, 12}

// ValidGridSize reports whether n is one of the supported board sizes.
func ValidGridSize(n int) bool {
	for _, s := range GridSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Grid is a square matrix of cells for one side of the board.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid returns an all-empty grid. Size is not restricted to GridSizes here;
// callers that take user input validate with ValidGridSize first. NewGrid
// panics if size is below 1.
func NewGrid(size int) *Grid {
	if size < 1 {
		panic(fmt.Sprintf("battleship: grid size %d is below 1", size))
	}
	return &Grid{size: size, cells: make([]Cell, size*size)}
}

// Size returns the number of rows (and columns).
func (g *Grid) Size() int { return g.size }

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// Get returns the cell at (row, col).
func (g *Grid) Get(row, col int) (Cell, error) {
	if !g.InBounds(row, col) {
		return CellEmpty, fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrOutOfBounds, row, col, g.size, g.size)
	}
	return g.cells[row*g.size+col], nil
}

// Set overwrites the cell at (row, col).
func (g *Grid) Set(row, col int, v Cell) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) on %dx%d grid", ErrOutOfBounds, row, col, g.size, g.size)
	}
	g.cells[row*g.size+col] = v
	return nil
}

// at is the unchecked accessor used once bounds are known.
func (g *Grid) at(row, col int) Cell { return g.cells[row*g.size+col] }

// Attacked implements Board.
func (g *Grid) Attacked(row, col int) bool {
	return g.InBounds(row, col) && g.at(row, col).Attacked()
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cp := &Grid{size: g.size, cells: make([]Cell, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}

// Count returns how many cells satisfy pred.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, c := range g.cells {
		if pred(c) {
			n++
		}
	}
	return n
}

// HasShip reports whether any unhit segment of ship id remains.
func (g *Grid) HasShip(id byte) bool {
	for _, c := range g.cells {
		if c == Cell(id) {
			return true
		}
	}
	return false
}

// AllSunk reports whether no unhit ship segment remains.
func (g *Grid) AllSunk() bool {
	for _, c := range g.cells {
		if c.IsShip() {
			return false
		}
	}
	return true
}

// Rows renders the grid as strings, one per row. Empty cells are '.', and
// when hideShips is set unhit segments are rendered as '.' too.
func (g *Grid) Rows(hideShips bool) []string {
	rows := make([]string, g.size)
	var b strings.Builder
	for r := 0; r < g.size; r++ {
		b.Reset()
		for c := 0; c < g.size; c++ {
			cell := g.at(r, c)
			switch {
			case cell == CellEmpty, cell.IsShip() && hideShips:
				b.WriteByte('.')
			default:
				b.WriteByte(byte(cell))
			}
		}
		rows[r] = b.String()
	}
	return rows
}

func (g *Grid) String() string { return strings.Join(g.Rows(false), "\n") }
