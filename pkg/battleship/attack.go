package battleship

import "fmt"

// Outcome is the result of firing at one cell.
type Outcome string

const (
	OutcomeHit  Outcome = "hit"
	OutcomeMiss Outcome = "miss"
	// OutcomeNoOp means the cell was already attacked; nothing changed.
	OutcomeNoOp Outcome = "noop"
)

// Shot is what a single attack produced.
type Shot struct {
	Coord
	Outcome Outcome `json:"outcome"`
	Ship    string  `json:"ship,omitempty"` // id of the ship struck, hits only
	Sunk    bool    `json:"sunk,omitempty"`
}

// Fire applies one attack to g. A cell already marked Hit or Miss yields
// OutcomeNoOp and leaves g unchanged. Sinking is detected by scanning for any
// remaining segment of the struck ship.
func Fire(g *Grid, row, col int) (Shot, error) {
	cell, err := g.Get(row, col)
	if err != nil {
		return Shot{}, err
	}
	s := Shot{Coord: Coord{Row: row, Col: col}}
	switch {
	case cell.Attacked():
		s.Outcome = OutcomeNoOp
	case cell.IsShip():
		g.cells[row*g.size+col] = CellHit
		s.Outcome = OutcomeHit
		s.Ship = string(cell.ShipID())
		s.Sunk = !g.HasShip(cell.ShipID())
	default:
		g.cells[row*g.size+col] = CellMiss
		s.Outcome = OutcomeMiss
	}
	return s, nil
}

// Move is one resolved attack in a game's history.
type Move struct {
	Seq   int    `json:"seq"`
	Actor string `json:"actor"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Hit   bool   `json:"hit"`
	Ship  string `json:"ship,omitempty"`
	Sunk  bool   `json:"sunk,omitempty"`
}

func (m Move) String() string {
	result := "Miss"
	if m.Hit {
		result = "Hit"
	}
	return fmt.Sprintf("%s attacked (%d, %d) - %s", m.Actor, m.Row, m.Col, result)
}

// History is the append-only log of resolved attacks. Moves leave it only
// through Pop, newest first.
type History struct {
	moves []Move
}

// Append stores m with the next sequence number and returns the stored copy.
func (h *History) Append(m Move) Move {
	m.Seq = len(h.moves) + 1
	h.moves = append(h.moves, m)
	return m
}

// Pop removes and returns the most recent move.
func (h *History) Pop() (Move, bool) {
	if len(h.moves) == 0 {
		return Move{}, false
	}
	m := h.moves[len(h.moves)-1]
	h.moves = h.moves[:len(h.moves)-1]
	return m, true
}

// Last returns the most recent move without removing it.
func (h *History) Last() (Move, bool) {
	if len(h.moves) == 0 {
		return Move{}, false
	}
	return h.moves[len(h.moves)-1], true
}

func (h *History) Len() int { return len(h.moves) }

// Moves returns a copy of the log, oldest first.
func (h *History) Moves() []Move {
	return append([]Move(nil), h.moves...)
}
