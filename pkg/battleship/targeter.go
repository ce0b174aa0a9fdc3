package battleship

// Board is the view a targeting strategy gets of the grid it fires at: its
// size and which cells have already been attacked. Ship positions are not
// exposed.
type Board interface {
	Size() int
	Attacked(row, col int) bool
}

// Targeter picks the bot's next shot and keeps whatever private knowledge it
// needs about the outcome of earlier shots.
type Targeter interface {
	Name() string
	// NextTarget returns an unattacked cell on b.
	NextTarget(b Board) (Coord, error)
	// Record is called after the shot at c resolved.
	Record(c Coord, hit bool)
	// Restore undoes a previous Record for the same cell.
	Restore(c Coord, hit bool)
}

// SinkObserver is implemented by targeters that want to know when one of
// their hits completes a ship. Not all targeters care; use a type assertion
// to check. length is the ship's fleet length; cells are the hit cells the
// ship still occupies.
type SinkObserver interface {
	ShipSunk(length int, cells []Coord)
	ShipRestored(length int, cells []Coord)
}

// boardView hides the underlying grid from targeters.
type boardView struct{ g *Grid }

func (v boardView) Size() int                  { return v.g.Size() }
func (v boardView) Attacked(row, col int) bool { return v.g.Attacked(row, col) }
