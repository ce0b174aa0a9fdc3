package battleship

import "fmt"

// MaxPlacementAttempts caps rejection sampling per ship before random
// deployment falls back to sampling from the enumerated valid placements.
const MaxPlacementAttempts = 1000

// Placements maps a ship id to the ordered cells it occupies.
type Placements map[byte][]Coord

// DeployExplicit places the ships named in placements at the given
// coordinates. Fleet ships left out of placements are not deployed. Ships are
// processed in fleet order, so a later ship may collide with an earlier one.
// No straight-line or contiguity rule is enforced. On any error the grid is
// left untouched.
func DeployExplicit(g *Grid, fleet Fleet, placements Placements) error {
	for id := range placements {
		if _, ok := fleet.Length(id); !ok {
			return fmt.Errorf("%w: %w %q", ErrInvalidPlacement, ErrUnknownShipType, id)
		}
	}

	scratch := g.Clone()
	for _, ship := range fleet {
		cells, ok := placements[ship.ID]
		if !ok {
			continue
		}
		if len(cells) != ship.Length {
			return fmt.Errorf("%w: %w: ship %q expects %d positions, got %d",
				ErrInvalidPlacement, ErrWrongSegmentCount, ship.ID, ship.Length, len(cells))
		}
		for _, c := range cells {
			cur, err := scratch.Get(c.Row, c.Col)
			if err != nil {
				return fmt.Errorf("%w: ship %q: %w", ErrInvalidPlacement, ship.ID, err)
			}
			if cur != CellEmpty {
				return fmt.Errorf("%w: %w: ship %q at %s", ErrInvalidPlacement, ErrCellOccupied, ship.ID, c)
			}
			scratch.cells[c.Row*scratch.size+c.Col] = Cell(ship.ID)
		}
	}
	copy(g.cells, scratch.cells)
	return nil
}

// placement is a straight run of cells starting at origin.
type placement struct {
	origin     Coord
	horizontal bool
	step       int // +1 or -1
}

func (p placement) cell(i int) Coord {
	if p.horizontal {
		return Coord{Row: p.origin.Row, Col: p.origin.Col + i*p.step}
	}
	return Coord{Row: p.origin.Row + i*p.step, Col: p.origin.Col}
}

func (p placement) fits(g *Grid, length int) bool {
	for i := 0; i < length; i++ {
		c := p.cell(i)
		if !g.InBounds(c.Row, c.Col) || g.at(c.Row, c.Col) != CellEmpty {
			return false
		}
	}
	return true
}

// DeployRandom places the fleet at random straight, non-overlapping positions.
// Each ship gets MaxPlacementAttempts random origin/orientation/direction
// draws; if all miss, one placement is drawn uniformly from every valid one.
// ErrDeploymentSpaceExhausted is returned only when no valid placement exists,
// in which case the grid is left untouched.
func DeployRandom(g *Grid, fleet Fleet, rng Rand) error {
	scratch := g.Clone()
	for _, ship := range fleet {
		p, ok := samplePlacement(scratch, ship.Length, rng)
		if !ok {
			p, ok = pickPlacement(scratch, ship.Length, rng)
		}
		if !ok {
			return fmt.Errorf("%w: ship %q (length %d) on %dx%d grid",
				ErrDeploymentSpaceExhausted, ship.ID, ship.Length, g.size, g.size)
		}
		for i := 0; i < ship.Length; i++ {
			c := p.cell(i)
			scratch.cells[c.Row*scratch.size+c.Col] = Cell(ship.ID)
		}
	}
	copy(g.cells, scratch.cells)
	return nil
}

func samplePlacement(g *Grid, length int, rng Rand) (placement, bool) {
	for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
		p := placement{
			origin:     Coord{Row: rng.Intn(g.size), Col: rng.Intn(g.size)},
			horizontal: rng.Intn(2) == 1,
			step:       1,
		}
		if rng.Intn(2) == 1 {
			p.step = -1
		}
		if p.fits(g, length) {
			return p, true
		}
	}
	return placement{}, false
}

// pickPlacement enumerates every forward-running placement and draws one.
// Backward runs cover the same cell sets, so they are not listed twice.
func pickPlacement(g *Grid, length int, rng Rand) (placement, bool) {
	var valid []placement
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			for _, horizontal := range []bool{true, false} {
				p := placement{origin: Coord{Row: r, Col: c}, horizontal: horizontal, step: 1}
				if p.fits(g, length) {
					valid = append(valid, p)
				}
				if length == 1 {
					break
				}
			}
		}
	}
	if len(valid) == 0 {
		return placement{}, false
	}
	return valid[rng.Intn(len(valid))], true
}

// boatLocations lists the cells of every ship still represented on g,
// including segments already hit, keyed by ship id. hits supplies the id of
// each Hit cell since the grid itself only stores the marker.
func boatLocations(g *Grid, hits map[Coord]byte) map[string][]Coord {
	out := make(map[string][]Coord)
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			cell := g.at(r, c)
			id := cell.ShipID()
			if cell == CellHit {
				id = hits[Coord{Row: r, Col: c}]
			}
			if id == 0 {
				continue
			}
			out[string(id)] = append(out[string(id)], Coord{Row: r, Col: c})
		}
	}
	return out
}
