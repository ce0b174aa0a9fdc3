package battleship

import (
	"errors"
	"testing"
)

func TestDeployRandomAllSizes(t *testing.T) {
	fleet := DefaultFleet()
	for _, size := range GridSizes {
		for seed := int64(1); seed <= 50; seed++ {
			g := NewGrid(size)
			if err := DeployRandom(g, fleet, NewRand(seed)); err != nil {
				t.Fatalf("size %d seed %d: %v", size, seed, err)
			}
			if n := g.Count(Cell.IsShip); n != fleet.TotalSegments() {
				t.Fatalf("size %d seed %d: expected %d segments, got %d", size, seed, fleet.TotalSegments(), n)
			}
			for _, ship := range fleet {
				n := g.Count(func(c Cell) bool { return c == Cell(ship.ID) })
				if n != ship.Length {
					t.Errorf("size %d seed %d: ship %q has %d cells, want %d", size, seed, ship.ID, n, ship.Length)
				}
			}
		}
	}
}

func TestDeployRandomShipsAreStraight(t *testing.T) {
	g := NewGrid(10)
	if err := DeployRandom(g, DefaultFleet(), NewRand(7)); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	locs := boatLocations(g, nil)
	for id, cells := range locs {
		sameRow, sameCol := true, true
		for _, c := range cells[1:] {
			sameRow = sameRow && c.Row == cells[0].Row
			sameCol = sameCol && c.Col == cells[0].Col
		}
		if !sameRow && !sameCol {
			t.Errorf("ship %s is not in a straight line: %v", id, cells)
		}
	}
}

func TestDeployRandomIsDeterministicPerSeed(t *testing.T) {
	a, b := NewGrid(10), NewGrid(10)
	DeployRandom(a, DefaultFleet(), NewRand(42))
	DeployRandom(b, DefaultFleet(), NewRand(42))
	if a.String() != b.String() {
		t.Error("expected identical layouts for the same seed")
	}
}

func TestDeployRandomExhausted(t *testing.T) {
	g := NewGrid(8)
	fleet := Fleet{{ID: 'A', Length: 9}}
	err := DeployRandom(g, fleet, NewRand(1))
	if !errors.Is(err, ErrDeploymentSpaceExhausted) {
		t.Fatalf("expected ErrDeploymentSpaceExhausted, got %v", err)
	}
	if n := g.Count(Cell.IsShip); n != 0 {
		t.Errorf("expected untouched grid, found %d segments", n)
	}
}

func TestDeployRandomFindsLastSlot(t *testing.T) {
	g := NewGrid(8)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if r == 3 && c < 4 {
				continue
			}
			g.Set(r, c, CellMiss)
		}
	}
	if err := DeployRandom(g, Fleet{{ID: 'F', Length: 4}}, NewRand(3)); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	for c := 0; c < 4; c++ {
		if cell, _ := g.Get(3, c); cell != Cell('F') {
			t.Errorf("expected F at (3, %d), got %q", c, cell)
		}
	}
}

func TestDeployExplicit(t *testing.T) {
	fleet := Fleet{{ID: 'A', Length: 1}, {ID: 'B', Length: 2}}

	tests := []struct {
		name       string
		placements Placements
		wantErr    error
	}{
		{
			name:       "valid",
			placements: Placements{'A': {{0, 0}}, 'B': {{2, 2}, {2, 3}}},
		},
		{
			name:       "non contiguous accepted",
			placements: Placements{'A': {{0, 0}}, 'B': {{5, 1}, {0, 7}}},
		},
		{
			name:       "unknown ship",
			placements: Placements{'A': {{0, 0}}, 'B': {{2, 2}, {2, 3}}, 'Z': {{4, 4}}},
			wantErr:    ErrUnknownShipType,
		},
		{
			name:       "too few segments",
			placements: Placements{'A': {{0, 0}}, 'B': {{2, 2}}},
			wantErr:    ErrWrongSegmentCount,
		},
		{
			name:       "too many segments",
			placements: Placements{'A': {{0, 0}, {0, 1}}, 'B': {{2, 2}, {2, 3}}},
			wantErr:    ErrWrongSegmentCount,
		},
		{
			name:       "overlap with earlier ship",
			placements: Placements{'A': {{1, 1}}, 'B': {{1, 1}, {1, 2}}},
			wantErr:    ErrCellOccupied,
		},
		{
			name:       "overlap within ship",
			placements: Placements{'A': {{0, 0}}, 'B': {{3, 3}, {3, 3}}},
			wantErr:    ErrCellOccupied,
		},
		{
			name:       "out of bounds",
			placements: Placements{'A': {{0, 10}}, 'B': {{2, 2}, {2, 3}}},
			wantErr:    ErrOutOfBounds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(10)
			err := DeployExplicit(g, fleet, tt.placements)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if n := g.Count(Cell.IsShip); n != 3 {
					t.Errorf("expected 3 segments, got %d", n)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, ErrInvalidPlacement) {
				t.Errorf("expected error to be an ErrInvalidPlacement, got %v", err)
			}
			if n := g.Count(Cell.IsShip); n != 0 {
				t.Errorf("failed deployment must not touch the grid, found %d segments", n)
			}
		})
	}
}

func TestDeployExplicitPartialFleet(t *testing.T) {
	g := NewGrid(10)
	if err := DeployExplicit(g, DefaultFleet(), Placements{'A': {{0, 0}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := g.Count(Cell.IsShip); n != 1 {
		t.Errorf("expected only A deployed, got %d segments", n)
	}
	if c, _ := g.Get(0, 0); c != Cell('A') {
		t.Errorf("expected A at (0, 0), got %q", c)
	}
}

func TestDeployExplicitIntoOccupiedGrid(t *testing.T) {
	g := NewGrid(8)
	g.Set(4, 4, Cell('C'))
	err := DeployExplicit(g, Fleet{{ID: 'A', Length: 1}}, Placements{'A': {{4, 4}}})
	if !errors.Is(err, ErrCellOccupied) {
		t.Fatalf("expected ErrCellOccupied, got %v", err)
	}
}
