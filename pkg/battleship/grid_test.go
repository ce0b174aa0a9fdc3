package battleship

import (
	"errors"
	"testing"
)

func TestNewGridIsEmpty(t *testing.T) {
	for _, size := range GridSizes {
		g := NewGrid(size)
		if g.Size() != size {
			t.Fatalf("expected size %d, got %d", size, g.Size())
		}
		if n := g.Count(func(c Cell) bool { return c != CellEmpty }); n != 0 {
			t.Errorf("size %d: expected all cells empty, %d were not", size, n)
		}
	}
}

func TestNewGridRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("size %d: expected panic", size)
				}
			}()
			NewGrid(size)
		}()
	}
}

func TestGridGetSetBounds(t *testing.T) {
	g := NewGrid(8)
	tests := []struct {
		name     string
		row, col int
		wantErr  bool
	}{
		{"origin", 0, 0, false},
		{"far corner", 7, 7, false},
		{"negative row", -1, 0, true},
		{"negative col", 0, -1, true},
		{"row past end", 8, 0, true},
		{"col past end", 0, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Set(tt.row, tt.col, Cell('A'))
			if tt.wantErr != (err != nil) {
				t.Fatalf("Set: wantErr=%v, got %v", tt.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected ErrOutOfBounds, got %v", err)
			}
			c, err := g.Get(tt.row, tt.col)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfBounds) {
					t.Errorf("Get: expected ErrOutOfBounds, got %v", err)
				}
				return
			}
			if c != Cell('A') {
				t.Errorf("expected 'A', got %q", c)
			}
		})
	}
}

func TestCellClassification(t *testing.T) {
	if CellEmpty.IsShip() || CellHit.IsShip() || CellMiss.IsShip() {
		t.Error("markers must not count as ship segments")
	}
	if !Cell('D').IsShip() || Cell('D').ShipID() != 'D' {
		t.Error("expected 'D' to be a ship segment")
	}
	if !CellHit.Attacked() || !CellMiss.Attacked() || CellEmpty.Attacked() || Cell('D').Attacked() {
		t.Error("only Hit and Miss count as attacked")
	}
}

func TestGridRowsHidesShips(t *testing.T) {
	g := NewGrid(8)
	g.Set(0, 0, Cell('A'))
	g.Set(0, 1, CellHit)
	g.Set(0, 2, CellMiss)

	if got := g.Rows(false)[0]; got != "AXO....." {
		t.Errorf("unexpected full row %q", got)
	}
	if got := g.Rows(true)[0]; got != ".XO....." {
		t.Errorf("unexpected hidden row %q", got)
	}
}

func TestFleetValidate(t *testing.T) {
	if err := DefaultFleet().Validate(); err != nil {
		t.Fatalf("default fleet: %v", err)
	}
	if DefaultFleet().TotalSegments() != 15 {
		t.Errorf("expected 15 segments, got %d", DefaultFleet().TotalSegments())
	}

	bad := []Fleet{
		{},
		{{ID: 'A', Length: 0}},
		{{ID: 'A', Length: 1}, {ID: 'A', Length: 2}},
		{{ID: 'X', Length: 2}},
		{{ID: 'a', Length: 2}},
	}
	for i, f := range bad {
		if err := f.Validate(); !errors.Is(err, ErrInvalidFleet) {
			t.Errorf("fleet %d: expected ErrInvalidFleet, got %v", i, err)
		}
	}
}

func TestParseFleetOrdersByID(t *testing.T) {
	f, err := ParseFleet(map[byte]int{'C': 3, 'A': 1, 'B': 2})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for i, want := range []byte{'A', 'B', 'C'} {
		if f[i].ID != want {
			t.Errorf("position %d: expected %q, got %q", i, want, f[i].ID)
		}
	}
}
