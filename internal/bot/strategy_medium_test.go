package bot

import (
	"errors"
	"testing"

	"github.com/freeeve/broadside/pkg/battleship"
)

func coord(r, c int) battleship.Coord { return battleship.Coord{Row: r, Col: c} }

func TestPerimeterStrategy_ProbeOrder(t *testing.T) {
	s := NewPerimeterStrategy(10, battleship.NewRand(1))
	s.Record(coord(4, 4), true)

	want := []battleship.Coord{coord(4, 5), coord(5, 4), coord(4, 3), coord(3, 4)}
	for i, w := range want {
		got, err := s.NextTarget(nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("shot %d: expected %v, got %v", i, w, got)
		}
		s.Record(got, false)
	}
	// The exhausted hit is dropped on the next call.
	if _, err := s.NextTarget(nil); err != nil {
		t.Fatal(err)
	}
	if s.Targeting() {
		t.Error("expected the strategy to return to hunting")
	}
}

func TestPerimeterStrategy_CornerSkipsOutOfBounds(t *testing.T) {
	s := NewPerimeterStrategy(10, battleship.NewRand(1))
	s.Record(coord(9, 9), true)
	got, err := s.NextTarget(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != coord(9, 8) {
		t.Errorf("expected (9, 8), got %v", got)
	}
}

func TestPerimeterStrategy_SkipsTriedNeighbours(t *testing.T) {
	s := NewPerimeterStrategy(8, battleship.NewRand(1))
	s.Record(coord(2, 3), false)
	s.Record(coord(3, 2), true)
	s.Record(coord(3, 3), true)

	// (3,2): right (3,3) tried, down (4,2) untried.
	got, _ := s.NextTarget(nil)
	if got != coord(4, 2) {
		t.Errorf("expected (4, 2), got %v", got)
	}
}

func TestPerimeterStrategy_FollowsShip(t *testing.T) {
	grid := battleship.NewGrid(8)
	err := battleship.DeployExplicit(grid, battleship.Fleet{{ID: 'A', Length: 4}}, battleship.Placements{
		'A': {coord(2, 2), coord(2, 3), coord(2, 4), coord(2, 5)},
	})
	if err != nil {
		t.Fatal(err)
	}
	s := NewPerimeterStrategy(8, battleship.NewRand(1))
	if _, err := battleship.Fire(grid, 2, 2); err != nil {
		t.Fatal(err)
	}
	s.Record(coord(2, 2), true)

	for i := 0; i < 12 && !grid.AllSunk(); i++ {
		c, err := s.NextTarget(grid)
		if err != nil {
			t.Fatal(err)
		}
		shot, err := battleship.Fire(grid, c.Row, c.Col)
		if err != nil {
			t.Fatal(err)
		}
		s.Record(c, shot.Outcome == battleship.OutcomeHit)
	}
	if !grid.AllSunk() {
		t.Error("expected the ship to be sunk while targeting")
	}
}

func TestPerimeterStrategy_Restore(t *testing.T) {
	s := NewPerimeterStrategy(10, battleship.NewRand(1))
	s.Record(coord(4, 4), true)
	s.Record(coord(4, 5), false)
	s.Restore(coord(4, 5), false)

	got, _ := s.NextTarget(nil)
	if got != coord(4, 5) {
		t.Errorf("expected restored cell (4, 5), got %v", got)
	}

	s.Restore(coord(4, 4), true)
	if s.Targeting() {
		t.Error("expected no queued hits after restoring the only hit")
	}
}

func TestPerimeterStrategy_ExhaustsGrid(t *testing.T) {
	s := NewPerimeterStrategy(8, battleship.NewRand(3))
	seen := make(map[battleship.Coord]bool)
	for i := 0; i < 64; i++ {
		c, err := s.NextTarget(nil)
		if err != nil {
			t.Fatalf("shot %d: %v", i, err)
		}
		if seen[c] {
			t.Fatalf("shot %d repeated %v", i, c)
		}
		seen[c] = true
		s.Record(c, (c.Row+c.Col)%3 == 0)
	}
	if _, err := s.NextTarget(nil); !errors.Is(err, battleship.ErrNoTargets) {
		t.Errorf("expected ErrNoTargets, got %v", err)
	}
}
