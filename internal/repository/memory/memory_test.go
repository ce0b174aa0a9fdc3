package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/freeeve/broadside/internal/repository"
)

func entry(id string, created time.Time) *repository.GameEntry {
	return &repository.GameEntry{
		ID:        id,
		Settings:  repository.GameSettings{Players: [2]string{"alice", "Bot"}},
		CreatedAt: created,
	}
}

func TestGameRegistry_AddGetDelete(t *testing.T) {
	ctx := context.Background()
	r := NewGameRegistry(0)

	if err := r.Add(ctx, entry("g1", time.Now())); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Add(ctx, entry("g1", time.Now())); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := r.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.HasPlayer("alice") || got.HasPlayer("bob") {
		t.Errorf("unexpected players %v", got.Settings.Players)
	}

	if err := r.Delete(ctx, "g1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.Get(ctx, "g1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := r.Delete(ctx, "g1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestGameRegistry_Limit(t *testing.T) {
	ctx := context.Background()
	r := NewGameRegistry(2)
	for i := 0; i < 2; i++ {
		if err := r.Add(ctx, entry(fmt.Sprintf("g%d", i), time.Now())); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if err := r.Add(ctx, entry("g2", time.Now())); !errors.Is(err, repository.ErrRegistryFull) {
		t.Errorf("expected ErrRegistryFull, got %v", err)
	}
	if n, _ := r.Count(ctx); n != 2 {
		t.Errorf("expected 2 games, got %d", n)
	}
}

func TestGameRegistry_ListOrder(t *testing.T) {
	ctx := context.Background()
	r := NewGameRegistry(0)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.Add(ctx, entry("late", base.Add(time.Minute)))
	r.Add(ctx, entry("b", base))
	r.Add(ctx, entry("a", base))

	list, _ := r.List(ctx)
	want := []string{"a", "b", "late"}
	for i, e := range list {
		if e.ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], e.ID)
		}
	}
}

func TestGameRegistry_Concurrent(t *testing.T) {
	ctx := context.Background()
	r := NewGameRegistry(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("g%d", i)
			r.Add(ctx, entry(id, time.Now()))
			if e, err := r.Get(ctx, id); err == nil {
				e.Lock()
				e.Touch(time.Now())
				e.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if n, _ := r.Count(ctx); n != 50 {
		t.Errorf("expected 50 games, got %d", n)
	}
}

func TestScoreBoard(t *testing.T) {
	ctx := context.Background()
	s := NewScoreBoard()
	s.AddWin(ctx, "alice")
	s.AddWin(ctx, "alice")
	s.AddWin(ctx, "Bot")
	s.RemoveWin(ctx, "Bot")
	s.RemoveWin(ctx, "nobody")

	scores, _ := s.Scores(ctx)
	if scores["alice"] != 2 {
		t.Errorf("expected alice=2, got %d", scores["alice"])
	}
	if _, ok := scores["Bot"]; ok {
		t.Errorf("expected Bot removed at zero, got %v", scores)
	}
	if len(scores) != 1 {
		t.Errorf("expected one entry, got %v", scores)
	}
}
