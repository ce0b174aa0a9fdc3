package memory

import (
	"context"
	"sync"
)

// ScoreBoard is the in-process repository.ScoreBoard.
type ScoreBoard struct {
	mu   sync.Mutex
	wins map[string]int
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{wins: make(map[string]int)}
}

func (s *ScoreBoard) AddWin(_ context.Context, actor string) error {
	s.mu.Lock()
	s.wins[actor]++
	s.mu.Unlock()
	return nil
}

// RemoveWin takes back one win, used when an undo reopens a finished game.
// A tally never goes below zero.
func (s *ScoreBoard) RemoveWin(_ context.Context, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch n := s.wins[actor]; {
	case n > 1:
		s.wins[actor] = n - 1
	case n == 1:
		delete(s.wins, actor)
	}
	return nil
}

func (s *ScoreBoard) Scores(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.wins))
	for k, v := range s.wins {
		out[k] = v
	}
	return out, nil
}
