package service

import (
	"context"
	"errors"
	"sync"

	"github.com/freeeve/broadside/internal/repository"
	"github.com/freeeve/broadside/internal/repository/memory"
)

type broadcastEvent struct {
	gameID    string
	eventType string
	data      any
}

type mockBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (m *mockBroadcaster) BroadcastGameEvent(gameID, eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, broadcastEvent{gameID, eventType, data})
}

func (m *mockBroadcaster) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		out = append(out, e.eventType)
	}
	return out
}

// failingRegistry rejects every write, for error paths.
type failingRegistry struct {
	repository.GameRegistry
}

var errRegistryDown = errors.New("registry down")

func (failingRegistry) Add(context.Context, *repository.GameEntry) error { return errRegistryDown }

func newTestService() (*GameService, *mockBroadcaster) {
	b := &mockBroadcaster{}
	svc := NewGameService(memory.NewGameRegistry(0), memory.NewScoreBoard(), b)
	svc.SetSeed(42)
	return svc, b
}
