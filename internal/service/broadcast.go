package service

// Event types sent to clients watching a game.
const (
	EventAttackResolved = "attack_resolved"
	EventGameFinished   = "game_finished"
	EventMovesUndone    = "moves_undone"
	EventGameRestarted  = "game_restarted"
	EventGameDeleted    = "game_deleted"
)

// Broadcaster sends real-time events to connected clients.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastGameEvent(gameID string, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for testing or when WS is disabled.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameEvent(string, string, any) {}
