package handler

import "github.com/freeeve/broadside/internal/service"

// BroadcastGameEvent implements service.Broadcaster using the WebSocket hub.
// A deleted game's subscriptions are dropped once the event is queued.
func (h *Hub) BroadcastGameEvent(gameID string, eventType string, data any) {
	h.BroadcastToGame(gameID, WSEvent{
		Type:   eventType,
		GameID: gameID,
		Data:   data,
	})
	if eventType == service.EventGameDeleted {
		h.CloseGame(gameID)
	}
}
