package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/freeeve/broadside/internal/auth"
	"github.com/freeeve/broadside/internal/service"
)

// GameHandler handles game endpoints.
type GameHandler struct {
	gameSvc *service.GameService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(gameSvc *service.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// CreateGame handles POST /api/v1/games
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	player := auth.PlayerFromContext(r.Context())
	var req service.CreateGameInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := h.gameSvc.CreateGame(r.Context(), player, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

// ListGames handles GET /api/v1/games
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	player := auth.PlayerFromContext(r.Context())
	games, err := h.gameSvc.ListGames(r.Context(), player)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// GetGame handles GET /api/v1/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameSvc.GetGame(r.Context(), r.PathValue("id"), auth.PlayerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// Attack handles POST /api/v1/games/{id}/attack
func (h *GameHandler) Attack(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Row *int `json:"row"`
		Col *int `json:"col"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Row == nil || req.Col == nil {
		writeError(w, http.StatusBadRequest, "row and col are required")
		return
	}

	result, err := h.gameSvc.Attack(r.Context(), r.PathValue("id"), auth.PlayerFromContext(r.Context()), *req.Row, *req.Col)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// History handles GET /api/v1/games/{id}/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	moves, err := h.gameSvc.History(r.Context(), r.PathValue("id"), auth.PlayerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"moves": moves, "count": len(moves)})
}

// Undo handles POST /api/v1/games/{id}/undo. The body gives the number of
// rounds to take back; one when omitted.
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Rounds int `json:"rounds"`
	}{Rounds: 1}
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.gameSvc.Undo(r.Context(), r.PathValue("id"), auth.PlayerFromContext(r.Context()), req.Rounds)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RestartGame handles POST /api/v1/games/{id}/restart
func (h *GameHandler) RestartGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.gameSvc.RestartGame(r.Context(), r.PathValue("id"), auth.PlayerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// DeleteGame handles DELETE /api/v1/games/{id}
func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.gameSvc.DeleteGame(r.Context(), r.PathValue("id"), auth.PlayerFromContext(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Scoreboard handles GET /api/v1/scoreboard
func (h *GameHandler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	scores, err := h.gameSvc.Scoreboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}
