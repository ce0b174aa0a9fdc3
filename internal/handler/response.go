package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/broadside/internal/repository"
	"github.com/freeeve/broadside/internal/service"
	"github.com/freeeve/broadside/pkg/battleship"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads and decodes JSON from a request body.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// errorStatus maps service and engine errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotInGame):
		return http.StatusForbidden
	case errors.Is(err, battleship.ErrNotYourTurn),
		errors.Is(err, battleship.ErrGameOver),
		errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, repository.ErrRegistryFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrInvalidDifficulty),
		errors.Is(err, service.ErrInvalidPlayerName),
		errors.Is(err, battleship.ErrInvalidPlayers),
		errors.Is(err, battleship.ErrInvalidGridSize),
		errors.Is(err, battleship.ErrInvalidFleet),
		errors.Is(err, battleship.ErrInvalidPlacement),
		errors.Is(err, battleship.ErrOutOfBounds),
		errors.Is(err, battleship.ErrInvalidUndoCount),
		errors.Is(err, battleship.ErrDeploymentSpaceExhausted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err with the status errorStatus picks. Internal
// errors are logged and their text is not sent to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
