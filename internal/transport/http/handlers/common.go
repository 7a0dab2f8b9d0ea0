package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skrapbuk/skrapbuk/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeServiceError maps a service failure onto the response envelope.
// Validation failures carry their per-field messages.
func writeServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{
				"code":   "VALIDATION_ERROR",
				"fields": verr.Fields,
			},
		})
	case errors.Is(err, service.ErrAlreadyJoined):
		writeError(w, http.StatusConflict, "CONFLICT", "You have already joined skrapbuk, you can't join again")
	case errors.Is(err, service.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Participant not found")
	case errors.Is(err, service.ErrNotJoined):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You have not joined the event")
	case errors.Is(err, service.ErrNoPartner):
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You have not been assigned a partner yet")
	case errors.Is(err, service.ErrNoArtwork):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "No artwork submitted")
	default:
		return false
	}
	return true
}
