package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/service"
	"github.com/skrapbuk/skrapbuk/internal/transport/http/middleware"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

type EventHandler struct {
	event *service.EventService
	log   *logging.Logger
}

func NewEventHandler(event *service.EventService, log *logging.Logger) *EventHandler {
	return &EventHandler{event: event, log: log}
}

// Countdown reports the time remaining until the event starts.
func (h *EventHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	countdown := h.event.Countdown()
	writeJSON(w, http.StatusOK, map[string]string{"countdown": countdown.String()})
}

// Start triggers the one-shot pairing run. If the event was already
// started, the response names who started it and nothing is mutated.
func (h *EventHandler) Start(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	result, err := h.event.Start(r.Context(), principal.Snowflake)
	if err != nil {
		var already *service.AlreadyStartedError
		if errors.As(err, &already) {
			writeError(w, http.StatusConflict, "CONFLICT", already.Error())
			return
		}
		h.log.Error("handler error", logrus.Fields{"operation": "event.start", "error": err.Error()})
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Pairing run failed; state may be partially committed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
