package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/service"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

type BanHandler struct {
	bans *service.BanService
	log  *logging.Logger
}

func NewBanHandler(bans *service.BanService, log *logging.Logger) *BanHandler {
	return &BanHandler{bans: bans, log: log}
}

// Ban excludes a participant. The reason is optional (`?reason=`).
func (h *BanHandler) Ban(w http.ResponseWriter, r *http.Request) {
	snowflake := r.PathValue("snowflake")
	reason := r.URL.Query().Get("reason")

	msg, err := h.bans.Ban(r.Context(), snowflake, reason)
	if err != nil {
		if !writeServiceError(w, err) {
			h.internal(w, "bans.ban", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// Unban lifts a participant's ban.
func (h *BanHandler) Unban(w http.ResponseWriter, r *http.Request) {
	snowflake := r.PathValue("snowflake")

	msg, err := h.bans.Unban(r.Context(), snowflake)
	if err != nil {
		if !writeServiceError(w, err) {
			h.internal(w, "bans.unban", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (h *BanHandler) internal(w http.ResponseWriter, operation string, err error) {
	h.log.Error("handler error", logrus.Fields{"operation": operation, "error": err.Error()})
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
}
