package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/service"
	"github.com/skrapbuk/skrapbuk/internal/transport/http/middleware"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
	"github.com/skrapbuk/skrapbuk/pkg/validator"
)

type ArtworkHandler struct {
	artwork *service.ArtworkService
	log     *logging.Logger
}

func NewArtworkHandler(artwork *service.ArtworkService, log *logging.Logger) *ArtworkHandler {
	return &ArtworkHandler{artwork: artwork, log: log}
}

// Upload accepts a multipart artwork submission. The request body is capped
// a little above the artwork ceiling so the size check runs against the
// payload actually read.
func (h *ArtworkHandler) Upload(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, validator.MaxArtworkBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided")
		return
	}
	defer file.Close()

	artwork, err := h.artwork.Upload(r.Context(), principal.Snowflake, header.Filename, file)
	if err != nil {
		if !writeServiceError(w, err) {
			h.internal(w, "artwork.upload", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, artwork)
}

// Own serves the caller's most recent submission.
func (h *ArtworkHandler) Own(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	_, path, err := h.artwork.Own(r.Context(), principal.Snowflake)
	if err != nil {
		if !writeServiceError(w, err) {
			h.internal(w, "artwork.own", err)
		}
		return
	}

	http.ServeFile(w, r, path)
}

// FromPartner serves the artwork the caller's partner submitted.
func (h *ArtworkHandler) FromPartner(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	_, path, err := h.artwork.FromPartner(r.Context(), principal.Snowflake)
	if err != nil {
		if !writeServiceError(w, err) {
			h.internal(w, "artwork.partner", err)
		}
		return
	}

	http.ServeFile(w, r, path)
}

func (h *ArtworkHandler) internal(w http.ResponseWriter, operation string, err error) {
	h.log.Error("handler error", logrus.Fields{"operation": operation, "error": err.Error()})
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
}
