package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/discord"
	"github.com/skrapbuk/skrapbuk/internal/service"
	"github.com/skrapbuk/skrapbuk/internal/transport/http/middleware"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

type UserHandler struct {
	participants *service.ParticipantService
	answers      *service.AnswersService
	log          *logging.Logger
}

func NewUserHandler(participants *service.ParticipantService, answers *service.AnswersService, log *logging.Logger) *UserHandler {
	return &UserHandler{participants: participants, answers: answers, log: log}
}

func identityFrom(p *middleware.Principal) *discord.Identity {
	return &discord.Identity{
		Snowflake: p.Snowflake,
		Username:  p.Username,
		AvatarURL: p.AvatarURL,
	}
}

// Me returns the caller's profile with freshly derived membership and admin
// flags.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	profile, err := h.participants.Profile(r.Context(), identityFrom(principal), principal.AccessToken)
	if err != nil {
		h.internal(w, "users.me", err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Join signs the caller up for the event.
func (h *UserHandler) Join(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	participant, err := h.participants.Join(r.Context(), identityFrom(principal), principal.AccessToken)
	if err != nil {
		if !writeServiceError(w, err) {
			h.internal(w, "users.join", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Joined Skrapbuk Christmas",
		"participant": participant,
	})
}

// Partner returns the caller's assigned partner and their questionnaire.
func (h *UserHandler) Partner(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	details, err := h.participants.Partner(r.Context(), principal.Snowflake)
	if err != nil {
		if !writeServiceError(w, err) {
			h.internal(w, "users.partner", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// All lists every participant, for admins.
func (h *UserHandler) All(w http.ResponseWriter, r *http.Request) {
	participants, err := h.participants.List(r.Context())
	if err != nil {
		h.internal(w, "users.all", err)
		return
	}

	writeJSON(w, http.StatusOK, participants)
}

// SubmitAnswers validates and upserts the caller's questionnaire.
func (h *UserHandler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var input service.AnswersInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	answers, err := h.answers.Submit(r.Context(), principal.Snowflake, input)
	if err != nil {
		if !writeServiceError(w, err) {
			h.internal(w, "users.answers.submit", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, answers)
}

// GetAnswers returns the caller's own questionnaire, if submitted.
func (h *UserHandler) GetAnswers(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	answers, err := h.answers.Get(r.Context(), principal.Snowflake)
	if err != nil {
		h.internal(w, "users.answers.get", err)
		return
	}
	if answers == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "No answers submitted yet")
		return
	}

	writeJSON(w, http.StatusOK, answers)
}

func (h *UserHandler) internal(w http.ResponseWriter, operation string, err error) {
	h.log.Error("handler error", logrus.Fields{"operation": operation, "error": err.Error()})
	writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
}
