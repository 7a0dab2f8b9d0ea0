package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/skrapbuk/skrapbuk/internal/service"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	authService *service.AuthService
	frontendURL string
}

func NewAuthHandler(authService *service.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{authService: authService, frontendURL: frontendURL}
}

// Login redirects the browser to Discord's authorize page with a fresh CSRF
// state nonce.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.authService.LoginURL(state), http.StatusTemporaryRedirect)
}

// Callback completes the OAuth flow and bounces the browser back to the
// frontend profile page with the session token.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "OAuth state mismatch")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing authorization code")
		return
	}

	token, err := h.authService.HandleCallback(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Discord authorization failed")
		return
	}

	// Clear the state cookie now that the flow is complete.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	http.Redirect(w, r, h.frontendURL+"/profile#token="+token, http.StatusTemporaryRedirect)
}
