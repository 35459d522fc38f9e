package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/iamngoni/media-savant/internal/config"
	"github.com/iamngoni/media-savant/internal/jellyfin"
	"github.com/iamngoni/media-savant/internal/payload"
	"github.com/iamngoni/media-savant/internal/usecase"
)

// AuthHandler serves the session lifecycle endpoints.
type AuthHandler struct {
	sessions usecase.SessionUsecase
	validate *validator.Validate
	logger   zerolog.Logger
	cookie   config.AuthConfig
}

// NewAuthHandler wires the auth endpoints.
func NewAuthHandler(
	sessions usecase.SessionUsecase,
	validate *validator.Validate,
	logger *zerolog.Logger,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		validate: validate,
		logger:   logger.With().Str("component", "auth").Logger(),
		cookie:   cfg.Auth,
	}
}

// Login exchanges credentials for a session and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := h.sessions.Login(r.Context(), usecase.LoginParams{
		ServerURL: req.ServerURL,
		Username:  req.Username,
		Password:  req.Password,
		DeviceID:  req.DeviceID,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("username", req.Username).Msg("login failed")

		switch {
		case errors.Is(err, jellyfin.ErrAuthRejected):
			respondError(w, http.StatusUnauthorized, "jellyfin auth rejected")
		case errors.Is(err, jellyfin.ErrUnreachable):
			respondError(w, http.StatusBadGateway, "jellyfin auth failed")
		default:
			respondError(w, http.StatusInternalServerError, "failed to save session")
		}
		return
	}

	http.SetCookie(w, h.sessionCookie(info.SessionID.String(), 0))
	respondOK(w, info)
}

// Logout deletes the session, if any, and clears the cookie. Always 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if value := sessionCookieValue(r, h.cookie.CookieName); value != "" {
		h.sessions.Logout(r.Context(), value)
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	respondOK(w, map[string]bool{"logged_out": true})
}

// Me returns the sanitized view of the caller's session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Resolve(r.Context(), sessionCookieValue(r, h.cookie.CookieName))
	if err != nil {
		respondResolveError(w, err)
		return
	}

	respondOK(w, session.Info())
}

// sessionCookie builds the session cookie. It is always http-only,
// same-site-lax, path /; the secure flag comes from configuration. A negative
// maxAge clears it.
func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
