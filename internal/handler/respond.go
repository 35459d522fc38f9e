package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iamngoni/media-savant/internal/model"
	"github.com/iamngoni/media-savant/internal/repository"
	"github.com/iamngoni/media-savant/internal/usecase"
)

func decodeJSON(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("request body required")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondOK(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, model.OK(data))
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, model.Err(message))
}

// respondResolveError maps session resolution failures to their statuses:
// unauthenticated conditions are 401, store faults are 500.
func respondResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNoSession):
		respondError(w, http.StatusUnauthorized, "missing session")
	case errors.Is(err, repository.ErrSessionNotFound):
		respondError(w, http.StatusUnauthorized, "session not found")
	default:
		respondError(w, http.StatusInternalServerError, "failed to load session")
	}
}

// sessionCookieValue returns the raw session cookie value, or "" when absent.
func sessionCookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
