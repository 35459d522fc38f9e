package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iamngoni/media-savant/internal/config"
	"github.com/iamngoni/media-savant/internal/proxy"
	"github.com/iamngoni/media-savant/internal/usecase"
)

// ProxyHandler serves the authenticated relay endpoints: the generic
// /jellyfin passthrough and the direct /stream path.
type ProxyHandler struct {
	sessions   usecase.SessionUsecase
	forwarder  *proxy.Forwarder
	logger     zerolog.Logger
	cookieName string
}

// NewProxyHandler wires the relay endpoints.
func NewProxyHandler(
	sessions usecase.SessionUsecase,
	forwarder *proxy.Forwarder,
	logger *zerolog.Logger,
	cfg *config.Config,
) *ProxyHandler {
	return &ProxyHandler{
		sessions:   sessions,
		forwarder:  forwarder,
		logger:     logger.With().Str("component", "proxy").Logger(),
		cookieName: cfg.Auth.CookieName,
	}
}

// Relay forwards any request under /jellyfin to the session's upstream.
func (h *ProxyHandler) Relay(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Resolve(r.Context(), sessionCookieValue(r, h.cookieName))
	if err != nil {
		respondResolveError(w, err)
		return
	}

	// chi.URLParam hands back the decoded wildcard, so a percent-escaped
	// segment would reach the upstream decoded. Take the raw remainder
	// instead; the upstream sees the same bytes the client sent.
	tail := strings.TrimPrefix(r.URL.EscapedPath(), "/jellyfin")
	tail = strings.TrimPrefix(tail, "/")
	if err := h.forwarder.Forward(w, r, session, tail); err != nil {
		h.logger.Error().Err(err).Str("method", r.Method).Str("tail", tail).Msg("proxy request failed")

		if errors.Is(err, proxy.ErrMethodNotSupported) {
			respondError(w, http.StatusMethodNotAllowed, "unsupported HTTP method")
			return
		}
		respondError(w, http.StatusBadGateway, "proxy request failed")
	}
}

// Stream relays the direct video stream for an item id.
func (h *ProxyHandler) Stream(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Resolve(r.Context(), sessionCookieValue(r, h.cookieName))
	if err != nil {
		respondResolveError(w, err)
		return
	}

	itemID := chi.URLParam(r, "id")
	if err := h.forwarder.Stream(w, r, session, itemID); err != nil {
		h.logger.Error().Err(err).Str("item_id", itemID).Msg("streaming request failed")
		respondError(w, http.StatusBadGateway, "streaming request failed")
	}
}
