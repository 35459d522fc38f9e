package handler

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iamngoni/media-savant/internal/config"
	"github.com/iamngoni/media-savant/internal/jellyfin"
	"github.com/iamngoni/media-savant/internal/payload"
)

// SetupHandler serves the pre-login server discovery probe.
type SetupHandler struct {
	upstream *jellyfin.Client
	validate *validator.Validate
	logger   zerolog.Logger
	identity config.AppConfig
}

// NewSetupHandler wires the setup endpoints.
func NewSetupHandler(
	upstream *jellyfin.Client,
	validate *validator.Validate,
	logger *zerolog.Logger,
	cfg *config.Config,
) *SetupHandler {
	return &SetupHandler{
		upstream: upstream,
		validate: validate,
		logger:   logger.With().Str("component", "setup").Logger(),
		identity: cfg.App,
	}
}

// Validate probes a candidate server URL and returns its raw public system
// info. The probe authenticates nothing and touches no state; the device id
// in its header is a throwaway.
func (h *SetupHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req payload.SetupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	serverURL := jellyfin.NormalizeServerURL(req.ServerURL)
	authHeader := jellyfin.BuildAuthHeader(
		h.identity.ClientName,
		h.identity.DeviceName,
		uuid.NewString(),
		h.identity.ClientVersion,
		"",
	)

	info, err := h.upstream.PublicSystemInfo(r.Context(), serverURL, authHeader)
	if err != nil {
		h.logger.Error().Err(err).Str("server_url", serverURL).Msg("server validation failed")
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to reach jellyfin server: %v", err))
		return
	}

	respondOK(w, info)
}
