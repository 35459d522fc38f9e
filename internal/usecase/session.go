package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iamngoni/media-savant/internal/config"
	"github.com/iamngoni/media-savant/internal/jellyfin"
	"github.com/iamngoni/media-savant/internal/metrics"
	"github.com/iamngoni/media-savant/internal/model"
	"github.com/iamngoni/media-savant/internal/repository"
)

// SessionUsecase defines the session lifecycle operations.
type SessionUsecase interface {
	Login(ctx context.Context, params LoginParams) (*model.SessionInfo, error)
	Resolve(ctx context.Context, cookieValue string) (*model.Session, error)
	Logout(ctx context.Context, cookieValue string)
}

// LoginParams defines the parameters for the upstream credential exchange.
type LoginParams struct {
	ServerURL string
	Username  string
	Password  string
	DeviceID  string
}

// ErrNoSession is returned when the request carries no parseable session id.
// It is distinct from repository.ErrSessionNotFound: no store lookup happens.
var ErrNoSession = errors.New("missing session")

type sessionUsecase struct {
	sessions repository.SessionRepository
	upstream *jellyfin.Client
	logger   zerolog.Logger
	identity config.AppConfig
	ttl      time.Duration
}

// NewSessionUsecase wires the session manager.
func NewSessionUsecase(
	sessions repository.SessionRepository,
	upstream *jellyfin.Client,
	logger *zerolog.Logger,
	cfg *config.Config,
) SessionUsecase {
	return &sessionUsecase{
		sessions: sessions,
		upstream: upstream,
		logger:   logger.With().Str("component", "session").Logger(),
		identity: cfg.App,
		ttl:      cfg.Auth.SessionTTL,
	}
}

// Login exchanges credentials with the upstream, mints a session bound to the
// returned token, persists it, and returns the sanitized view. Upstream
// failures pass through as jellyfin.ErrAuthRejected or
// jellyfin.ErrUnreachable; store failures wrap repository.ErrStore.
func (u *sessionUsecase) Login(ctx context.Context, params LoginParams) (*model.SessionInfo, error) {
	serverURL := jellyfin.NormalizeServerURL(params.ServerURL)

	deviceID := params.DeviceID
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	authHeader := jellyfin.BuildAuthHeader(
		u.identity.ClientName,
		u.identity.DeviceName,
		deviceID,
		u.identity.ClientVersion,
		"",
	)

	auth, err := u.upstream.AuthenticateByName(ctx, serverURL, params.Username, params.Password, authHeader)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.Session{
		SessionID:   uuid.New(),
		UserID:      auth.UserID,
		Username:    auth.Username,
		AccessToken: auth.AccessToken,
		ServerURL:   serverURL,
		DeviceID:    deviceID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(u.ttl),
	}

	if err := u.sessions.Put(ctx, session); err != nil {
		return nil, err
	}

	metrics.SessionsCreated.Inc()
	u.logger.Info().
		Str("session_id", session.SessionID.String()).
		Str("username", session.Username).
		Str("server_url", session.ServerURL).
		Msg("session created")

	return session.Info(), nil
}

// Resolve maps a session cookie value to its stored session. An absent or
// malformed value fails with ErrNoSession before any store call.
func (u *sessionUsecase) Resolve(ctx context.Context, cookieValue string) (*model.Session, error) {
	if cookieValue == "" {
		return nil, ErrNoSession
	}

	id, err := uuid.Parse(cookieValue)
	if err != nil {
		return nil, ErrNoSession
	}

	return u.sessions.Get(ctx, id)
}

// Logout deletes the session named by the cookie, if any. It is best-effort:
// a missing or malformed cookie is not an error, and store failures are only
// logged.
func (u *sessionUsecase) Logout(ctx context.Context, cookieValue string) {
	id, err := uuid.Parse(cookieValue)
	if err != nil {
		return
	}

	if err := u.sessions.Delete(ctx, id); err != nil {
		u.logger.Warn().Err(err).Str("session_id", id.String()).Msg("failed to delete session")
	}
}
