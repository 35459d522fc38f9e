package model

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a session cookie to one authenticated upstream account. Once
// created it is tied to exactly one (server_url, access_token) pair; there is
// no token refresh, upstream expiry surfaces as an upstream auth failure.
type Session struct {
	SessionID   uuid.UUID `json:"session_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	AccessToken string    `json:"access_token"`
	ServerURL   string    `json:"server_url"`
	DeviceID    string    `json:"device_id"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry. A zero ExpiresAt
// means the record predates expiry enforcement and never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Info returns the client-facing view of the session. The access token is
// never part of it.
func (s *Session) Info() *SessionInfo {
	return &SessionInfo{
		SessionID: s.SessionID,
		UserID:    s.UserID,
		Username:  s.Username,
		ServerURL: s.ServerURL,
	}
}

// SessionInfo is the sanitized session view returned by login and "me".
type SessionInfo struct {
	SessionID uuid.UUID `json:"session_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ServerURL string    `json:"server_url"`
}
