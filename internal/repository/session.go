package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iamngoni/media-savant/internal/model"
)

var (
	// ErrSessionNotFound is returned when no live session exists for the id.
	// Expired records read before the store reaps them count as not found.
	ErrSessionNotFound = errors.New("session not found")

	// ErrStore marks infrastructure failures: store unreachable, malformed
	// stored value. Callers surface these as server errors, never as a
	// missing session.
	ErrStore = errors.New("session store failure")
)

// SessionRepository defines the interface for session persistence operations.
type SessionRepository interface {
	Put(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id uuid.UUID) (*model.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}
