package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iamngoni/media-savant/internal/model"
)

// sessionMemoryRepository is a thread-safe in-memory session store used by
// tests and local development without a Redis instance.
type sessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]model.Session
}

// NewSessionMemoryRepository returns an empty in-memory repository.
func NewSessionMemoryRepository() SessionRepository {
	return &sessionMemoryRepository{
		sessions: make(map[uuid.UUID]model.Session),
	}
}

func (r *sessionMemoryRepository) Put(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.SessionID] = *session
	return nil
}

func (r *sessionMemoryRepository) Get(_ context.Context, id uuid.UUID) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok || session.Expired(time.Now()) {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (r *sessionMemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
