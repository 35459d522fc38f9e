package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iamngoni/media-savant/internal/model"
)

type sessionRedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRedisRepository connects to Redis and returns a repository that
// stores sessions under session:<id> with the given TTL. The go-redis client
// pools connections, so the repository is safe for concurrent use without any
// additional locking.
func NewSessionRedisRepository(
	ctx context.Context,
	logger *zerolog.Logger,
	url string,
	ttl time.Duration,
) SessionRepository {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	return &sessionRedisRepository{client: client, ttl: ttl}
}

func (r *sessionRedisRepository) Put(ctx context.Context, session *model.Session) error {
	value, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: encode session: %v", ErrStore, err)
	}

	if err := r.client.Set(ctx, sessionKey(session.SessionID), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

func (r *sessionRedisRepository) Get(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	value, err := r.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	var session model.Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, fmt.Errorf("%w: decode session: %v", ErrStore, err)
	}

	// Redis enforces the TTL, but a record written by an older build without
	// one still honors its own expiry.
	if session.Expired(time.Now()) {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (r *sessionRedisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}
