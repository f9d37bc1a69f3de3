package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/scs/v2"
)

// Source picks the medium for the browser behind ctx.
type Source interface {
	Medium(ctx context.Context) (Medium, error)
}

// StaticSource hands out the same medium to everyone.
type StaticSource struct {
	M Medium
}

func (s StaticSource) Medium(context.Context) (Medium, error) {
	return s.M, nil
}

// SessionSource keeps each browser's values in its session.
type SessionSource struct {
	medium *Session
}

func NewSessionSource(sm *scs.SessionManager, quota int) SessionSource {
	return SessionSource{medium: NewSession(sm, quota)}
}

func (s SessionSource) Medium(context.Context) (Medium, error) {
	return s.medium, nil
}

// RedisSource keeps each browser's values in redis, keyed by the profile
// id held in its session.
type RedisSource struct {
	client RedisClient
	sm     *scs.SessionManager
	ttl    time.Duration
}

func NewRedisSource(client RedisClient, sm *scs.SessionManager, ttl time.Duration) RedisSource {
	return RedisSource{client: client, sm: sm, ttl: ttl}
}

func (s RedisSource) Medium(ctx context.Context) (Medium, error) {
	profile, err := ProfileID(ctx, s.sm)
	if err != nil {
		return nil, fmt.Errorf("resolving browser profile: %w", err)
	}
	return NewRedis(s.client, profile, s.ttl), nil
}
