package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "lh"

// RedisClient is the part of the go-redis API the Redis medium uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd
}

// Redis stores one browser profile's values under
// lh:profile:<profile>:<key>. A zero ttl keeps values forever.
type Redis struct {
	client  RedisClient
	profile string
	ttl     time.Duration
}

func NewRedis(client RedisClient, profile string, ttl time.Duration) *Redis {
	return &Redis{client: client, profile: profile, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.Key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: redis get: %v", ErrUnavailable, err)
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.Key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", ErrUnavailable, err)
	}
	return nil
}

// Key returns the namespaced redis key for key.
func (r *Redis) Key(key string) string {
	parts := []string{keyNamespace, "profile", strings.TrimSpace(r.profile), strings.TrimSpace(key)}
	return strings.Join(parts, ":")
}
