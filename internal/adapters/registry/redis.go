package registry

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "refresh:"

// Redis is the shared TokenRegistry for multi-instance deployments.
// Expiry rides on the key TTL, so there is nothing to prune.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed registry. A ttl of zero stores entries
// without expiry.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Store inserts or overwrites the mapping for token.
func (r *Redis) Store(ctx context.Context, token, email string) error {
	return r.client.Set(ctx, redisKeyPrefix+token, email, r.ttl).Err()
}

// Redeem fetches and deletes the entry in one GETDEL round trip, which
// gives the exactly-one-winner guarantee under concurrent redemptions.
func (r *Redis) Redeem(ctx context.Context, token string) (string, error) {
	email, err := r.client.GetDel(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return email, nil
}
