package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore persists the token in Redis under a single key. Intended
// for shared kiosk terminals where the session must follow the terminal, not
// the process. A TTL of zero persists without expiry.
type RedisTokenStore struct {
	redis redis.UniversalClient
	key   string
	ttl   time.Duration
}

// NewRedisTokenStore creates a store on the given client. An empty key falls
// back to [DefaultStorageKey].
func NewRedisTokenStore(client redis.UniversalClient, key string, ttl time.Duration) *RedisTokenStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &RedisTokenStore{
		redis: client,
		key:   key,
		ttl:   ttl,
	}
}

// Load reads the persisted token. A missing key means no token.
func (r *RedisTokenStore) Load(ctx context.Context) (string, error) {
	tok, err := r.redis.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return tok, nil
}

// Save writes the token, refreshing the TTL on every write.
func (r *RedisTokenStore) Save(ctx context.Context, tok string) error {
	if err := r.redis.Set(ctx, r.key, tok, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Clear deletes the key. Deleting an absent key is not an error.
func (r *RedisTokenStore) Clear(ctx context.Context) error {
	if err := r.redis.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
