package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	redisclient "github.com/swiftbasket/swiftbasket-backend/pkg/redis"
)

// Carts idle longer than this are dropped from Redis.
const cartTTL = 30 * 24 * time.Hour

type cartKV interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(userID string) string
}

// RedisStore keeps each user's lines as a JSON array under a
// namespaced key.
type RedisStore struct {
	kv    cartKV
	keyer cartKeyer
	ttl   time.Duration
}

// NewRedisStore builds a cart store backed by the shared Redis client.
func NewRedisStore(client *redisclient.Client) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &RedisStore{
		kv:    client,
		keyer: client,
		ttl:   cartTTL,
	}, nil
}

// Load returns the persisted lines, or nil when no cart exists.
func (s *RedisStore) Load(ctx context.Context, userID string) ([]Line, error) {
	raw, err := s.kv.Get(ctx, s.keyer.CartKey(userID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decoding cart payload: %w", err)
	}
	return lines, nil
}

// Save overwrites the persisted lines, deleting the key when the cart
// is empty.
func (s *RedisStore) Save(ctx context.Context, userID string, lines []Line) error {
	key := s.keyer.CartKey(userID)
	if len(lines) == 0 {
		return s.kv.Del(ctx, key)
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encoding cart payload: %w", err)
	}
	return s.kv.Set(ctx, key, payload, s.ttl)
}

// Clear deletes the persisted cart.
func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	return s.kv.Del(ctx, s.keyer.CartKey(userID))
}
