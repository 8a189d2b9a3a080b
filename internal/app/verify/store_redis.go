package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// redisKeyPrefix namespaces challenge keys within a shared Redis instance.
	redisKeyPrefix = "supportchat:verify:"

	// storeTTL bounds how long an abandoned challenge key lingers in Redis.
	// This is storage hygiene, not code expiry: the widget's documented
	// behavior has no expiry, and 24h is far beyond any live widget session.
	storeTTL = 24 * time.Hour
)

// RedisStore is the Redis-backed challenge store. It keeps verification state
// out of process memory so multiple backend replicas can serve one guest.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore for the given address.
func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

// Ping verifies the Redis connection is usable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Set writes the live challenge for a guest, superseding any prior record.
func (s *RedisStore) Set(ctx context.Context, guestID string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal challenge record: %w", err)
	}

	return s.client.Set(ctx, redisKeyPrefix+guestID, raw, storeTTL).Err()
}

// Get returns the live challenge for a guest, or ErrNoChallenge.
func (s *RedisStore) Get(ctx context.Context, guestID string) (Record, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+guestID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNoChallenge
	}
	if err != nil {
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, fmt.Errorf("unmarshal challenge record: %w", err)
	}

	return rec, nil
}

// Clear removes the live challenge for a guest.
func (s *RedisStore) Clear(ctx context.Context, guestID string) error {
	return s.client.Del(ctx, redisKeyPrefix+guestID).Err()
}
