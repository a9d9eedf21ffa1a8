package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/domain"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

// Store implements secondary.KeyValueStore on Redis strings. Keys are
// namespaced with a prefix so several deployments can share one database.
type Store struct {
	client redis.Cmdable
	prefix string
	logger *zap.Logger
}

var _ secondary.KeyValueStore = (*Store)(nil)

// NewStore creates a Redis-backed key-value store.
func NewStore(client redis.Cmdable, prefix string, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		logger: logger.Named("redis-store"),
	}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

// Put stores value under key without expiry.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}

	s.logger.Debug("value stored",
		zap.String("key", key),
		zap.Int("size", len(value)),
	)
	return nil
}

// Exists reports whether key holds a value.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %q: %w", key, err)
	}
	return n > 0, nil
}

func (s *Store) key(key string) string {
	return s.prefix + key
}
