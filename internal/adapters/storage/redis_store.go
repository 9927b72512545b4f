package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"weathernow.app/internal/config"
	"weathernow.app/pkg/errors"
)

// RedisStore implements the KeyValueStore port using Redis. Preference slots
// are stored without expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store and verifies connectivity
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewConfigurationError("failed to connect to Redis", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.NewValidationError("store key cannot be empty")
	}

	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, errors.NewStorageError("redis get operation failed", err)
	}

	return value, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return errors.NewStorageError("redis set operation failed", err)
	}

	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("store key cannot be empty")
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errors.NewStorageError("redis del operation failed", err)
	}

	return nil
}

// Close releases the underlying Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
