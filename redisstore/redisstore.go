// Package redisstore implements fiber's session Storage interface on top of
// redis, for deployments where sessions must survive process restarts or be
// shared across instances. The in-memory default remains fine for a single
// process.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a redis-backed fiber Storage
type Storage struct {
	client *redis.Client
}

// Config holds the redis connection options
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New connects to redis and returns a Storage
func New(cfg Config) *Storage {
	return &Storage{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// NewFromClient wraps an existing client
func NewFromClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Get returns the value for key, nil when missing
func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	val, err := s.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

// Set stores value under key with an optional expiration
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.client.Set(context.Background(), key, val, exp).Err()
}

// Delete removes key
func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.client.Del(context.Background(), key).Err()
}

// Reset drops every key in the configured database
func (s *Storage) Reset() error {
	return s.client.FlushDB(context.Background()).Err()
}

// Close releases the underlying client
func (s *Storage) Close() error {
	return s.client.Close()
}
