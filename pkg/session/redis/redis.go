// Package redis stores login sessions in Redis with a TTL.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"nursery/pkg/session"
)

var _ session.Store = (*Store)(nil)

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store is a Redis-backed session.Store.
type Store struct {
	client *redis.Client
}

// New connects to Redis.
func New(cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Store{client: client}, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Create stores a new session for user that expires after ttl.
func (s *Store) Create(ctx context.Context, user string, ttl time.Duration) (string, error) {
	id := uuid.NewString()
	if err := s.client.Set(ctx, session.Key(id), user, ttl).Err(); err != nil {
		return "", fmt.Errorf("set session: %w", err)
	}
	return id, nil
}

// Lookup returns the user owning the session.
func (s *Store) Lookup(ctx context.Context, id string) (string, error) {
	user, err := s.client.Get(ctx, session.Key(id)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && user == "") {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	return user, nil
}
