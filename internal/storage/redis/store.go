// Package redis holds the Redis connection and the optimistic transaction helper shared by
// the book, customer and sale repositories.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
}

// Open connects to Redis and pings it before returning.
func Open(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Store{client: client}, nil
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Client() *redis.Client {
	return s.client
}

// Session returns a session bound to the plain client; writes still go through Atomic.
func (s *Store) Session() *Session {
	return &Session{client: s.client}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// ServerTime returns the clock reported by the TIME command.
func (s *Store) ServerTime(ctx context.Context) (time.Time, error) {
	now, err := s.client.Time(ctx).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("querying server time: %w", err)
	}
	return now.UTC(), nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
