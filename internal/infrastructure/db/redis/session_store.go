package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore is the server-side registry of live bearer tokens.
// Key format: session:<token>, value is the user id. A token missing from
// the store is treated as logged out even if its signature still verifies.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// Entries expire after ttl, which should match the token lifetime.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Put registers a freshly issued token for userID.
func (s *SessionStore) Put(ctx context.Context, token string, userID int64) error {
	if err := s.client.Set(ctx, s.key(token), strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Exists reports whether the token is still a live session.
func (s *SessionStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

// Revoke removes the token. Revoking an unknown token is not an error.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
