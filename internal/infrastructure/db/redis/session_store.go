package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore persists one serialized Identity per session token.
// Key format: session:<token>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// Sessions expire after ttl; a non-positive ttl defaults to 24h.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Load reads the Identity stored under token. A missing slot yields
// domain.ErrSessionNotFound. A corrupt record is deleted and reported the
// same way: the caller only ever sees "no session".
func (s *SessionStore) Load(ctx context.Context, token string) (*domain.Identity, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session load: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || !identity.Role.Valid() {
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, domain.ErrSessionNotFound
	}

	return &identity, nil
}

// Save writes identity under token, replacing any previous record and
// resetting the expiry.
func (s *SessionStore) Save(ctx context.Context, token string, identity *domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	if err := s.client.Set(ctx, s.key(token), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Delete removes the slot for token. Deleting an absent slot is a no-op.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return sessionKeyPrefix + token
}
