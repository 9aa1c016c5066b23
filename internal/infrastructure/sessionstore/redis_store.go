package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	appsession "github.com/timbermart/backend/internal/application/session"
	"github.com/timbermart/backend/internal/domain/session"
	"github.com/timbermart/backend/internal/infrastructure/config"
)

// RedisSessionStore persists session state in Redis as one JSON document
// per session. Every save refreshes the TTL, so the session expires only
// after the shopper has been idle for the full TTL.
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store and verifies
// the connection before returning.
func NewRedisSessionStore(cfg config.RedisConfig, ttl time.Duration) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSessionStore{
		client:    client,
		keyPrefix: "session:state:",
		ttl:       ttl,
	}, nil
}

// NewRedisSessionStoreWithClient creates a store with an existing Redis
// client, useful for tests or client sharing.
func NewRedisSessionStoreWithClient(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client:    client,
		keyPrefix: "session:state:",
		ttl:       ttl,
	}
}

// Load fetches the session state, returning a fresh empty state for
// unknown or expired sessions.
func (s *RedisSessionStore) Load(ctx context.Context, sessionID string) (*session.State, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return session.NewState(), nil
		}
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	var state session.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	return &state, nil
}

// Save writes the session state and refreshes its TTL
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, state *session.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

var _ appsession.SessionStore = (*RedisSessionStore)(nil)
