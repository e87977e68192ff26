package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kwekamelia/web-grp-lab/internal/auth/domain"
)

const (
	sessionKeyPrefix     = "bugtracker:session:" // bugtracker:session:{token}
	userSessionSetPrefix = "bugtracker:user:"    // bugtracker:user:{username}:sessions
)

// SessionStore keeps login sessions until they expire.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUsername(ctx context.Context, username string) error
}

// RedisSessionStore handles Redis operations for sessions
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new RedisSessionStore
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (r *RedisSessionStore) sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (r *RedisSessionStore) userSetKey(username string) string {
	return userSessionSetPrefix + username + ":sessions"
}

// Create stores a session with a TTL matching its expiry
func (r *RedisSessionStore) Create(ctx context.Context, s *domain.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.sessionKey(s.Token), data, ttl)
	pipe.SAdd(ctx, r.userSetKey(s.Username), s.Token)
	pipe.Expire(ctx, r.userSetKey(s.Username), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get retrieves a session by token
func (r *RedisSessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete removes a session. Unknown tokens yield domain.ErrSessionNotFound.
func (r *RedisSessionStore) Delete(ctx context.Context, token string) error {
	s, err := r.Get(ctx, token)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.sessionKey(token))
	pipe.SRem(ctx, r.userSetKey(s.Username), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteByUsername revokes every session of a user
func (r *RedisSessionStore) DeleteByUsername(ctx context.Context, username string) error {
	setKey := r.userSetKey(username)

	tokens, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions for user: %w", err)
	}

	pipe := r.client.TxPipeline()
	for _, t := range tokens {
		pipe.Del(ctx, r.sessionKey(t))
	}
	pipe.Del(ctx, setKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete sessions for user: %w", err)
	}
	return nil
}

// MemorySessionStore is the in-process fallback used when no Redis address
// is configured. Sessions do not survive a restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domain.Session),
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Create(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = *s
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !m.now().Before(s.ExpiresAt) {
		delete(m.sessions, token)
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, token string) error {
	if _, err := m.Get(ctx, token); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) DeleteByUsername(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for t, s := range m.sessions {
		if s.Username == username {
			delete(m.sessions, t)
		}
	}
	return nil
}
