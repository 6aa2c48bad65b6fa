package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// Durable session entry keys. The token and the serialized identity are two
// entries written together on login and removed together on logout.
const (
	sessionTokenKey = "session:token"
	sessionUserKey  = "session:user"
)

// SessionRepository persists the session record in Redis.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a SessionRepository wrapping the given client.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Save writes the token and identity entries in a single pipeline so neither
// can land without the other.
func (r *SessionRepository) Save(ctx context.Context, s *domain.PersistedSession) error {
	payload, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionTokenKey, s.Token, 0)
		pipe.Set(ctx, sessionUserKey, payload, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads the persisted session. Missing or malformed entries yield an
// error; callers treat any failure as "no session".
func (r *SessionRepository) Load(ctx context.Context) (*domain.PersistedSession, error) {
	token, err := r.client.Get(ctx, sessionTokenKey).Result()
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}

	payload, err := r.client.Get(ctx, sessionUserKey).Bytes()
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}

	return &domain.PersistedSession{Token: token, User: user}, nil
}

// Clear removes both entries. Clearing an absent session is a no-op.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, sessionTokenKey, sessionUserKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
