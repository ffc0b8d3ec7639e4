package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"secaware/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionStoreInterface defines the server-side session registry. A token is
// only honored while its session id is still registered here, so logout takes
// effect immediately even for unexpired tokens.
type SessionStoreInterface interface {
	Create(ctx context.Context, sessionID string, userID uint, email string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionStore tracks live sessions in Redis.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Create registers a session id with TTL matching the token expiry. The write
// must be acknowledged: an unregistered session would make every request with
// the freshly issued token fail, so login fails loudly instead.
func (s *SessionStore) Create(ctx context.Context, sessionID string, userID uint, email string, ttl time.Duration) error {
	payload, err := json.Marshal(map[string]interface{}{
		"user_id": userID,
		"email":   email,
	})
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}
	if err := s.cache.SetStrict(ctx, sessionKeyPrefix+sessionID, payload, ttl); err != nil {
		return fmt.Errorf("register session %s: %w", sessionID, err)
	}
	return nil
}

// Exists reports whether the session id is still registered.
func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

// Delete removes a session id. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
