package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	red "github.com/redis/go-redis/v9"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/repository"
)

const defaultSessionPrefix = "portal:session"

// SessionRepository persists session-bound identities in Redis. Expiry is
// delegated to Redis key TTLs, so an expired session is indistinguishable
// from an unknown one.
type SessionRepository struct {
	client *red.Client
	prefix string
}

// NewSessionRepository constructs a Redis-backed session store.
func NewSessionRepository(client *red.Client, keyPrefix string) *SessionRepository {
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = defaultSessionPrefix
	}

	return &SessionRepository{client: client, prefix: prefix}
}

type sessionRecord struct {
	IdentityID   int64     `json:"identity_id"`
	Name         string    `json:"name"`
	NaturalID    string    `json:"natural_id"`
	Email        string    `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Set stores the identity under the session key with the supplied TTL.
func (s *SessionRepository) Set(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error {
	key := s.key(sessionID)
	if key == "" {
		return fmt.Errorf("session id is required")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive")
	}

	record := sessionRecord{
		IdentityID:   identity.ID,
		Name:         identity.Name,
		NaturalID:    identity.NaturalID,
		Email:        identity.Email,
		Phone:        identity.Phone,
		PasswordHash: identity.PasswordHash,
		Role:         string(identity.Role),
		CreatedAt:    identity.CreatedAt,
		UpdatedAt:    identity.UpdatedAt,
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Get resolves the identity bound to a session.
func (s *SessionRepository) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	key := s.key(sessionID)
	if key == "" {
		return nil, fmt.Errorf("session id is required")
	}

	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, red.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session record: %w", err)
	}

	identity := domain.Identity{
		ID:           record.IdentityID,
		Name:         record.Name,
		NaturalID:    record.NaturalID,
		Email:        record.Email,
		Phone:        record.Phone,
		PasswordHash: record.PasswordHash,
		Role:         domain.Role(record.Role),
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}

	return &identity, nil
}

// Delete removes the session binding. Deleting an absent session is not
// an error.
func (s *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := s.key(sessionID)
	if key == "" {
		return fmt.Errorf("session id is required")
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}

	return nil
}

func (s *SessionRepository) key(sessionID string) string {
	trimmed := strings.TrimSpace(sessionID)
	if trimmed == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", s.prefix, trimmed)
}

var _ port.SessionStore = (*SessionRepository)(nil)
