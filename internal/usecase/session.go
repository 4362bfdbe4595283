package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/repository"
)

const defaultSessionTTL = 30 * time.Minute

// ErrSessionNotFound indicates the session is unknown or has expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionBinder attaches an authenticated identity to a session. The
// bind happens exactly once per authentication event; session lifetime
// and cookie handling are owned by the HTTP layer.
type SessionBinder struct {
	store port.SessionStore
	ttl   time.Duration
}

// NewSessionBinder constructs a SessionBinder. A non-positive TTL falls
// back to the default.
func NewSessionBinder(store port.SessionStore, ttl time.Duration) *SessionBinder {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionBinder{store: store, ttl: ttl}
}

// Bind stores the identity under the session id.
func (b *SessionBinder) Bind(ctx context.Context, sessionID string, identity domain.Identity) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	if err := b.store.Set(ctx, sessionID, identity, b.ttl); err != nil {
		return fmt.Errorf("bind session: %w", err)
	}
	return nil
}

// Resolve returns the identity bound to the session id.
func (b *SessionBinder) Resolve(ctx context.Context, sessionID string) (*domain.Identity, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	identity, err := b.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return identity, nil
}

// Invalidate removes the session binding.
func (b *SessionBinder) Invalidate(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}

	if err := b.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}
