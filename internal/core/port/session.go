package port

import (
	"context"
	"time"

	"github.com/DVTecno/mailsend/internal/core/domain"
)

// SessionStore persists the identity bound to a session. Get returns
// repository.ErrNotFound for unknown or expired sessions.
type SessionStore interface {
	Set(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
	Delete(ctx context.Context, sessionID string) error
}
