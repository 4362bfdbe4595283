package port

import (
	"context"
	"time"

	"github.com/DVTecno/mailsend/internal/core/domain"
)

// IdentityStore exposes persistence behavior for identities. Lookups
// return repository.ErrNotFound when no row matches; Create surfaces
// repository.ErrDuplicate on natural-id or email collisions.
type IdentityStore interface {
	Create(ctx context.Context, identity domain.Identity) (domain.Identity, error)
	GetByNaturalID(ctx context.Context, naturalID string) (*domain.Identity, error)
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByResetToken(ctx context.Context, token string) (*domain.Identity, error)
	GetByVerificationCode(ctx context.Context, code string) (*domain.Identity, error)
	SetResetToken(ctx context.Context, identityID int64, token string) error
	// ConsumeResetToken atomically installs the new credential hash and
	// clears the reset token in a single conditional update keyed on the
	// token value. At most one concurrent caller succeeds; the rest get
	// repository.ErrNotFound.
	ConsumeResetToken(ctx context.Context, token string, passwordHash string, changedAt time.Time) (int64, error)
}
