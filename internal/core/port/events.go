package port

import (
	"context"

	"github.com/DVTecno/mailsend/internal/core/domain"
)

// EventPublisher fans out domain events to downstream consumers.
// Publishing is best effort: the usecases log failures and continue.
type EventPublisher interface {
	PublishIdentityRegistered(ctx context.Context, event domain.IdentityRegisteredEvent) error
	PublishRecoveryRequested(ctx context.Context, event domain.RecoveryRequestedEvent) error
	PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error
}
