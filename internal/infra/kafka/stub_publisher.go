package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DVTecno/mailsend/internal/core/domain"
)

// StubPublisher logs events instead of sending them to Kafka. Used when
// no brokers are configured.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, identityID int64, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.Int64("identity_id", identityID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishIdentityRegistered logs identity.registered events.
func (p *StubPublisher) PublishIdentityRegistered(_ context.Context, event domain.IdentityRegisteredEvent) error {
	payload := map[string]any{
		"identity_id":   event.IdentityID,
		"natural_id":    event.NaturalID,
		"role":          string(event.Role),
		"registered_at": event.RegisteredAt,
	}
	p.logEvent(topicIdentityRegistered, event.IdentityID, event.RegisteredAt, payload)
	return nil
}

// PublishRecoveryRequested logs identity.recovery.requested events.
func (p *StubPublisher) PublishRecoveryRequested(_ context.Context, event domain.RecoveryRequestedEvent) error {
	payload := map[string]any{
		"identity_id":  event.IdentityID,
		"masked_email": event.MaskedEmail,
		"requested_at": event.RequestedAt,
	}
	p.logEvent(topicRecoveryRequested, event.IdentityID, event.RequestedAt, payload)
	return nil
}

// PublishPasswordChanged logs identity.password.changed events.
func (p *StubPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	payload := map[string]any{
		"identity_id": event.IdentityID,
		"changed_at":  event.ChangedAt,
		"reason":      event.Reason,
	}
	p.logEvent(topicPasswordChanged, event.IdentityID, event.ChangedAt, payload)
	return nil
}
