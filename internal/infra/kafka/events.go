package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/infra/config"
)

const schemaVersion = "1.0"

const (
	topicIdentityRegistered = "identity.registered"
	topicRecoveryRequested  = "identity.recovery.requested"
	topicPasswordChanged    = "identity.password.changed"
)

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID    string            `json:"event_id"`
	EventType  string            `json:"event_type"`
	IdentityID int64             `json:"identity_id,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Version    string            `json:"version"`
	Payload    any               `json:"payload"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType string, identityID int64, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:    id,
		EventType:  eventType,
		IdentityID: identityID,
		Timestamp:  ts.UTC(),
		Version:    schemaVersion,
		Payload:    payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishIdentityRegistered publishes portal.identity.registered events.
func (p *EventPublisher) PublishIdentityRegistered(ctx context.Context, event domain.IdentityRegisteredEvent) error {
	payload := struct {
		IdentityID   int64     `json:"identity_id"`
		NaturalID    string    `json:"natural_id"`
		Role         string    `json:"role"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		IdentityID:   event.IdentityID,
		NaturalID:    event.NaturalID,
		Role:         string(event.Role),
		RegisteredAt: event.RegisteredAt,
	}

	return p.publish(ctx, event.EventID, topicIdentityRegistered, event.IdentityID, event.RegisteredAt, payload)
}

// PublishRecoveryRequested publishes portal.identity.recovery.requested events.
func (p *EventPublisher) PublishRecoveryRequested(ctx context.Context, event domain.RecoveryRequestedEvent) error {
	payload := struct {
		IdentityID  int64     `json:"identity_id"`
		MaskedEmail string    `json:"masked_email"`
		RequestedAt time.Time `json:"requested_at"`
	}{
		IdentityID:  event.IdentityID,
		MaskedEmail: event.MaskedEmail,
		RequestedAt: event.RequestedAt,
	}

	return p.publish(ctx, event.EventID, topicRecoveryRequested, event.IdentityID, event.RequestedAt, payload)
}

// PublishPasswordChanged publishes portal.identity.password.changed events.
func (p *EventPublisher) PublishPasswordChanged(ctx context.Context, event domain.PasswordChangedEvent) error {
	payload := struct {
		IdentityID int64     `json:"identity_id"`
		ChangedAt  time.Time `json:"changed_at"`
		Reason     string    `json:"reason"`
	}{
		IdentityID: event.IdentityID,
		ChangedAt:  event.ChangedAt,
		Reason:     event.Reason,
	}

	return p.publish(ctx, event.EventID, topicPasswordChanged, event.IdentityID, event.ChangedAt, payload)
}
