package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/infra/logger"
	"github.com/DVTecno/mailsend/internal/infra/security"
	"github.com/DVTecno/mailsend/internal/repository"
)

const (
	resetMailSubject        = "Here is the link to reset your password"
	confirmationSubject     = "Password updated"
	confirmationBody        = "Your password has been updated successfully."
	passwordRecoveryReason  = "password_recovery"
	resetPasswordLinkFormat = "%s/reset_password?token=%s"
)

var resetMailTemplate = template.Must(template.New("reset_mail").Parse(`<div style="background:#ffffff;margin:0px auto;max-width:600px">
<p>Hello,</p>
<p>You have requested to reset your password.</p>
<p>Click the link below to change your password:</p>
<p><b><a href="{{.Link}}">Change my password</a></b></p>
<p>Ignore this email if you do not want to change your password, or if you have already changed it.</p>
</div>`))

// RecoveryService coordinates the reset-token workflow: issuance,
// lookup, and single-use consumption.
type RecoveryService struct {
	identities port.IdentityStore
	hasher     port.PasswordHasher
	notifier   port.Notifier
	events     port.EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewRecoveryService constructs a RecoveryService.
func NewRecoveryService(identities port.IdentityStore, hasher port.PasswordHasher, notifier port.Notifier, events port.EventPublisher, log *zap.Logger) *RecoveryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecoveryService{
		identities: identities,
		hasher:     hasher,
		notifier:   notifier,
		events:     events,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *RecoveryService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Request issues a fresh reset token for the identity registered under
// the email and mails a reset link against the supplied base URL. The
// token is persisted before delivery is attempted; a delivery failure
// propagates and deliberately leaves the token in place, so the
// identity stays in a pending-recovery state until a later request
// overwrites it.
func (s *RecoveryService) Request(ctx context.Context, email, baseURL string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return newValidationError("email required")
	}

	identity, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("lookup identity by email: %w", err)
	}

	token, err := security.GenerateResetToken(security.ResetTokenLength)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	if err := s.identities.SetResetToken(ctx, identity.ID, token); err != nil {
		return fmt.Errorf("persist reset token: %w", err)
	}

	link := fmt.Sprintf(resetPasswordLinkFormat, strings.TrimRight(baseURL, "/"), token)
	body, err := renderResetMail(link)
	if err != nil {
		return fmt.Errorf("render reset mail: %w", err)
	}

	if err := s.notifier.SendHTML(ctx, email, resetMailSubject, body); err != nil {
		return err
	}

	s.publishRequested(ctx, identity)

	return nil
}

// Resolve looks up the identity holding the token. It never mutates
// state; unknown and already-consumed tokens report ErrIdentityNotFound.
func (s *RecoveryService) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrIdentityNotFound
	}

	identity, err := s.identities.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("lookup identity by token: %w", err)
	}

	return identity, nil
}

// Complete replaces the credential and consumes the token as one
// logical unit. The store performs a compare-and-clear conditional
// update, so two racing completions of the same token cannot both
// succeed: the loser observes ErrIdentityNotFound.
func (s *RecoveryService) Complete(ctx context.Context, token, newPassword string) error {
	identity, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	changedAt := s.now().UTC()
	identityID, err := s.identities.ConsumeResetToken(ctx, strings.TrimSpace(token), passwordHash, changedAt)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("consume reset token: %w", err)
	}

	if identity.Email != "" {
		if err := s.notifier.SendPlain(ctx, identity.Email, confirmationSubject, confirmationBody); err != nil {
			return err
		}
	}

	s.publishChanged(ctx, identityID, changedAt)

	return nil
}

func renderResetMail(link string) (string, error) {
	var buf bytes.Buffer
	if err := resetMailTemplate.Execute(&buf, struct{ Link string }{Link: link}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *RecoveryService) publishRequested(ctx context.Context, identity *domain.Identity) {
	if s.events == nil || identity == nil {
		return
	}

	event := domain.RecoveryRequestedEvent{
		EventID:     uuid.NewString(),
		IdentityID:  identity.ID,
		MaskedEmail: logger.MaskEmail(identity.Email),
		RequestedAt: s.now().UTC(),
	}

	if err := s.events.PublishRecoveryRequested(ctx, event); err != nil {
		s.logger.Warn("publish recovery requested failed", zap.Int64("identity_id", identity.ID), zap.Error(err))
	}
}

func (s *RecoveryService) publishChanged(ctx context.Context, identityID int64, changedAt time.Time) {
	if s.events == nil {
		return
	}

	event := domain.PasswordChangedEvent{
		EventID:    uuid.NewString(),
		IdentityID: identityID,
		ChangedAt:  changedAt,
		Reason:     passwordRecoveryReason,
	}

	if err := s.events.PublishPasswordChanged(ctx, event); err != nil {
		s.logger.Warn("publish password changed failed", zap.Int64("identity_id", identityID), zap.Error(err))
	}
}
