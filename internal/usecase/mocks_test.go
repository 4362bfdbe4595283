package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/repository"
)

type stubIdentityStore struct {
	identities map[int64]*domain.Identity
	nextID     int64

	createErr    error
	setTokenErr  error
	consumeErr   error
	createCalls  int
	setTokenCall int
	consumeCalls int
}

func newStubIdentityStore() *stubIdentityStore {
	return &stubIdentityStore{identities: make(map[int64]*domain.Identity)}
}

func (s *stubIdentityStore) add(identity domain.Identity) *domain.Identity {
	s.nextID++
	identity.ID = s.nextID
	s.identities[identity.ID] = &identity
	return &identity
}

func (s *stubIdentityStore) Create(_ context.Context, identity domain.Identity) (domain.Identity, error) {
	s.createCalls++
	if s.createErr != nil {
		return domain.Identity{}, s.createErr
	}
	for _, existing := range s.identities {
		if existing.NaturalID == identity.NaturalID {
			return domain.Identity{}, repository.ErrDuplicate
		}
	}
	return *s.add(identity), nil
}

func (s *stubIdentityStore) GetByNaturalID(_ context.Context, naturalID string) (*domain.Identity, error) {
	for _, identity := range s.identities {
		if identity.NaturalID == naturalID {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubIdentityStore) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, identity := range s.identities {
		if identity.Email == email && email != "" {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubIdentityStore) GetByResetToken(_ context.Context, token string) (*domain.Identity, error) {
	for _, identity := range s.identities {
		if identity.ResetToken != nil && *identity.ResetToken == token {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubIdentityStore) GetByVerificationCode(_ context.Context, code string) (*domain.Identity, error) {
	for _, identity := range s.identities {
		if identity.VerificationCode != nil && *identity.VerificationCode == code {
			copied := *identity
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubIdentityStore) SetResetToken(_ context.Context, identityID int64, token string) error {
	s.setTokenCall++
	if s.setTokenErr != nil {
		return s.setTokenErr
	}
	identity, ok := s.identities[identityID]
	if !ok {
		return repository.ErrNotFound
	}
	identity.ResetToken = &token
	return nil
}

func (s *stubIdentityStore) ConsumeResetToken(_ context.Context, token string, passwordHash string, changedAt time.Time) (int64, error) {
	s.consumeCalls++
	if s.consumeErr != nil {
		return 0, s.consumeErr
	}
	for _, identity := range s.identities {
		if identity.ResetToken != nil && *identity.ResetToken == token {
			identity.PasswordHash = passwordHash
			identity.ResetToken = nil
			identity.UpdatedAt = changedAt
			return identity.ID, nil
		}
	}
	return 0, repository.ErrNotFound
}

var _ port.IdentityStore = (*stubIdentityStore)(nil)

type stubHasher struct {
	hashErr error
}

func (h *stubHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed::" + password, nil
}

func (h *stubHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "hashed::"+password, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type stubNotifier struct {
	plain       []sentMail
	html        []sentMail
	attachments []sentMail

	plainErr error
	htmlErr  error
}

func (n *stubNotifier) SendPlain(_ context.Context, to, subject, text string) error {
	if n.plainErr != nil {
		return &port.DeliveryError{To: to, Err: n.plainErr}
	}
	n.plain = append(n.plain, sentMail{to: to, subject: subject, body: text})
	return nil
}

func (n *stubNotifier) SendHTML(_ context.Context, to, subject, htmlBody string) error {
	if n.htmlErr != nil {
		return &port.DeliveryError{To: to, Err: n.htmlErr}
	}
	n.html = append(n.html, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (n *stubNotifier) SendWithAttachment(_ context.Context, to, subject, text string, _ []byte, filename string) error {
	n.attachments = append(n.attachments, sentMail{to: to, subject: subject, body: fmt.Sprintf("%s [%s]", text, filename)})
	return nil
}

type stubEventPublisher struct {
	registered []domain.IdentityRegisteredEvent
	requested  []domain.RecoveryRequestedEvent
	changed    []domain.PasswordChangedEvent
}

func (p *stubEventPublisher) PublishIdentityRegistered(_ context.Context, event domain.IdentityRegisteredEvent) error {
	p.registered = append(p.registered, event)
	return nil
}

func (p *stubEventPublisher) PublishRecoveryRequested(_ context.Context, event domain.RecoveryRequestedEvent) error {
	p.requested = append(p.requested, event)
	return nil
}

func (p *stubEventPublisher) PublishPasswordChanged(_ context.Context, event domain.PasswordChangedEvent) error {
	p.changed = append(p.changed, event)
	return nil
}

type stubSessionStore struct {
	sessions  map[string]domain.Identity
	setCalls  int
	getCalls  int
	delCalls  int
	setErr    error
	getErr    error
	deleteErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Identity)}
}

func (s *stubSessionStore) Set(_ context.Context, sessionID string, identity domain.Identity, _ time.Duration) error {
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.sessions[sessionID] = identity
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, sessionID string) (*domain.Identity, error) {
	s.getCalls++
	if s.getErr != nil {
		return nil, s.getErr
	}
	identity, ok := s.sessions[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := identity
	return &copied, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sessionID string) error {
	s.delCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.sessions, sessionID)
	return nil
}
