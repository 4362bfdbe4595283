package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/core/port"
	"github.com/DVTecno/mailsend/internal/repository"
)

// minPasswordLength is exclusive: a password must be strictly longer.
const minPasswordLength = 6

// RegisterInput captures the payload for a registration request.
type RegisterInput struct {
	Name            string
	NaturalID       string
	Email           string
	Phone           string
	Password        string
	PasswordConfirm string
}

// IdentityService handles account onboarding and authentication.
type IdentityService struct {
	identities port.IdentityStore
	hasher     port.PasswordHasher
	events     port.EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewIdentityService constructs an IdentityService.
func NewIdentityService(identities port.IdentityStore, hasher port.PasswordHasher, events port.EventPublisher, logger *zap.Logger) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdentityService{
		identities: identities,
		hasher:     hasher,
		events:     events,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock allows tests to override the clock used by the service.
func (s *IdentityService) WithClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// Register validates the input, hashes the credential, and persists a
// new identity with the USER role. Validation short-circuits: the first
// failing rule wins. Natural-id uniqueness is deferred to the store,
// which reports collisions as ErrDuplicateIdentity.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (domain.Identity, error) {
	if err := validateRegistration(input); err != nil {
		return domain.Identity{}, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	identity := domain.Identity{
		Name:         strings.TrimSpace(input.Name),
		NaturalID:    strings.TrimSpace(input.NaturalID),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		identity.Phone = &phone
	}

	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Identity{}, ErrDuplicateIdentity
		}
		return domain.Identity{}, fmt.Errorf("persist identity: %w", err)
	}

	s.publishRegistered(ctx, created)

	return created, nil
}

func validateRegistration(input RegisterInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return newValidationError("name required")
	}
	if strings.TrimSpace(input.NaturalID) == "" {
		return newValidationError("natural id required")
	}
	if input.Password == "" || len(input.Password) <= minPasswordLength {
		return newValidationError("password too short")
	}
	if input.Password != input.PasswordConfirm {
		return newValidationError("passwords do not match")
	}
	return nil
}

// Authenticate resolves the identity by natural id and verifies the
// credential. Session binding is an explicit, separate step owned by
// the caller: a successful Authenticate must be followed by exactly one
// SessionBinder.Bind for the login event.
func (s *IdentityService) Authenticate(ctx context.Context, naturalID, password string) (domain.Principal, *domain.Identity, error) {
	naturalID = strings.TrimSpace(naturalID)
	if naturalID == "" {
		return domain.Principal{}, nil, newValidationError("natural id required")
	}

	identity, err := s.identities.GetByNaturalID(ctx, naturalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Principal{}, nil, ErrIdentityNotFound
		}
		return domain.Principal{}, nil, fmt.Errorf("lookup identity: %w", err)
	}

	matches, err := s.hasher.Verify(password, identity.PasswordHash)
	if err != nil {
		return domain.Principal{}, nil, fmt.Errorf("verify password: %w", err)
	}
	if !matches {
		return domain.Principal{}, nil, ErrInvalidCredentials
	}

	principal := domain.Principal{
		IdentityID:  identity.ID,
		NaturalID:   identity.NaturalID,
		Role:        identity.Role,
		Authorities: []string{identity.Role.Authority()},
	}

	return principal, identity, nil
}

func (s *IdentityService) publishRegistered(ctx context.Context, identity domain.Identity) {
	if s.events == nil {
		return
	}

	event := domain.IdentityRegisteredEvent{
		EventID:      uuid.NewString(),
		IdentityID:   identity.ID,
		NaturalID:    identity.NaturalID,
		Role:         identity.Role,
		RegisteredAt: identity.CreatedAt,
	}

	if err := s.events.PublishIdentityRegistered(ctx, event); err != nil {
		s.logger.Warn("publish identity registered failed", zap.Int64("identity_id", identity.ID), zap.Error(err))
	}
}
