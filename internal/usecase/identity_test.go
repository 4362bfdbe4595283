package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DVTecno/mailsend/internal/core/domain"
)

func TestRegisterValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		input   RegisterInput
		message string
	}{
		{
			name:    "missing name",
			input:   RegisterInput{NaturalID: "30111222", Password: "secret1", PasswordConfirm: "secret1"},
			message: "name required",
		},
		{
			name:    "missing natural id",
			input:   RegisterInput{Name: "Ana", Password: "secret1", PasswordConfirm: "secret1"},
			message: "natural id required",
		},
		{
			name:    "empty password",
			input:   RegisterInput{Name: "Ana", NaturalID: "30111222"},
			message: "password too short",
		},
		{
			name:    "password exactly six characters",
			input:   RegisterInput{Name: "Ana", NaturalID: "30111222", Password: "secret", PasswordConfirm: "secret"},
			message: "password too short",
		},
		{
			name:    "confirmation mismatch",
			input:   RegisterInput{Name: "Ana", NaturalID: "30111222", Password: "secret1", PasswordConfirm: "secret2"},
			message: "passwords do not match",
		},
		{
			name:    "blank name beats missing natural id",
			input:   RegisterInput{Name: "   ", Password: "secret1", PasswordConfirm: "secret2"},
			message: "name required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStubIdentityStore()
			service := NewIdentityService(store, &stubHasher{}, nil, nil)

			_, err := service.Register(context.Background(), tc.input)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, verr.Message)
			}
			if store.createCalls != 0 {
				t.Fatalf("expected no persistence, got %d create calls", store.createCalls)
			}
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	store := newStubIdentityStore()
	events := &stubEventPublisher{}
	service := NewIdentityService(store, &stubHasher{}, events, nil)

	created, err := service.Register(context.Background(), RegisterInput{
		Name:            "Ana",
		NaturalID:       "30111222",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if created.ID == 0 {
		t.Fatal("expected assigned identifier")
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %s", created.Role)
	}
	if created.PasswordHash == "secret1" {
		t.Fatal("stored credential equals plaintext password")
	}
	if created.PasswordHash == "" {
		t.Fatal("expected hashed credential")
	}
	if store.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", store.createCalls)
	}
	if len(events.registered) != 1 {
		t.Fatalf("expected one registered event, got %d", len(events.registered))
	}
	if events.registered[0].NaturalID != "30111222" {
		t.Fatalf("unexpected event natural id %q", events.registered[0].NaturalID)
	}
}

func TestRegisterDuplicateNaturalID(t *testing.T) {
	store := newStubIdentityStore()
	store.add(domain.Identity{NaturalID: "30111222", Name: "Ana"})

	service := NewIdentityService(store, &stubHasher{}, nil, nil)

	_, err := service.Register(context.Background(), RegisterInput{
		Name:            "Ana",
		NaturalID:       "30111222",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	})
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Fatalf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestAuthenticateUnknownNaturalID(t *testing.T) {
	service := NewIdentityService(newStubIdentityStore(), &stubHasher{}, nil, nil)

	_, _, err := service.Authenticate(context.Background(), "99999999", "secret1")
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := newStubIdentityStore()
	store.add(domain.Identity{NaturalID: "30111222", PasswordHash: "hashed::secret1", Role: domain.RoleUser})

	service := NewIdentityService(store, &stubHasher{}, nil, nil)

	_, _, err := service.Authenticate(context.Background(), "30111222", "wrongpass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	store := newStubIdentityStore()
	stored := store.add(domain.Identity{NaturalID: "30111222", PasswordHash: "hashed::secret1", Role: domain.RoleUser})

	service := NewIdentityService(store, &stubHasher{}, nil, nil)

	principal, identity, err := service.Authenticate(context.Background(), "30111222", "secret1")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if principal.NaturalID != "30111222" {
		t.Fatalf("unexpected principal natural id %q", principal.NaturalID)
	}
	if principal.IdentityID != stored.ID {
		t.Fatalf("expected identity id %d, got %d", stored.ID, principal.IdentityID)
	}
	if len(principal.Authorities) != 1 || principal.Authorities[0] != "ROLE_USER" {
		t.Fatalf("expected single ROLE_USER authority, got %v", principal.Authorities)
	}
	if identity == nil || identity.ID != stored.ID {
		t.Fatal("expected resolved identity alongside principal")
	}
}
