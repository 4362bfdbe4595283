package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"

	"github.com/DVTecno/mailsend/internal/core/domain"
	"github.com/DVTecno/mailsend/internal/repository"
)

func newTestRedis(t *testing.T) (*red.Client, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := red.NewClient(&red.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})

	return client, server
}

func testIdentity() domain.Identity {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Identity{
		ID:           7,
		Name:         "Ana Diaz",
		NaturalID:    "30111222",
		Email:        "ana@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestSessionRepository_SetAndGet(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client, "portal:session:test")

	identity := testIdentity()
	if err := repo.Set(context.Background(), "session-1", identity, time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := repo.Get(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != identity.ID {
		t.Fatalf("expected identity id %d, got %d", identity.ID, got.ID)
	}
	if got.NaturalID != identity.NaturalID {
		t.Fatalf("expected natural id %s, got %s", identity.NaturalID, got.NaturalID)
	}
	if got.Role != domain.RoleUser {
		t.Fatalf("expected role USER, got %s", got.Role)
	}
}

func TestSessionRepository_GetMiss(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client, "portal:session:test")

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_Expiry(t *testing.T) {
	client, server := newTestRedis(t)
	repo := NewSessionRepository(client, "portal:session:test")

	if err := repo.Set(context.Background(), "session-1", testIdentity(), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	server.FastForward(2 * time.Minute)

	_, err := repo.Get(context.Background(), "session-1")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestSessionRepository_Delete(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client, "portal:session:test")

	if err := repo.Set(context.Background(), "session-1", testIdentity(), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	if err := repo.Delete(context.Background(), "session-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := repo.Get(context.Background(), "session-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// absent session deletes are idempotent
	if err := repo.Delete(context.Background(), "session-1"); err != nil {
		t.Fatalf("Delete of absent session returned error: %v", err)
	}
}

func TestSessionRepository_InvalidInput(t *testing.T) {
	client, _ := newTestRedis(t)
	repo := NewSessionRepository(client, "portal:session:test")

	if err := repo.Set(context.Background(), "", testIdentity(), time.Minute); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if err := repo.Set(context.Background(), "session-1", testIdentity(), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
	if _, err := repo.Get(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if err := repo.Delete(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty session id")
	}
}
