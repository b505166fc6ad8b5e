package session

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/tiendasport/storefront-api/pkg/config"
	redisclient "github.com/tiendasport/storefront-api/pkg/redis"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redisclient.New(context.Background(), config.RedisConfig{Address: mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	mgr, err := NewManager(client, config.JWTConfig{
		Secret:            "secret",
		Issuer:            "storefront",
		ExpirationMinutes: 30,
		SessionTTLMinutes: 60,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return mgr
}

func TestStartAndHasSession(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	accessID := NewAccessID()

	if err := mgr.Start(ctx, accessID, uuid.New()); err != nil {
		t.Fatalf("start session: %v", err)
	}

	ok, err := mgr.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatal("expected live session")
	}
}

func TestRevokeEndsSession(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()
	accessID := NewAccessID()

	if err := mgr.Start(ctx, accessID, uuid.New()); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := mgr.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke session: %v", err)
	}

	ok, err := mgr.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatal("expected session to be gone")
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	mgr := newTestManager(t)
	ctx := context.Background()

	if err := mgr.Revoke(ctx, NewAccessID()); err != nil {
		t.Fatalf("revoke of unknown session should be a no-op, got %v", err)
	}
}

func TestHasSessionUnknownID(t *testing.T) {
	mgr := newTestManager(t)

	ok, err := mgr.HasSession(context.Background(), NewAccessID())
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatal("expected no session for unknown id")
	}
}

func TestNewManagerRejectsShortTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redisclient.New(context.Background(), config.RedisConfig{Address: mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if _, err := NewManager(client, config.JWTConfig{
		ExpirationMinutes: 60,
		SessionTTLMinutes: 30,
	}); err == nil {
		t.Fatal("expected ttl shorter than access ttl to be rejected")
	}
}
