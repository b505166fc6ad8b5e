package shipping

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"

	"github.com/tiendasport/storefront-api/pkg/config"
	"github.com/tiendasport/storefront-api/pkg/geo"
	redisclient "github.com/tiendasport/storefront-api/pkg/redis"
	"github.com/tiendasport/storefront-api/pkg/tarifa"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redisclient.New(context.Background(), config.RedisConfig{Address: mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewStore(client, 10*time.Minute)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	quote := tarifa.Quote{
		DistanciaKm: 12.4,
		TotalEnvio:  decimal.RequireFromString("35.50"),
	}
	destination := geo.Coordinate{Lat: 14.5586, Lng: -90.7295}

	saved, err := store.Save(ctx, "user-1", quote, destination)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.NIT != "CF" {
		t.Fatalf("expected NIT CF on save, got %q", saved.NIT)
	}

	loaded, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected cached quote")
	}
	if !loaded.Quote.TotalEnvio.Equal(quote.TotalEnvio) {
		t.Fatalf("unexpected total %s", loaded.Quote.TotalEnvio)
	}
	if loaded.Destination != destination {
		t.Fatalf("unexpected destination %+v", loaded.Destination)
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Get(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil for missing quote, got %+v", loaded)
	}
}

func TestStoreInvalidate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, "user-1", tarifa.Quote{}, geo.Coordinate{Lat: 1, Lng: 1}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Invalidate(ctx, "user-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	loaded, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected quote gone after invalidation")
	}

	if err := store.Invalidate(ctx, "user-1"); err != nil {
		t.Fatalf("repeat invalidation should be a no-op, got %v", err)
	}
}
