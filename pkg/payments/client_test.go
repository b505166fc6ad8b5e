package payments

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tiendasport/storefront-api/pkg/config"
)

func TestNewClient_RejectsMismatchedKey(t *testing.T) {
	cfg := config.StripeConfig{APIKey: "sk_live_abc", Env: "test"}
	if _, err := NewClient(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected live key in test env to be rejected")
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	cfg := config.StripeConfig{Env: "test"}
	if _, err := NewClient(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected missing key to be rejected")
	}
}

func TestNewClient_NormalizesEnvironment(t *testing.T) {
	cfg := config.StripeConfig{APIKey: "sk_test_abc", Env: " TEST "}
	client, err := NewClient(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Environment() != "test" {
		t.Fatalf("expected test env, got %q", client.Environment())
	}
}

func TestCreateSession_RequiresLines(t *testing.T) {
	client := &Client{environment: "test"}
	if _, err := client.CreateSession(context.Background(), SessionInput{}); err == nil {
		t.Fatal("expected empty session to be rejected")
	}
}

func TestToCents(t *testing.T) {
	cases := []struct {
		price string
		want  int64
	}{
		{"100", 10000},
		{"15.50", 1550},
		{"0.1", 10},
		{"99.999", 10000},
	}
	for _, tc := range cases {
		if got := toCents(decimal.RequireFromString(tc.price)); got != tc.want {
			t.Fatalf("toCents(%s) = %d, want %d", tc.price, got, tc.want)
		}
	}
}
