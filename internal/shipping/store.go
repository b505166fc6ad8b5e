package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tiendasport/storefront-api/pkg/geo"
	"github.com/tiendasport/storefront-api/pkg/nit"
	redisclient "github.com/tiendasport/storefront-api/pkg/redis"
	"github.com/tiendasport/storefront-api/pkg/tarifa"
)

const defaultQuoteTTL = 30 * time.Minute

// CachedQuote is the authoritative quote recorded for a user, tied to the
// destination it was priced against. The tax id starts over at "CF" with
// every fresh quote.
type CachedQuote struct {
	Quote       tarifa.Quote   `json:"quote"`
	Destination geo.Coordinate `json:"destination"`
	NIT         string         `json:"nit"`
	CreatedAt   time.Time      `json:"created_at"`
}

type quoteCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type quoteKeyer interface {
	QuoteKey(userID string) string
}

// Store caches the per-user shipping quote in Redis.
type Store struct {
	cache quoteCache
	keyer quoteKeyer
	ttl   time.Duration
}

// NewStore builds the quote store. A non-positive TTL falls back to the default.
func NewStore(client *redisclient.Client, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultQuoteTTL
	}
	return &Store{cache: client, keyer: client, ttl: ttl}, nil
}

// Save records the quote for the user, resetting the tax id to "CF".
func (s *Store) Save(ctx context.Context, userID string, quote tarifa.Quote, destination geo.Coordinate) (*CachedQuote, error) {
	record := CachedQuote{
		Quote:       quote,
		Destination: destination,
		NIT:         nit.ConsumidorFinal,
		CreatedAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal quote: %w", err)
	}
	if err := s.cache.Set(ctx, s.keyer.QuoteKey(userID), payload, s.ttl); err != nil {
		return nil, err
	}
	return &record, nil
}

// Get returns the cached quote, or nil when none is recorded.
func (s *Store) Get(ctx context.Context, userID string) (*CachedQuote, error) {
	raw, err := s.cache.Get(ctx, s.keyer.QuoteKey(userID))
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	var record CachedQuote
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("unmarshal quote: %w", err)
	}
	return &record, nil
}

// Invalidate drops the cached quote. Dropping a missing quote is a no-op.
func (s *Store) Invalidate(ctx context.Context, userID string) error {
	return s.cache.Del(ctx, s.keyer.QuoteKey(userID))
}
