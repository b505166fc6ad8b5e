package shipping

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tiendasport/storefront-api/internal/cart"
	"github.com/tiendasport/storefront-api/pkg/config"
	"github.com/tiendasport/storefront-api/pkg/db/models"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/geo"
	"github.com/tiendasport/storefront-api/pkg/tarifa"
)

type cartLoader interface {
	Get(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
}

type tariffCalculator interface {
	Calculate(ctx context.Context, req tarifa.QuoteRequest) (*tarifa.Quote, error)
	Health(ctx context.Context) error
}

type quoteRecorder interface {
	Save(ctx context.Context, userID string, quote tarifa.Quote, destination geo.Coordinate) (*CachedQuote, error)
	Get(ctx context.Context, userID string) (*CachedQuote, error)
	Invalidate(ctx context.Context, userID string) error
}

// Preview is the client-side distance readout for the map widget. It is
// informational only; the tariff service owns pricing.
type Preview struct {
	Origin      geo.Coordinate `json:"origin"`
	Destination geo.Coordinate `json:"destination"`
	DistanceKm  float64        `json:"distance_km"`
}

// Service orchestrates quote requests against the tariff service.
type Service interface {
	Preview(destination geo.Coordinate) (*Preview, error)
	RequestQuote(ctx context.Context, userID uuid.UUID, destination geo.Coordinate) (*CachedQuote, error)
	CurrentQuote(ctx context.Context, userID uuid.UUID) (*CachedQuote, error)
	Origin() geo.Coordinate
	TariffHealth(ctx context.Context) error
}

type service struct {
	cartSvc cartLoader
	tariff  tariffCalculator
	quotes  quoteRecorder
	origin  geo.Coordinate
}

// NewService builds the shipping service.
func NewService(cartSvc cartLoader, tariff tariffCalculator, quotes quoteRecorder, cfg config.ShippingConfig) (Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart loader required")
	}
	if tariff == nil {
		return nil, fmt.Errorf("tariff client required")
	}
	if quotes == nil {
		return nil, fmt.Errorf("quote store required")
	}
	origin := geo.Coordinate{Lat: cfg.OriginLat, Lng: cfg.OriginLng}
	if err := origin.Validate(); err != nil {
		return nil, fmt.Errorf("shipping origin: %w", err)
	}
	return &service{
		cartSvc: cartSvc,
		tariff:  tariff,
		quotes:  quotes,
		origin:  origin,
	}, nil
}

// Preview computes the great-circle distance from the warehouse origin.
func (s *service) Preview(destination geo.Coordinate) (*Preview, error) {
	if err := destination.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid destination")
	}
	return &Preview{
		Origin:      s.origin,
		Destination: destination,
		DistanceKm:  geo.HaversineKm(s.origin, destination),
	}, nil
}

// RequestQuote checks preconditions in a fixed order, each with its own
// message, and never touches the tariff service when one fails.
func (s *service) RequestQuote(ctx context.Context, userID uuid.UUID, destination geo.Coordinate) (*CachedQuote, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "must be logged in to request shipping")
	}

	items, err := s.cartSvc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty")
	}

	if destination.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "select a destination")
	}
	if err := destination.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid destination")
	}

	quote, err := s.tariff.Calculate(ctx, tarifa.QuoteRequest{
		Items: cart.ToShippingItems(items),
		Envio: tarifa.NewRoute(s.origin, destination),
	})
	if err != nil {
		return nil, err
	}

	record, err := s.quotes.Save(ctx, userID.String(), *quote, destination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache quote")
	}
	return record, nil
}

// CurrentQuote returns the cached quote for the user, if any.
func (s *service) CurrentQuote(ctx context.Context, userID uuid.UUID) (*CachedQuote, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "must be logged in to request shipping")
	}
	record, err := s.quotes.Get(ctx, userID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no shipping quote available")
	}
	return record, nil
}

// Origin exposes the configured warehouse origin.
func (s *service) Origin() geo.Coordinate {
	return s.origin
}

// TariffHealth probes the tariff service.
func (s *service) TariffHealth(ctx context.Context) error {
	return s.tariff.Health(ctx)
}
