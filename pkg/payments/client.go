// Package payments creates the hosted payment sessions the browser is
// redirected to. Checkout hands over here; the provider redirects back to
// static outcome pages, so no verification happens on this side.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v84"
	checkoutsession "github.com/stripe/stripe-go/v84/checkout/session"

	"github.com/tiendasport/storefront-api/pkg/config"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/logger"
)

const (
	testEnv = "test"
	liveEnv = "live"

	currencyCode = "gtq"
)

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

// Line is one entry of the payment session: a product line or the synthetic
// shipping line.
type Line struct {
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// SessionInput is the assembled checkout payload handed to the provider.
type SessionInput struct {
	UserID        string
	NIT           string
	Lines         []Line
	Destination   string
	ShippingCost  decimal.Decimal
	EstimatedDate string
}

// SessionCreator is the surface the checkout service depends on.
type SessionCreator interface {
	CreateSession(ctx context.Context, input SessionInput) (string, error)
}

// Client wraps Stripe Checkout plus env-specific metadata.
type Client struct {
	environment string
	successURL  string
	cancelURL   string
}

// NewClient initializes Stripe once with the configured secrets and env.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	env, err := normalizeEnv(cfg.Environment())
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}

	stripe.Key = apiKey

	if logg != nil {
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", env))
	}

	return &Client{
		environment: env,
		successURL:  cfg.SuccessURL,
		cancelURL:   cfg.CancelURL,
	}, nil
}

// Environment reports the normalized Stripe environment in use.
func (c *Client) Environment() string {
	if c == nil {
		return ""
	}
	return c.environment
}

// CreateSession opens a hosted checkout session and returns its URL.
// A success response without a URL is fatal: there is nowhere to redirect.
func (c *Client) CreateSession(ctx context.Context, input SessionInput) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "payment client not configured")
	}
	if len(input.Lines) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "payment session requires at least one line")
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.Lines))
	for _, line := range input.Lines {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(line.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currencyCode),
				UnitAmount: stripe.Int64(toCents(line.Price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		ClientReferenceID: stripe.String(input.UserID),
		Metadata: map[string]string{
			"nit":               input.NIT,
			"direccion_destino": input.Destination,
			"costo_envio":       input.ShippingCost.StringFixed(2),
			"fecha_estimada":    input.EstimatedDate,
		},
	}
	params.Context = ctx

	session, err := checkoutsession.New(params)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment session")
	}
	if session == nil || strings.TrimSpace(session.URL) == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "payment session response missing redirect url")
	}

	return session.URL, nil
}

func toCents(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
