package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendasport/storefront-api/internal/shipping"
	"github.com/tiendasport/storefront-api/pkg/db/models"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/geo"
	"github.com/tiendasport/storefront-api/pkg/nit"
	"github.com/tiendasport/storefront-api/pkg/payments"
)

// shippingLineName is the label of the synthetic line appended after the
// product lines.
const shippingLineName = "Envío"

const deliveryEstimateDays = 3

type cartLoader interface {
	Get(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
}

type quoteLoader interface {
	Get(ctx context.Context, userID string) (*shipping.CachedQuote, error)
}

// PaymentLine is one entry of the assembled payment payload.
type PaymentLine struct {
	Nombre           string          `json:"name"`
	Precio           decimal.Decimal `json:"price"`
	Cantidad         int             `json:"quantity"`
	ProductVariantID int64           `json:"product_variant_id"`
	ProductID        int64           `json:"product_id"`
}

// Payload is the fully assembled checkout hand-off.
type Payload struct {
	Lines            []PaymentLine   `json:"lines"`
	NIT              string          `json:"nit"`
	DireccionDestino string          `json:"direccion_destino"`
	CostoEnvio       decimal.Decimal `json:"costo_envio"`
	FechaEstimada    string          `json:"fecha_estimada"`
	Total            decimal.Decimal `json:"total"`
}

// Result carries the payment redirect plus the payload it was built from.
type Result struct {
	URL     string  `json:"url"`
	Payload Payload `json:"payload"`
}

// ExecuteInput captures the data the browser submits at checkout.
type ExecuteInput struct {
	NIT         string
	Destination geo.Coordinate
}

// Service assembles the checkout payload and opens the payment session.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, input ExecuteInput) (*Result, error)
}

type service struct {
	cartSvc  cartLoader
	quotes   quoteLoader
	sessions payments.SessionCreator
	now      func() time.Time
}

// NewService builds the checkout service.
func NewService(cartSvc cartLoader, quotes quoteLoader, sessions payments.SessionCreator) (Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart loader required")
	}
	if quotes == nil {
		return nil, fmt.Errorf("quote loader required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("payment session creator required")
	}
	return &service{
		cartSvc:  cartSvc,
		quotes:   quotes,
		sessions: sessions,
		now:      time.Now,
	}, nil
}

// Execute enforces the gating conjuncts in order, each with its own error,
// then assembles the payload and opens the payment session.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, input ExecuteInput) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "must be logged in to check out")
	}

	items, err := s.cartSvc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty")
	}

	if input.Destination.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "select a destination")
	}

	record, err := s.quotes.Get(ctx, userID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	if record == nil {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "request a shipping quote first")
	}
	if record.Destination != input.Destination {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "shipping quote does not match the selected destination")
	}

	if err := nit.Validate(input.NIT); err != nil {
		return nil, err
	}
	taxID := nit.Normalize(input.NIT)

	payload := assemblePayload(items, record, taxID, s.now())

	url, err := s.sessions.CreateSession(ctx, sessionInput(userID, payload))
	if err != nil {
		return nil, err
	}

	return &Result{URL: url, Payload: payload}, nil
}

// assemblePayload builds the payment lines in cart order, appends the
// shipping line, and totals everything with decimal arithmetic.
func assemblePayload(items []models.CartItem, record *shipping.CachedQuote, taxID string, now time.Time) Payload {
	lines := make([]PaymentLine, 0, len(items)+1)
	total := decimal.Zero

	for _, item := range items {
		line := PaymentLine{
			Nombre:           item.Nombre,
			Precio:           item.Precio,
			Cantidad:         item.Cantidad,
			ProductVariantID: item.ProductVariantID,
			ProductID:        ResolveProductID(item),
		}
		lines = append(lines, line)
		total = total.Add(item.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad))))
	}

	lines = append(lines, PaymentLine{
		Nombre:   shippingLineName,
		Precio:   record.Quote.TotalEnvio,
		Cantidad: 1,
	})
	total = total.Add(record.Quote.TotalEnvio)

	return Payload{
		Lines:            lines,
		NIT:              taxID,
		DireccionDestino: record.Destination.String(),
		CostoEnvio:       record.Quote.TotalEnvio,
		FechaEstimada:    now.AddDate(0, 0, deliveryEstimateDays).Format("2006-01-02"),
		Total:            total,
	}
}

func sessionInput(userID uuid.UUID, payload Payload) payments.SessionInput {
	lines := make([]payments.Line, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		lines = append(lines, payments.Line{
			Name:     line.Nombre,
			Price:    line.Precio,
			Quantity: int64(line.Cantidad),
		})
	}
	return payments.SessionInput{
		UserID:        userID.String(),
		NIT:           payload.NIT,
		Lines:         lines,
		Destination:   payload.DireccionDestino,
		ShippingCost:  payload.CostoEnvio,
		EstimatedDate: payload.FechaEstimada,
	}
}
