// Package tarifa wraps the external shipping tariff service.
package tarifa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/geo"
)

const (
	calculateTariffPath       = "tarifa_envio/calcular"
	healthPath                = "health"
	errorBodyReadLimit  int64 = 4096
)

var errBaseURLRequired = errors.New("tariff base url is required")

// Client calls the tariff service that computes the authoritative shipping cost.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient builds the tariff client for the configured base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// LineItem is the normalized shape of one cart line sent for quoting.
// Missing upstream data arrives here already defaulted to zero values.
type LineItem struct {
	AltoCm   float64         `json:"alto"`
	AnchoCm  float64         `json:"ancho"`
	LargoCm  float64         `json:"largo"`
	PesoKg   float64         `json:"peso_kg"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad int             `json:"cantidad"`
	Fragil   bool            `json:"fragil"`
}

// Route carries the origin/destination pair for the tariff computation.
type Route struct {
	OrigenLat  float64 `json:"origen_lat"`
	OrigenLng  float64 `json:"origen_lng"`
	DestinoLat float64 `json:"destino_lat"`
	DestinoLng float64 `json:"destino_lng"`
}

// QuoteRequest is the payload posted to the tariff endpoint.
type QuoteRequest struct {
	Items []LineItem `json:"items"`
	Envio Route      `json:"envio"`
}

// ItemBreakdown is the per-line detail returned by the tariff service,
// correlated back to cart lines by index.
type ItemBreakdown struct {
	Nombre          string          `json:"nombre,omitempty"`
	PesoFacturadoKg float64         `json:"peso_facturado_kg"`
	CostoEnvio      decimal.Decimal `json:"costo_envio"`
	RecargoFragil   decimal.Decimal `json:"recargo_fragil"`
}

// Quote is the authoritative cost breakdown for a cart/destination pair.
type Quote struct {
	DistanciaKm           float64         `json:"distancia_km"`
	TotalEnvio            decimal.Decimal `json:"total_envio"`
	RecargoDistanciaTotal decimal.Decimal `json:"recargo_distancia_total"`
	CostoBaseEnvioUnico   decimal.Decimal `json:"costo_base_envio_unico"`
	DescuentoPorEnvioPct  float64         `json:"descuento_por_envio_pct"`
	DescuentoPorEnvioTot  decimal.Decimal `json:"descuento_por_envio_total"`
	Detalle               []ItemBreakdown `json:"detalle"`
}

// NewRoute builds the wire route from coordinate pairs.
func NewRoute(origin, destination geo.Coordinate) Route {
	return Route{
		OrigenLat:  origin.Lat,
		OrigenLng:  origin.Lng,
		DestinoLat: destination.Lat,
		DestinoLng: destination.Lng,
	}
}

// Calculate posts the normalized items and route, returning the quote.
func (c *Client) Calculate(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tariff client not configured")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal tariff request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(calculateTariffPath), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build tariff request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute tariff request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, c.remoteError(resp)
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode tariff response")
	}

	return &quote, nil
}

// Health checks the tariff service liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "tariff client not configured")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(healthPath), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build tariff health request")
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute tariff health request")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("tariff service unhealthy: status %d", resp.StatusCode))
	}
	return nil
}

// remoteError surfaces the tariff service's own message verbatim when the
// body carries one, falling back to the raw status.
func (c *Client) remoteError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Error); msg != "" {
			return pkgerrors.New(pkgerrors.CodeDependency, msg)
		}
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			return pkgerrors.New(pkgerrors.CodeDependency, msg)
		}
	}

	return pkgerrors.Wrap(
		pkgerrors.CodeDependency,
		fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		"tariff request failed",
	)
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
