package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendasport/storefront-api/api/middleware"
	cartsvc "github.com/tiendasport/storefront-api/internal/cart"
	"github.com/tiendasport/storefront-api/pkg/db/models"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
)

type fakeCartService struct {
	items     []models.CartItem
	added     []cartsvc.AddItemInput
	updateErr error
}

func (f *fakeCartService) Get(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return f.items, nil
}

func (f *fakeCartService) Add(ctx context.Context, userID uuid.UUID, input cartsvc.AddItemInput) (*models.CartItem, error) {
	f.added = append(f.added, input)
	return &models.CartItem{
		UserID:           userID,
		ProductVariantID: input.ProductVariantID,
		Nombre:           input.Nombre,
		Precio:           input.Precio,
		Cantidad:         input.Cantidad,
	}, nil
}

func (f *fakeCartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, variantID int64, quantity int) (*models.CartItem, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.CartItem{UserID: userID, ProductVariantID: variantID, Cantidad: quantity}, nil
}

func (f *fakeCartService) Remove(ctx context.Context, userID uuid.UUID, variantID int64) error {
	return nil
}

func (f *fakeCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	return req.WithContext(ctx)
}

func TestCartFetchReturnsItems(t *testing.T) {
	svc := &fakeCartService{items: []models.CartItem{
		{ProductVariantID: 10, Nombre: "Balón de fútbol", Precio: decimal.RequireFromString("100"), Cantidad: 2},
		{ProductVariantID: 11, Nombre: "Camisola", Precio: decimal.RequireFromString("150"), Cantidad: 1},
	}}

	rec := httptest.NewRecorder()
	CartFetch(svc, nil)(rec, authedRequest(http.MethodGet, "/api/v1/cart", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, 2, envelope.Data.Count)
	assert.Equal(t, "Balón de fútbol", envelope.Data.Items[0].Nombre)
}

func TestCartFetchRequiresUser(t *testing.T) {
	rec := httptest.NewRecorder()
	CartFetch(&fakeCartService{}, nil)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	svc := &fakeCartService{}
	body := `{"product_variant_id":10,"nombre":"Balón","precio":"100","cantidad":1,"sorpresa":true}`

	rec := httptest.NewRecorder()
	CartAddItem(svc, nil)(rec, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.added)
}

func TestCartAddItemCreatesLine(t *testing.T) {
	svc := &fakeCartService{}
	body := `{"product_variant_id":10,"nombre":"Balón de fútbol","precio":"100","cantidad":2,"peso_kg":0.45}`

	rec := httptest.NewRecorder()
	CartAddItem(svc, nil)(rec, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.added, 1)
	assert.Equal(t, int64(10), svc.added[0].ProductVariantID)
	require.NotNil(t, svc.added[0].PesoKg)
	assert.InDelta(t, 0.45, *svc.added[0].PesoKg, 1e-9)
}

func TestCartUpdateQuantityRejectsBadVariantParam(t *testing.T) {
	router := chi.NewRouter()
	router.Patch("/cart/items/{variantId}", CartUpdateQuantity(&fakeCartService{}, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/cart/items/abc", `{"cantidad":3}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, string(pkgerrors.CodeValidation), envelope.Error.Code)
	assert.Equal(t, "invalid variant id", envelope.Error.Message)
}

func TestCartUpdateQuantitySurfacesNotFound(t *testing.T) {
	svc := &fakeCartService{updateErr: pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")}
	router := chi.NewRouter()
	router.Patch("/cart/items/{variantId}", CartUpdateQuantity(svc, nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPatch, "/cart/items/42", `{"cantidad":3}`))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "cart line not found", envelope.Error.Message)
}
