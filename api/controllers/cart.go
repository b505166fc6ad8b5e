package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tiendasport/storefront-api/api/responses"
	"github.com/tiendasport/storefront-api/api/validators"
	cartsvc "github.com/tiendasport/storefront-api/internal/cart"
	"github.com/tiendasport/storefront-api/pkg/db/models"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/logger"
	"github.com/tiendasport/storefront-api/pkg/types"
)

// CartFetch returns the user's cart lines in display order.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(items))
	}
}

// CartAddItem inserts a line, merging quantities on repeated variants.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Add(r.Context(), userID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartItemResponse(item))
	}
}

// CartUpdateQuantity sets the absolute quantity for one line.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := variantIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateQuantity(r.Context(), userID, variantID, payload.Cantidad)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartItemResponse(item))
	}
}

// CartRemoveItem deletes one line.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := variantIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Remove(r.Context(), userID, variantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// CartClear removes every line for the user.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

func variantIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "variantId")
	variantID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || variantID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid variant id")
	}
	return variantID, nil
}

type addCartItemRequest struct {
	ProductVariantID int64                  `json:"product_variant_id" validate:"required,min=1"`
	ParentProductID  *int64                 `json:"parent_product_id"`
	ProductID        *int64                 `json:"product_id"`
	LegacyProductoID *int64                 `json:"producto_id"`
	ColorVariant     *types.ColorVariantRef `json:"color_variant"`
	Nombre           string                 `json:"nombre" validate:"required"`
	Precio           decimal.Decimal        `json:"precio" validate:"required"`
	Cantidad         int                    `json:"cantidad" validate:"required,min=1"`
	AltoCm           *float64               `json:"alto"`
	AnchoCm          *float64               `json:"ancho"`
	LargoCm          *float64               `json:"largo"`
	PesoKg           *float64               `json:"peso_kg"`
	Fragil           *bool                  `json:"fragil"`
	Talla            string                 `json:"talla"`
	ImagenURL        string                 `json:"imagen_url"`
}

func (p addCartItemRequest) toInput() cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		ProductVariantID: p.ProductVariantID,
		ParentProductID:  p.ParentProductID,
		ProductID:        p.ProductID,
		LegacyProductoID: p.LegacyProductoID,
		ColorVariant:     p.ColorVariant,
		Nombre:           p.Nombre,
		Precio:           p.Precio,
		Cantidad:         p.Cantidad,
		AltoCm:           p.AltoCm,
		AnchoCm:          p.AnchoCm,
		LargoCm:          p.LargoCm,
		PesoKg:           p.PesoKg,
		Fragil:           p.Fragil,
		Talla:            p.Talla,
		ImagenURL:        p.ImagenURL,
	}
}

type updateQuantityRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type cartItemResponse struct {
	ProductVariantID int64                  `json:"product_variant_id"`
	ParentProductID  *int64                 `json:"parent_product_id,omitempty"`
	ProductID        *int64                 `json:"product_id,omitempty"`
	LegacyProductoID *int64                 `json:"producto_id,omitempty"`
	ColorVariant     *types.ColorVariantRef `json:"color_variant,omitempty"`
	Nombre           string                 `json:"nombre"`
	Precio           decimal.Decimal        `json:"precio"`
	Cantidad         int                    `json:"cantidad"`
	Talla            string                 `json:"talla,omitempty"`
	ImagenURL        string                 `json:"imagen_url,omitempty"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Count int                `json:"count"`
}

func newCartItemResponse(item *models.CartItem) cartItemResponse {
	return cartItemResponse{
		ProductVariantID: item.ProductVariantID,
		ParentProductID:  item.ParentProductID,
		ProductID:        item.ProductID,
		LegacyProductoID: item.LegacyProductoID,
		ColorVariant:     item.ColorVariant,
		Nombre:           item.Nombre,
		Precio:           item.Precio,
		Cantidad:         item.Cantidad,
		Talla:            item.Talla,
		ImagenURL:        item.ImagenURL,
		UpdatedAt:        item.UpdatedAt,
	}
}

func newCartResponse(items []models.CartItem) cartResponse {
	out := make([]cartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, newCartItemResponse(&items[i]))
	}
	return cartResponse{Items: out, Count: len(out)}
}
