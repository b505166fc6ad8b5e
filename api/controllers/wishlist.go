package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiendasport/storefront-api/api/responses"
	"github.com/tiendasport/storefront-api/api/validators"
	wishlistsvc "github.com/tiendasport/storefront-api/internal/wishlist"
	"github.com/tiendasport/storefront-api/pkg/db/models"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/logger"
)

// WishlistFetch returns the user's saved variants.
func WishlistFetch(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]wishlistItemResponse, 0, len(items))
		for i := range items {
			out = append(out, newWishlistItemResponse(&items[i]))
		}
		responses.WriteSuccess(w, map[string]any{"items": out})
	}
}

// WishlistAdd saves a variant for later.
func WishlistAdd(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addWishlistItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Add(r.Context(), userID, wishlistsvc.AddItemInput{
			ProductVariantID: payload.ProductVariantID,
			ProductID:        payload.ProductID,
			Nombre:           payload.Nombre,
			Precio:           payload.Precio,
			ImagenURL:        payload.ImagenURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newWishlistItemResponse(item))
	}
}

// WishlistRemove drops a saved variant.
func WishlistRemove(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
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

// WishlistMoveToCart moves a saved variant into the cart.
func WishlistMoveToCart(svc wishlistsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
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

		item, err := svc.MoveToCart(r.Context(), userID, variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartItemResponse(item))
	}
}

type addWishlistItemRequest struct {
	ProductVariantID int64           `json:"product_variant_id" validate:"required,min=1"`
	ProductID        *int64          `json:"product_id"`
	Nombre           string          `json:"nombre" validate:"required"`
	Precio           decimal.Decimal `json:"precio" validate:"required"`
	ImagenURL        string          `json:"imagen_url"`
}

type wishlistItemResponse struct {
	ProductVariantID int64           `json:"product_variant_id"`
	ProductID        *int64          `json:"product_id,omitempty"`
	Nombre           string          `json:"nombre"`
	Precio           decimal.Decimal `json:"precio"`
	ImagenURL        string          `json:"imagen_url,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func newWishlistItemResponse(item *models.WishlistItem) wishlistItemResponse {
	return wishlistItemResponse{
		ProductVariantID: item.ProductVariantID,
		ProductID:        item.ProductID,
		Nombre:           item.Nombre,
		Precio:           item.Precio,
		ImagenURL:        item.ImagenURL,
		CreatedAt:        item.CreatedAt,
	}
}
