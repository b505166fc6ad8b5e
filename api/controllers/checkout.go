package controllers

import (
	"net/http"

	"github.com/tiendasport/storefront-api/api/responses"
	"github.com/tiendasport/storefront-api/api/validators"
	checkoutsvc "github.com/tiendasport/storefront-api/internal/checkout"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/geo"
	"github.com/tiendasport/storefront-api/pkg/logger"
)

// Checkout assembles the payment payload and returns the redirect URL.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), userID, checkoutsvc.ExecuteInput{
			NIT: payload.NIT,
			Destination: geo.Coordinate{
				Lat: payload.Destination.Lat,
				Lng: payload.Destination.Lng,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type checkoutRequest struct {
	NIT         string              `json:"nit"`
	Destination checkoutDestination `json:"destination" validate:"required"`
}

type checkoutDestination struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}
