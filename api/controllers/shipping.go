package controllers

import (
	"net/http"
	"strconv"

	"github.com/tiendasport/storefront-api/api/responses"
	"github.com/tiendasport/storefront-api/api/validators"
	shippingsvc "github.com/tiendasport/storefront-api/internal/shipping"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/geo"
	"github.com/tiendasport/storefront-api/pkg/logger"
)

// ShippingPreview computes the straight-line distance readout for the map
// widget. It never calls the tariff service.
func ShippingPreview(svc shippingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		destination, err := coordinateQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		preview, err := svc.Preview(destination)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, preview)
	}
}

// ShippingQuote requests an authoritative quote for the selected destination.
func ShippingQuote(svc shippingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.RequestQuote(r.Context(), userID, payload.coordinate())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// ShippingCurrentQuote returns the quote cached for the user, if any.
func ShippingCurrentQuote(svc shippingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CurrentQuote(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// Zero is a legal value for either axis (equator, prime meridian); the
// service treats only the (0,0) pair as unset.
type quoteRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

func (p quoteRequest) coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: p.Lat, Lng: p.Lng}
}

func coordinateQuery(r *http.Request) (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return geo.Coordinate{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid latitude")
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		return geo.Coordinate{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid longitude")
	}
	return geo.Coordinate{Lat: lat, Lng: lng}, nil
}
