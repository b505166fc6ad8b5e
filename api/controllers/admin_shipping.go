package controllers

import (
	"net/http"

	"github.com/tiendasport/storefront-api/api/responses"
	shippingsvc "github.com/tiendasport/storefront-api/internal/shipping"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/logger"
)

// AdminShippingOrigin exposes the configured warehouse origin.
func AdminShippingOrigin(svc shippingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"origin": svc.Origin()})
	}
}

// AdminTariffHealth probes the tariff service on demand.
func AdminTariffHealth(svc shippingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}
		if err := svc.TariffHealth(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "healthy"})
	}
}
