package cart

import (
	"github.com/tiendasport/storefront-api/pkg/db/models"
	"github.com/tiendasport/storefront-api/pkg/tarifa"
)

// ToShippingItems converts cart lines into the tariff wire shape. Missing
// dimensions and weight default to zero and fragile to false: a degraded
// quote beats refusing to quote. Line order is preserved so the per-item
// breakdown in the response correlates by index.
func ToShippingItems(items []models.CartItem) []tarifa.LineItem {
	out := make([]tarifa.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, tarifa.LineItem{
			AltoCm:   floatOrZero(item.AltoCm),
			AnchoCm:  floatOrZero(item.AnchoCm),
			LargoCm:  floatOrZero(item.LargoCm),
			PesoKg:   floatOrZero(item.PesoKg),
			Precio:   item.Precio,
			Cantidad: item.Cantidad,
			Fragil:   boolOrFalse(item.Fragil),
		})
	}
	return out
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func boolOrFalse(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}
