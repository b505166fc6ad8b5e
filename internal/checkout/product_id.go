package checkout

import (
	"github.com/tiendasport/storefront-api/pkg/db/models"
)

// productIDExtractor pulls a product id out of one of the catalog shapes a
// cart line may carry. Extractors run in a fixed order; the first hit wins.
type productIDExtractor func(models.CartItem) (int64, bool)

func fromParentProduct(item models.CartItem) (int64, bool) {
	if item.ParentProductID != nil && *item.ParentProductID > 0 {
		return *item.ParentProductID, true
	}
	return 0, false
}

func fromDirectProduct(item models.CartItem) (int64, bool) {
	if item.ProductID != nil && *item.ProductID > 0 {
		return *item.ProductID, true
	}
	return 0, false
}

func fromLegacyProducto(item models.CartItem) (int64, bool) {
	if item.LegacyProductoID != nil && *item.LegacyProductoID > 0 {
		return *item.LegacyProductoID, true
	}
	return 0, false
}

func fromColorVariant(item models.CartItem) (int64, bool) {
	if item.ColorVariant != nil && item.ColorVariant.ProductID > 0 {
		return item.ColorVariant.ProductID, true
	}
	return 0, false
}

var productIDExtractors = []productIDExtractor{
	fromParentProduct,
	fromDirectProduct,
	fromLegacyProducto,
	fromColorVariant,
}

// ResolveProductID walks the extractor chain, returning 0 when no shape
// carries a usable reference.
func ResolveProductID(item models.CartItem) int64 {
	for _, extract := range productIDExtractors {
		if id, ok := extract(item); ok {
			return id
		}
	}
	return 0
}
