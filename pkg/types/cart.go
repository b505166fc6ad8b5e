package types

// ColorVariantRef carries the nested color-variant reference some upstream
// catalog payloads use instead of a direct product id.
type ColorVariantRef struct {
	ProductID int64  `json:"product_id"`
	Color     string `json:"color,omitempty"`
}
