package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendasport/storefront-api/pkg/types"
)

// CartItem persists one cart line per user and variant. The product reference
// columns mirror the inconsistent upstream catalog shapes: any of them may be
// absent, and checkout resolves them in a fixed order.
type CartItem struct {
	ID               uuid.UUID              `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID              `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_cart_user_variant"`
	ProductVariantID int64                  `gorm:"column:product_variant_id;not null;uniqueIndex:idx_cart_user_variant"`
	ParentProductID  *int64                 `gorm:"column:parent_product_id"`
	ProductID        *int64                 `gorm:"column:product_id"`
	LegacyProductoID *int64                 `gorm:"column:producto_id"`
	ColorVariant     *types.ColorVariantRef `gorm:"column:color_variant;type:jsonb;serializer:json"`
	Nombre           string                 `gorm:"column:nombre;not null"`
	Precio           decimal.Decimal        `gorm:"column:precio;type:numeric(12,2);not null"`
	Cantidad         int                    `gorm:"column:cantidad;not null"`
	AltoCm           *float64               `gorm:"column:alto_cm"`
	AnchoCm          *float64               `gorm:"column:ancho_cm"`
	LargoCm          *float64               `gorm:"column:largo_cm"`
	PesoKg           *float64               `gorm:"column:peso_kg"`
	Fragil           *bool                  `gorm:"column:fragil"`
	Talla            string                 `gorm:"column:talla"`
	ImagenURL        string                 `gorm:"column:imagen_url"`
	Position         int                    `gorm:"column:position;not null;default:0"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
