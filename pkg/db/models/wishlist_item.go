package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WishlistItem persists one saved product variant per user.
type WishlistItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_wishlist_user_variant"`
	ProductVariantID int64           `gorm:"column:product_variant_id;not null;uniqueIndex:idx_wishlist_user_variant"`
	ProductID        *int64          `gorm:"column:product_id"`
	Nombre           string          `gorm:"column:nombre;not null"`
	Precio           decimal.Decimal `gorm:"column:precio;type:numeric(12,2);not null"`
	ImagenURL        string          `gorm:"column:imagen_url"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
}
