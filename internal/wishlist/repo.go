package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tiendasport/storefront-api/pkg/db/models"
)

// Repository persists wishlist entries per user.
type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	Find(ctx context.Context, userID uuid.UUID, variantID int64) (*models.WishlistItem, error)
	Save(ctx context.Context, item *models.WishlistItem) error
	Delete(ctx context.Context, userID uuid.UUID, variantID int64) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds the gorm-backed wishlist repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormRepository) Find(ctx context.Context, userID uuid.UUID, variantID int64) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_variant_id = ?", userID, variantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) Save(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_variant_id"}},
			DoNothing: true,
		}).
		Create(item).Error
}

func (r *gormRepository) Delete(ctx context.Context, userID uuid.UUID, variantID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_variant_id = ?", userID, variantID).
		Delete(&models.WishlistItem{})
	return result.RowsAffected, result.Error
}
