package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tiendasport/storefront-api/pkg/db/models"
)

// Repository persists cart lines per user.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindLine(ctx context.Context, userID uuid.UUID, variantID int64) (*models.CartItem, error)
	Save(ctx context.Context, item *models.CartItem) error
	DeleteLine(ctx context.Context, userID uuid.UUID, variantID int64) (int64, error)
	ClearUser(ctx context.Context, userID uuid.UUID) error
	NextPosition(ctx context.Context, userID uuid.UUID) (int, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds the gorm-backed cart repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &gormRepository{db: tx}
}

// ListByUser returns the user's lines in insertion order, so downstream
// breakdowns correlate by index.
func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position asc").
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormRepository) FindLine(ctx context.Context, userID uuid.UUID, variantID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_variant_id = ?", userID, variantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepository) Save(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_variant_id"}},
			UpdateAll: true,
		}).
		Save(item).Error
}

func (r *gormRepository) DeleteLine(ctx context.Context, userID uuid.UUID, variantID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_variant_id = ?", userID, variantID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *gormRepository) ClearUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

func (r *gormRepository) NextPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
