package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiendasport/storefront-api/pkg/db/models"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
	"github.com/tiendasport/storefront-api/pkg/types"
)

// quoteInvalidator drops the user's cached shipping quote. Every cart
// mutation goes through it: a quote priced against a stale cart must never
// survive the mutation that staled it.
type quoteInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// txRunner executes fn inside a database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes cart operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, variantID int64, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, userID uuid.UUID, variantID int64) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo   Repository
	quotes quoteInvalidator
	tx     txRunner
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo Repository, quotes quoteInvalidator, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if quotes == nil {
		return nil, fmt.Errorf("quote invalidator required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, quotes: quotes, tx: tx}, nil
}

// AddItemInput captures one line as the catalog hands it over. The product
// reference fields are all optional; upstream payloads disagree on which one
// they carry.
type AddItemInput struct {
	ProductVariantID int64
	ParentProductID  *int64
	ProductID        *int64
	LegacyProductoID *int64
	ColorVariant     *types.ColorVariantRef
	Nombre           string
	Precio           decimal.Decimal
	Cantidad         int
	AltoCm           *float64
	AnchoCm          *float64
	LargoCm          *float64
	PesoKg           *float64
	Fragil           *bool
	Talla            string
	ImagenURL        string
}

// Get returns the user's cart lines in insertion order.
func (s *service) Get(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return items, nil
}

// Add inserts a line, merging quantities when the variant is already present.
func (s *service) Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductVariantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product variant id is required")
	}
	if input.Nombre == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if input.Cantidad < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.Precio.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	// The merge is a read-modify-write; it runs inside one transaction so a
	// concurrent add cannot split the same variant across two lines.
	var item *models.CartItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindLine(ctx, userID, input.ProductVariantID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}

		if existing != nil {
			existing.Cantidad += input.Cantidad
			existing.Precio = input.Precio
			existing.Nombre = input.Nombre
			item = existing
		} else {
			position, err := repo.NextPosition(ctx, userID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign cart position")
			}
			item = &models.CartItem{
				UserID:           userID,
				ProductVariantID: input.ProductVariantID,
				ParentProductID:  input.ParentProductID,
				ProductID:        input.ProductID,
				LegacyProductoID: input.LegacyProductoID,
				ColorVariant:     input.ColorVariant,
				Nombre:           input.Nombre,
				Precio:           input.Precio,
				Cantidad:         input.Cantidad,
				AltoCm:           input.AltoCm,
				AnchoCm:          input.AnchoCm,
				LargoCm:          input.LargoCm,
				PesoKg:           input.PesoKg,
				Fragil:           input.Fragil,
				Talla:            input.Talla,
				ImagenURL:        input.ImagenURL,
				Position:         position,
			}
		}

		if err := repo.Save(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart line")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart line")
	}

	if err := s.invalidateQuote(ctx, userID); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets the absolute quantity for a line.
func (s *service) UpdateQuantity(ctx context.Context, userID uuid.UUID, variantID int64, quantity int) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var item *models.CartItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		found, err := repo.FindLine(ctx, userID, variantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}

		found.Cantidad = quantity
		if err := repo.Save(ctx, found); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart line")
		}
		item = found
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart line")
	}

	if err := s.invalidateQuote(ctx, userID); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes one line.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, variantID int64) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	affected, err := s.repo.DeleteLine(ctx, userID, variantID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return s.invalidateQuote(ctx, userID)
}

// Clear removes every line for the user.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.ClearUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return s.invalidateQuote(ctx, userID)
}

func (s *service) invalidateQuote(ctx context.Context, userID uuid.UUID) error {
	if err := s.quotes.Invalidate(ctx, userID.String()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate shipping quote")
	}
	return nil
}
