package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiendasport/storefront-api/internal/cart"
	"github.com/tiendasport/storefront-api/pkg/db/models"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
)

type cartAdder interface {
	Add(ctx context.Context, userID uuid.UUID, input cart.AddItemInput) (*models.CartItem, error)
}

// Service exposes wishlist operations.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.WishlistItem, error)
	Remove(ctx context.Context, userID uuid.UUID, variantID int64) error
	MoveToCart(ctx context.Context, userID uuid.UUID, variantID int64) (*models.CartItem, error)
}

// AddItemInput captures the variant being saved for later.
type AddItemInput struct {
	ProductVariantID int64
	ProductID        *int64
	Nombre           string
	Precio           decimal.Decimal
	ImagenURL        string
}

type service struct {
	repo    Repository
	cartSvc cartAdder
}

// NewService builds the wishlist service.
func NewService(repo Repository, cartSvc cartAdder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{repo: repo, cartSvc: cartSvc}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, input AddItemInput) (*models.WishlistItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductVariantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product variant id is required")
	}
	if input.Nombre == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}

	item := &models.WishlistItem{
		UserID:           userID,
		ProductVariantID: input.ProductVariantID,
		ProductID:        input.ProductID,
		Nombre:           input.Nombre,
		Precio:           input.Precio,
		ImagenURL:        input.ImagenURL,
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist wishlist item")
	}
	return item, nil
}

func (s *service) Remove(ctx context.Context, userID uuid.UUID, variantID int64) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	affected, err := s.repo.Delete(ctx, userID, variantID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wishlist item not found")
	}
	return nil
}

// MoveToCart adds the saved variant to the cart and drops it from the
// wishlist. Going through cart.Add keeps the quote invalidation law intact.
func (s *service) MoveToCart(ctx context.Context, userID uuid.UUID, variantID int64) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	item, err := s.repo.Find(ctx, userID, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wishlist item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist item")
	}

	cartItem, err := s.cartSvc.Add(ctx, userID, cart.AddItemInput{
		ProductVariantID: item.ProductVariantID,
		ProductID:        item.ProductID,
		Nombre:           item.Nombre,
		Precio:           item.Precio,
		Cantidad:         1,
		ImagenURL:        item.ImagenURL,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Delete(ctx, userID, variantID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove moved wishlist item")
	}
	return cartItem, nil
}
