package cart

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiendasport/storefront-api/pkg/db/models"
	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
)

type fakeRepo struct {
	lines map[int64]*models.CartItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{lines: map[int64]*models.CartItem{}}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	out := make([]models.CartItem, 0, len(f.lines))
	for _, item := range f.lines {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeRepo) FindLine(ctx context.Context, userID uuid.UUID, variantID int64) (*models.CartItem, error) {
	if item, ok := f.lines[variantID]; ok {
		copy := *item
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) Save(ctx context.Context, item *models.CartItem) error {
	copy := *item
	f.lines[item.ProductVariantID] = &copy
	return nil
}

func (f *fakeRepo) DeleteLine(ctx context.Context, userID uuid.UUID, variantID int64) (int64, error) {
	if _, ok := f.lines[variantID]; !ok {
		return 0, nil
	}
	delete(f.lines, variantID)
	return 1, nil
}

func (f *fakeRepo) ClearUser(ctx context.Context, userID uuid.UUID) error {
	f.lines = map[int64]*models.CartItem{}
	return nil
}

func (f *fakeRepo) NextPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	return len(f.lines), nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, userID string) error {
	f.calls++
	return nil
}

type fakeTx struct {
	calls int
	err   error
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeInvalidator) {
	t.Helper()
	repo := newFakeRepo()
	quotes := &fakeInvalidator{}
	svc, err := NewService(repo, quotes, &fakeTx{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, quotes
}

func addInput(variantID int64, qty int, price string) AddItemInput {
	return AddItemInput{
		ProductVariantID: variantID,
		Nombre:           "Camisola",
		Precio:           decimal.RequireFromString(price),
		Cantidad:         qty,
	}
}

func TestAddInvalidatesQuote(t *testing.T) {
	svc, _, quotes := newTestService(t)
	userID := uuid.New()

	if _, err := svc.Add(context.Background(), userID, addInput(10, 1, "100")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if quotes.calls != 1 {
		t.Fatalf("expected 1 invalidation, got %d", quotes.calls)
	}
}

func TestAddMergesExistingVariant(t *testing.T) {
	svc, repo, _ := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.Add(ctx, userID, addInput(10, 2, "100")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, userID, addInput(10, 3, "100")); err != nil {
		t.Fatalf("add again: %v", err)
	}

	if got := repo.lines[10].Cantidad; got != 5 {
		t.Fatalf("expected merged quantity 5, got %d", got)
	}
	if len(repo.lines) != 1 {
		t.Fatalf("expected single line, got %d", len(repo.lines))
	}
}

func TestEveryMutationInvalidatesQuote(t *testing.T) {
	svc, _, quotes := newTestService(t)
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.Add(ctx, userID, addInput(10, 1, "50")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, userID, 10, 4); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if err := svc.Remove(ctx, userID, 10); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.Add(ctx, userID, addInput(11, 1, "75")); err != nil {
		t.Fatalf("add second: %v", err)
	}
	if err := svc.Clear(ctx, userID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if quotes.calls != 5 {
		t.Fatalf("expected 5 invalidations, got %d", quotes.calls)
	}
}

func TestAddRunsInsideTransaction(t *testing.T) {
	repo := newFakeRepo()
	quotes := &fakeInvalidator{}
	tx := &fakeTx{}
	svc, err := NewService(repo, quotes, tx)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	userID := uuid.New()
	ctx := context.Background()

	if _, err := svc.Add(ctx, userID, addInput(10, 1, "100")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, userID, 10, 3); err != nil {
		t.Fatalf("update quantity: %v", err)
	}

	if tx.calls != 2 {
		t.Fatalf("expected 2 transactions, got %d", tx.calls)
	}
}

func TestAbortedTransactionSkipsInvalidation(t *testing.T) {
	repo := newFakeRepo()
	quotes := &fakeInvalidator{}
	tx := &fakeTx{err: gorm.ErrInvalidTransaction}
	svc, err := NewService(repo, quotes, tx)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Add(context.Background(), uuid.New(), addInput(10, 1, "100"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if quotes.calls != 0 {
		t.Fatal("rolled-back write must not invalidate the quote")
	}
	if len(repo.lines) != 0 {
		t.Fatalf("expected no persisted lines, got %d", len(repo.lines))
	}
}

func TestGetDoesNotInvalidate(t *testing.T) {
	svc, _, quotes := newTestService(t)
	userID := uuid.New()

	if _, err := svc.Get(context.Background(), userID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if quotes.calls != 0 {
		t.Fatalf("reads must not invalidate, got %d calls", quotes.calls)
	}
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateQuantity(context.Background(), uuid.New(), 99, 2)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRemoveUnknownLine(t *testing.T) {
	svc, _, quotes := newTestService(t)

	err := svc.Remove(context.Background(), uuid.New(), 99)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if quotes.calls != 0 {
		t.Fatal("failed removal must not invalidate the quote")
	}
}

func TestAddValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name  string
		input AddItemInput
	}{
		{"missing variant", AddItemInput{Nombre: "x", Cantidad: 1}},
		{"missing name", AddItemInput{ProductVariantID: 1, Cantidad: 1}},
		{"zero quantity", AddItemInput{ProductVariantID: 1, Nombre: "x", Cantidad: 0}},
		{"negative price", addNegativePrice()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, userID, tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func addNegativePrice() AddItemInput {
	input := addInput(1, 1, "10")
	input.Precio = decimal.RequireFromString("-1")
	return input
}
