package checkout

import (
	"testing"

	"github.com/tiendasport/storefront-api/pkg/db/models"
	"github.com/tiendasport/storefront-api/pkg/types"
)

func int64Ptr(v int64) *int64 { return &v }

func TestResolveProductIDChainOrder(t *testing.T) {
	cases := []struct {
		name string
		item models.CartItem
		want int64
	}{
		{
			name: "parent product wins over everything",
			item: models.CartItem{
				ParentProductID:  int64Ptr(11),
				ProductID:        int64Ptr(22),
				LegacyProductoID: int64Ptr(33),
				ColorVariant:     &types.ColorVariantRef{ProductID: 44},
			},
			want: 11,
		},
		{
			name: "direct product when parent missing",
			item: models.CartItem{
				ProductID:        int64Ptr(22),
				LegacyProductoID: int64Ptr(33),
			},
			want: 22,
		},
		{
			name: "legacy producto_id as third fallback",
			item: models.CartItem{
				LegacyProductoID: int64Ptr(33),
				ColorVariant:     &types.ColorVariantRef{ProductID: 44},
			},
			want: 33,
		},
		{
			name: "nested color variant as last resort",
			item: models.CartItem{
				ColorVariant: &types.ColorVariantRef{ProductID: 44, Color: "rojo"},
			},
			want: 44,
		},
		{
			name: "no reference at all resolves to zero",
			item: models.CartItem{ProductVariantID: 5},
			want: 0,
		},
		{
			name: "zero-valued references are skipped",
			item: models.CartItem{
				ParentProductID: int64Ptr(0),
				ProductID:       int64Ptr(0),
				ColorVariant:    &types.ColorVariantRef{ProductID: 44},
			},
			want: 44,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveProductID(tc.item); got != tc.want {
				t.Fatalf("ResolveProductID = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestExtractorsIndividually(t *testing.T) {
	if id, ok := fromParentProduct(models.CartItem{ParentProductID: int64Ptr(7)}); !ok || id != 7 {
		t.Fatalf("fromParentProduct = %d, %v", id, ok)
	}
	if _, ok := fromParentProduct(models.CartItem{}); ok {
		t.Fatal("fromParentProduct should miss on empty item")
	}
	if id, ok := fromDirectProduct(models.CartItem{ProductID: int64Ptr(8)}); !ok || id != 8 {
		t.Fatalf("fromDirectProduct = %d, %v", id, ok)
	}
	if id, ok := fromLegacyProducto(models.CartItem{LegacyProductoID: int64Ptr(9)}); !ok || id != 9 {
		t.Fatalf("fromLegacyProducto = %d, %v", id, ok)
	}
	if id, ok := fromColorVariant(models.CartItem{ColorVariant: &types.ColorVariantRef{ProductID: 10}}); !ok || id != 10 {
		t.Fatalf("fromColorVariant = %d, %v", id, ok)
	}
	if _, ok := fromColorVariant(models.CartItem{ColorVariant: &types.ColorVariantRef{}}); ok {
		t.Fatal("fromColorVariant should miss on zero product id")
	}
}
