package stockview

import (
	"testing"

	"github.com/cducote/pawstock-backend/pkg/db/models"
)

func strPtr(s string) *string { return &s }

func TestIsLowStock(t *testing.T) {
	cases := []struct {
		name     string
		variants []models.ProductVariant
		want     bool
	}{
		{
			name: "all healthy",
			variants: []models.ProductVariant{
				{CurrentStock: 10, ReorderLevel: 5},
				{CurrentStock: 8, ReorderLevel: 5},
			},
			want: false,
		},
		{
			name: "equality counts as low",
			variants: []models.ProductVariant{
				{CurrentStock: 5, ReorderLevel: 5},
			},
			want: true,
		},
		{
			name: "one low variant flags the set",
			variants: []models.ProductVariant{
				{CurrentStock: 10, ReorderLevel: 5},
				{CurrentStock: 0, ReorderLevel: 5},
			},
			want: true,
		},
		{
			name:     "empty set is never low",
			variants: nil,
			want:     false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsLowStock(tc.variants); got != tc.want {
				t.Fatalf("IsLowStock = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTotalStock(t *testing.T) {
	if got := TotalStock(nil); got != 0 {
		t.Fatalf("empty set total = %d, want 0", got)
	}

	variants := []models.ProductVariant{
		{CurrentStock: 2},
		{CurrentStock: 0},
		{CurrentStock: 7},
	}
	if got := TotalStock(variants); got != 9 {
		t.Fatalf("total = %d, want 9", got)
	}
}

func TestStockBySizeFillsRequestedLabels(t *testing.T) {
	variants := []models.ProductVariant{
		{Size: strPtr("Small"), CurrentStock: 2},
		{Size: strPtr("Large"), CurrentStock: 0},
	}

	got := StockBySize(variants, []string{"Small", "Medium", "Large"})

	want := map[string]int{"Small": 2, "Medium": 0, "Large": 0}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for label, stock := range want {
		if got[label] != stock {
			t.Fatalf("%s = %d, want %d", label, got[label], stock)
		}
	}
}

func TestStockBySizeIgnoresUnrequestedAndUnsized(t *testing.T) {
	variants := []models.ProductVariant{
		{Size: strPtr("XL"), CurrentStock: 4},
		{Size: nil, CurrentStock: 3},
		{Size: strPtr("Small"), CurrentStock: 1},
	}

	got := StockBySize(variants, []string{"Small"})
	if len(got) != 1 || got["Small"] != 1 {
		t.Fatalf("got %v, want map[Small:1]", got)
	}
}
