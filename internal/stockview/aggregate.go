package stockview

import (
	"github.com/cducote/pawstock-backend/pkg/db/models"
)

// VariantIsLow reports whether a single variant sits at or below its
// reorder threshold.
func VariantIsLow(variant models.ProductVariant) bool {
	return variant.CurrentStock <= variant.ReorderLevel
}

// IsLowStock is true iff any variant is at or below its reorder level.
// An empty variant set is never low.
func IsLowStock(variants []models.ProductVariant) bool {
	for _, variant := range variants {
		if VariantIsLow(variant) {
			return true
		}
	}
	return false
}

// TotalStock sums current stock across the variant set.
func TotalStock(variants []models.ProductVariant) int {
	total := 0
	for _, variant := range variants {
		total += variant.CurrentStock
	}
	return total
}

// StockBySize maps each requested size label to the stock of the
// variant carrying that label, or 0 when no variant matches. Labels
// without stock still appear so a fixed Small/Medium/Large breakdown
// renders completely.
func StockBySize(variants []models.ProductVariant, sizes []string) map[string]int {
	out := make(map[string]int, len(sizes))
	for _, size := range sizes {
		out[size] = 0
	}
	for _, variant := range variants {
		if variant.Size == nil {
			continue
		}
		if _, ok := out[*variant.Size]; ok {
			out[*variant.Size] += variant.CurrentStock
		}
	}
	return out
}
