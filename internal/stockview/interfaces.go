package stockview

import (
	"context"

	"github.com/google/uuid"

	"github.com/cducote/pawstock-backend/pkg/db/models"
	"github.com/cducote/pawstock-backend/pkg/enums"
)

// Repository defines the reads the aggregator needs.
type Repository interface {
	ListActiveProductsWithVariants(ctx context.Context) ([]models.Product, error)
}

// ProductStockSummary is the display-ready aggregation for one product.
type ProductStockSummary struct {
	ProductID   uuid.UUID             `json:"product_id"`
	Name        string                `json:"name"`
	Category    enums.ProductCategory `json:"category"`
	TotalStock  int                   `json:"total_stock"`
	LowStock    bool                  `json:"low_stock"`
	OutOfStock  bool                  `json:"out_of_stock"`
	StockBySize map[string]int        `json:"stock_by_size"`
	Variants    []VariantStockSummary `json:"variants"`
}

// VariantStockSummary is the per-variant slice of a product summary.
type VariantStockSummary struct {
	VariantID    uuid.UUID `json:"variant_id"`
	SKU          *string   `json:"sku"`
	Size         *string   `json:"size"`
	Color        *string   `json:"color"`
	CurrentStock int       `json:"current_stock"`
	ReorderLevel int       `json:"reorder_level"`
	LowStock     bool      `json:"low_stock"`
	OutOfStock   bool      `json:"out_of_stock"`
}
