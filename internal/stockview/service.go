package stockview

import (
	"context"
	"sync"

	"github.com/cducote/pawstock-backend/internal/events"
	"github.com/cducote/pawstock-backend/pkg/db/models"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
)

// Service derives stock summaries for display. Results are cached and
// the cache drops whenever the ledger publishes a variant change, so
// reads after a movement see fresh numbers without polling.
type Service struct {
	repo Repository

	mu     sync.Mutex
	cached []ProductStockSummary
	valid  bool
}

// NewService builds the aggregator. When a bus is provided the service
// subscribes for cache invalidation.
func NewService(repo Repository, bus *events.Bus) *Service {
	s := &Service{repo: repo}
	if bus != nil {
		bus.Subscribe(func(_ context.Context, _ events.VariantChanged) {
			s.Invalidate()
		})
	}
	return s
}

// Invalidate drops the cached summaries.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.valid = false
	s.cached = nil
	s.mu.Unlock()
}

// StockLevels returns the per-product stock summaries for all active
// products, ordered by product name.
func (s *Service) StockLevels(ctx context.Context) ([]ProductStockSummary, error) {
	s.mu.Lock()
	if s.valid {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	products, err := s.repo.ListActiveProductsWithVariants(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products with variants")
	}

	summaries := make([]ProductStockSummary, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, Summarize(product))
	}

	s.mu.Lock()
	s.cached = summaries
	s.valid = true
	s.mu.Unlock()

	return summaries, nil
}

// LowStock returns only the products flagged low, for restock views.
func (s *Service) LowStock(ctx context.Context) ([]ProductStockSummary, error) {
	summaries, err := s.StockLevels(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]ProductStockSummary, 0)
	for _, summary := range summaries {
		if summary.LowStock {
			low = append(low, summary)
		}
	}
	return low, nil
}

// Summarize aggregates one product's variant set into a display summary.
func Summarize(product models.Product) ProductStockSummary {
	total := TotalStock(product.Variants)

	variants := make([]VariantStockSummary, 0, len(product.Variants))
	for _, variant := range product.Variants {
		variants = append(variants, VariantStockSummary{
			VariantID:    variant.ID,
			SKU:          variant.SKU,
			Size:         variant.Size,
			Color:        variant.Color,
			CurrentStock: variant.CurrentStock,
			ReorderLevel: variant.ReorderLevel,
			LowStock:     VariantIsLow(variant),
			OutOfStock:   variant.CurrentStock == 0,
		})
	}

	return ProductStockSummary{
		ProductID:   product.ID,
		Name:        product.Name,
		Category:    product.Category,
		TotalStock:  total,
		LowStock:    IsLowStock(product.Variants),
		OutOfStock:  len(product.Variants) > 0 && total == 0,
		StockBySize: StockBySize(product.Variants, product.Category.DefaultSizeLabels()),
		Variants:    variants,
	}
}
