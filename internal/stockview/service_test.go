package stockview

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cducote/pawstock-backend/internal/events"
	"github.com/cducote/pawstock-backend/pkg/db/models"
	"github.com/cducote/pawstock-backend/pkg/enums"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
)

type fakeStockRepo struct {
	products []models.Product
	err      error
	calls    int
}

func (f *fakeStockRepo) ListActiveProductsWithVariants(_ context.Context) ([]models.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func harnessProduct(name string, variants ...models.ProductVariant) models.Product {
	return models.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: enums.ProductCategoryHarness,
		IsActive: true,
		Variants: variants,
	}
}

func TestStockLevelsSummarizesProducts(t *testing.T) {
	repo := &fakeStockRepo{
		products: []models.Product{
			harnessProduct("Alpine Harness",
				models.ProductVariant{ID: uuid.New(), Size: strPtr("Small"), CurrentStock: 2, ReorderLevel: 5},
				models.ProductVariant{ID: uuid.New(), Size: strPtr("Large"), CurrentStock: 10, ReorderLevel: 5},
			),
		},
	}
	svc := NewService(repo, nil)

	summaries, err := svc.StockLevels(context.Background())
	if err != nil {
		t.Fatalf("StockLevels: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	summary := summaries[0]
	if summary.TotalStock != 12 {
		t.Fatalf("total = %d, want 12", summary.TotalStock)
	}
	if !summary.LowStock {
		t.Fatal("small variant at 2/5 should flag the product low")
	}
	if summary.OutOfStock {
		t.Fatal("product with stock is not out of stock")
	}
	if summary.StockBySize["Small"] != 2 || summary.StockBySize["Medium"] != 0 || summary.StockBySize["Large"] != 10 {
		t.Fatalf("unexpected size breakdown: %v", summary.StockBySize)
	}
	if len(summary.Variants) != 2 || !summary.Variants[0].LowStock {
		t.Fatalf("unexpected variant summaries: %+v", summary.Variants)
	}
}

func TestLowStockFilters(t *testing.T) {
	repo := &fakeStockRepo{
		products: []models.Product{
			harnessProduct("Healthy",
				models.ProductVariant{ID: uuid.New(), CurrentStock: 50, ReorderLevel: 5},
			),
			harnessProduct("Running Low",
				models.ProductVariant{ID: uuid.New(), CurrentStock: 5, ReorderLevel: 5},
			),
		},
	}
	svc := NewService(repo, nil)

	low, err := svc.LowStock(context.Background())
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(low) != 1 || low[0].Name != "Running Low" {
		t.Fatalf("unexpected low list: %+v", low)
	}
}

func TestStockLevelsCachesUntilVariantChange(t *testing.T) {
	logg := logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
	bus := events.NewBus(logg, "", nil)
	repo := &fakeStockRepo{products: []models.Product{harnessProduct("Cached")}}
	svc := NewService(repo, bus)

	ctx := context.Background()
	if _, err := svc.StockLevels(ctx); err != nil {
		t.Fatalf("StockLevels: %v", err)
	}
	if _, err := svc.StockLevels(ctx); err != nil {
		t.Fatalf("StockLevels: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected cached second read, repo hit %d times", repo.calls)
	}

	bus.Publish(ctx, events.VariantChanged{VariantID: uuid.New()})

	if _, err := svc.StockLevels(ctx); err != nil {
		t.Fatalf("StockLevels: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("expected refetch after variant change, repo hit %d times", repo.calls)
	}
}

func TestStockLevelsDependencyError(t *testing.T) {
	repo := &fakeStockRepo{err: errors.New("connection refused")}
	svc := NewService(repo, nil)

	_, err := svc.StockLevels(context.Background())
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
