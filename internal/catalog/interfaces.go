package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cducote/pawstock-backend/pkg/db/models"
)

// Repository defines persistence operations for the catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, updates map[string]any) error
	CreateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error)
	ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error)
	FindVariantBySKU(ctx context.Context, sku string) (*models.ProductVariant, error)
	CreateSupplier(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	CreateMatchingSet(ctx context.Context, set *models.MatchingSet) (*models.MatchingSet, error)
	ListMatchingSets(ctx context.Context) ([]models.MatchingSet, error)
	DeleteMatchingSet(ctx context.Context, setID uuid.UUID) error
}
