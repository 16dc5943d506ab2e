package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/cducote/pawstock-backend/internal/stockview"
	"github.com/cducote/pawstock-backend/pkg/db"
	"github.com/cducote/pawstock-backend/pkg/db/models"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
)

// Service defines catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeactivateProduct(ctx context.Context, productID uuid.UUID) error
	CreateVariant(ctx context.Context, productID uuid.UUID, input CreateVariantInput) (*VariantDTO, error)
	ListVariants(ctx context.Context, productID uuid.UUID) ([]VariantDTO, error)
	FindVariantBySKU(ctx context.Context, sku string) (*VariantDTO, error)
	CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierDTO, error)
	ListSuppliers(ctx context.Context) ([]SupplierDTO, error)
	CreateMatchingSet(ctx context.Context, input CreateMatchingSetInput) (*MatchingSetDTO, error)
	ListMatchingSets(ctx context.Context) ([]MatchingSetDTO, error)
	DeleteMatchingSet(ctx context.Context, setID uuid.UUID) error
}

// StockViewInvalidator drops cached stock aggregations when catalog
// data changes underneath them. Satisfied by stockview.Service.
type StockViewInvalidator interface {
	Invalidate()
}

type service struct {
	repo                Repository
	logg                *logger.Logger
	defaultReorderLevel int
	views               StockViewInvalidator
}

// NewService builds the catalog service. The invalidator is optional.
func NewService(repo Repository, logg *logger.Logger, defaultReorderLevel int, views StockViewInvalidator) Service {
	return &service{
		repo:                repo,
		logg:                logg,
		defaultReorderLevel: defaultReorderLevel,
		views:               views,
	}
}

func (s *service) invalidateViews() {
	if s.views != nil {
		s.views.Invalidate()
	}
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	if input.BaseCost.IsNegative() || input.SellingPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative")
	}

	product := &models.Product{
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Category:        input.Category,
		Pattern:         input.Pattern,
		SupplierName:    input.SupplierName,
		BaseCost:        input.BaseCost,
		SellingPrice:    input.SellingPrice,
		PrimaryImageURL: input.PrimaryImageURL,
		GalleryImages:   pq.StringArray(input.GalleryImages),
		IsActive:        true,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	s.logg.Info(s.logg.WithProductID(ctx, created.ID.String()), "product created")
	s.invalidateViews()
	return NewProductDTO(created), nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := NewProductDTO(product)
	dto.Stock = stockSummary(product)
	return dto, nil
}

func stockSummary(product *models.Product) *ProductStockDTO {
	total := stockview.TotalStock(product.Variants)
	return &ProductStockDTO{
		TotalStock:  total,
		LowStock:    stockview.IsLowStock(product.Variants),
		OutOfStock:  len(product.Variants) > 0 && total == 0,
		StockBySize: stockview.StockBySize(product.Variants, product.Category.DefaultSizeLabels()),
	}
}

func (s *service) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	out := make([]ProductDTO, len(products))
	for i := range products {
		out[i] = *NewProductDTO(&products[i])
	}
	return out, nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name must not be blank")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Pattern != nil {
		updates["pattern"] = *input.Pattern
	}
	if input.SupplierName != nil {
		updates["supplier_name"] = *input.SupplierName
	}
	if input.BaseCost != nil {
		if input.BaseCost.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base cost must not be negative")
		}
		updates["base_cost"] = *input.BaseCost
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price must not be negative")
		}
		updates["selling_price"] = *input.SellingPrice
	}
	if input.PrimaryImageURL != nil {
		updates["primary_image_url"] = *input.PrimaryImageURL
	}
	if input.GalleryImages != nil {
		updates["gallery_images"] = pq.StringArray(input.GalleryImages)
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}

	if err := s.repo.UpdateProduct(ctx, productID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	s.invalidateViews()
	return s.GetProduct(ctx, productID)
}

func (s *service) DeactivateProduct(ctx context.Context, productID uuid.UUID) error {
	err := s.repo.UpdateProduct(ctx, productID, map[string]any{"is_active": false})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
	}

	s.logg.Info(s.logg.WithProductID(ctx, productID.String()), "product deactivated")
	s.invalidateViews()
	return nil
}

func (s *service) CreateVariant(ctx context.Context, productID uuid.UUID, input CreateVariantInput) (*VariantDTO, error) {
	if input.InitialStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial stock must not be negative")
	}
	reorderLevel := s.defaultReorderLevel
	if input.ReorderLevel != nil {
		if *input.ReorderLevel < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reorder level must not be negative")
		}
		reorderLevel = *input.ReorderLevel
	}
	if input.SKU != nil && strings.TrimSpace(*input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku must not be blank")
	}

	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	variant := &models.ProductVariant{
		ProductID:       productID,
		SKU:             input.SKU,
		Size:            input.Size,
		Color:           input.Color,
		Style:           input.Style,
		CurrentStock:    input.InitialStock,
		ReorderLevel:    reorderLevel,
		Location:        input.Location,
		VariantImageURL: input.VariantImageURL,
	}
	created, err := s.repo.CreateVariant(ctx, variant)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_product_variants_sku") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create variant")
	}

	s.invalidateViews()
	dto := NewVariantDTO(created)
	return &dto, nil
}

func (s *service) ListVariants(ctx context.Context, productID uuid.UUID) ([]VariantDTO, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	variants, err := s.repo.ListVariantsByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variants")
	}

	out := make([]VariantDTO, len(variants))
	for i := range variants {
		out[i] = NewVariantDTO(&variants[i])
	}
	return out, nil
}

func (s *service) FindVariantBySKU(ctx context.Context, sku string) (*VariantDTO, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}

	variant, err := s.repo.FindVariantBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup variant by sku")
	}

	dto := NewVariantDTO(variant)
	return &dto, nil
}

func (s *service) CreateSupplier(ctx context.Context, input CreateSupplierInput) (*SupplierDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}

	supplier := &models.Supplier{
		Name:         strings.TrimSpace(input.Name),
		ContactEmail: input.ContactEmail,
		WebsiteURL:   input.WebsiteURL,
		Notes:        input.Notes,
	}
	created, err := s.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_suppliers_name") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "supplier already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supplier")
	}

	dto := NewSupplierDTO(created)
	return &dto, nil
}

func (s *service) ListSuppliers(ctx context.Context) ([]SupplierDTO, error) {
	suppliers, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list suppliers")
	}

	out := make([]SupplierDTO, len(suppliers))
	for i := range suppliers {
		out[i] = NewSupplierDTO(&suppliers[i])
	}
	return out, nil
}

func (s *service) CreateMatchingSet(ctx context.Context, input CreateMatchingSetInput) (*MatchingSetDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "matching set name is required")
	}
	if len(input.ProductIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "matching set needs at least one product")
	}

	ids := make(pq.StringArray, 0, len(input.ProductIDs))
	for _, id := range input.ProductIDs {
		if _, err := s.GetProduct(ctx, id); err != nil {
			return nil, err
		}
		ids = append(ids, id.String())
	}

	set := &models.MatchingSet{
		Name:       strings.TrimSpace(input.Name),
		Pattern:    input.Pattern,
		ProductIDs: ids,
	}
	created, err := s.repo.CreateMatchingSet(ctx, set)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create matching set")
	}

	dto := NewMatchingSetDTO(created)
	return &dto, nil
}

func (s *service) ListMatchingSets(ctx context.Context) ([]MatchingSetDTO, error) {
	sets, err := s.repo.ListMatchingSets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list matching sets")
	}

	out := make([]MatchingSetDTO, len(sets))
	for i := range sets {
		out[i] = NewMatchingSetDTO(&sets[i])
	}
	return out, nil
}

func (s *service) DeleteMatchingSet(ctx context.Context, setID uuid.UUID) error {
	if err := s.repo.DeleteMatchingSet(ctx, setID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "matching set not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete matching set")
	}
	return nil
}
