package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cducote/pawstock-backend/pkg/db/models"
	"github.com/cducote/pawstock-backend/pkg/enums"
)

// ProductFilter narrows product listings. The zero value lists active
// products across every category.
type ProductFilter struct {
	IncludeInactive bool
	Category        *enums.ProductCategory
}

// CreateProductInput carries the fields accepted when listing a new product.
type CreateProductInput struct {
	Name            string
	Description     *string
	Category        enums.ProductCategory
	Pattern         *string
	SupplierName    *string
	BaseCost        decimal.Decimal
	SellingPrice    decimal.Decimal
	PrimaryImageURL *string
	GalleryImages   []string
}

// UpdateProductInput holds optional field updates; nil means unchanged.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	Pattern         *string
	SupplierName    *string
	BaseCost        *decimal.Decimal
	SellingPrice    *decimal.Decimal
	PrimaryImageURL *string
	GalleryImages   []string
}

// CreateVariantInput carries the fields accepted when adding a variant.
type CreateVariantInput struct {
	SKU             *string
	Size            *string
	Color           *string
	Style           *string
	InitialStock    int
	ReorderLevel    *int
	Location        *string
	VariantImageURL *string
}

// CreateSupplierInput carries the fields accepted for a new supplier.
type CreateSupplierInput struct {
	Name         string
	ContactEmail *string
	WebsiteURL   *string
	Notes        *string
}

// CreateMatchingSetInput groups products under a named pattern.
type CreateMatchingSetInput struct {
	Name       string
	Pattern    *string
	ProductIDs []uuid.UUID
}

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Category        string           `json:"category"`
	Pattern         *string          `json:"pattern,omitempty"`
	SupplierName    *string          `json:"supplier_name,omitempty"`
	BaseCost        decimal.Decimal  `json:"base_cost"`
	SellingPrice    decimal.Decimal  `json:"selling_price"`
	PrimaryImageURL *string          `json:"primary_image_url,omitempty"`
	GalleryImages   []string         `json:"gallery_images"`
	IsActive        bool             `json:"is_active"`
	Variants        []VariantDTO     `json:"variants,omitempty"`
	Stock           *ProductStockDTO `json:"stock,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductStockDTO carries the aggregated stock numbers shown on the
// product detail view. Only the detail read populates it.
type ProductStockDTO struct {
	TotalStock  int            `json:"total_stock"`
	LowStock    bool           `json:"low_stock"`
	OutOfStock  bool           `json:"out_of_stock"`
	StockBySize map[string]int `json:"stock_by_size"`
}

// VariantDTO is the variant payload returned to clients.
type VariantDTO struct {
	ID              uuid.UUID `json:"id"`
	ProductID       uuid.UUID `json:"product_id"`
	SKU             *string   `json:"sku,omitempty"`
	Size            *string   `json:"size,omitempty"`
	Color           *string   `json:"color,omitempty"`
	Style           *string   `json:"style,omitempty"`
	CurrentStock    int       `json:"current_stock"`
	ReorderLevel    int       `json:"reorder_level"`
	Location        *string   `json:"location,omitempty"`
	VariantImageURL *string   `json:"variant_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SupplierDTO is the supplier payload returned to clients.
type SupplierDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	WebsiteURL   *string   `json:"website_url,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MatchingSetDTO is the matching set payload returned to clients.
type MatchingSetDTO struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	Pattern    *string     `json:"pattern,omitempty"`
	ProductIDs []uuid.UUID `json:"product_ids"`
	CreatedAt  time.Time   `json:"created_at"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		Category:        string(product.Category),
		Pattern:         product.Pattern,
		SupplierName:    product.SupplierName,
		BaseCost:        product.BaseCost,
		SellingPrice:    product.SellingPrice,
		PrimaryImageURL: product.PrimaryImageURL,
		GalleryImages:   append([]string{}, product.GalleryImages...),
		IsActive:        product.IsActive,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
	if len(product.Variants) > 0 {
		dto.Variants = make([]VariantDTO, len(product.Variants))
		for i := range product.Variants {
			dto.Variants[i] = NewVariantDTO(&product.Variants[i])
		}
	}
	return dto
}

// NewVariantDTO builds a DTO from the persisted model.
func NewVariantDTO(variant *models.ProductVariant) VariantDTO {
	return VariantDTO{
		ID:              variant.ID,
		ProductID:       variant.ProductID,
		SKU:             variant.SKU,
		Size:            variant.Size,
		Color:           variant.Color,
		Style:           variant.Style,
		CurrentStock:    variant.CurrentStock,
		ReorderLevel:    variant.ReorderLevel,
		Location:        variant.Location,
		VariantImageURL: variant.VariantImageURL,
		CreatedAt:       variant.CreatedAt,
		UpdatedAt:       variant.UpdatedAt,
	}
}

// NewSupplierDTO builds a DTO from the persisted model.
func NewSupplierDTO(supplier *models.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:           supplier.ID,
		Name:         supplier.Name,
		ContactEmail: supplier.ContactEmail,
		WebsiteURL:   supplier.WebsiteURL,
		Notes:        supplier.Notes,
		CreatedAt:    supplier.CreatedAt,
	}
}

// NewMatchingSetDTO builds a DTO from the persisted model. Stored member
// ids that fail to parse are skipped rather than failing the read.
func NewMatchingSetDTO(set *models.MatchingSet) MatchingSetDTO {
	ids := make([]uuid.UUID, 0, len(set.ProductIDs))
	for _, raw := range set.ProductIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return MatchingSetDTO{
		ID:         set.ID,
		Name:       set.Name,
		Pattern:    set.Pattern,
		ProductIDs: ids,
		CreatedAt:  set.CreatedAt,
	}
}
