package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/cducote/pawstock-backend/pkg/enums"
)

// Product is the catalog entry a set of variants hangs off of.
type Product struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string                `gorm:"column:name;not null"`
	Description     *string               `gorm:"column:description"`
	Category        enums.ProductCategory `gorm:"column:category;type:product_category;not null"`
	Pattern         *string               `gorm:"column:pattern"`
	SupplierName    *string               `gorm:"column:supplier_name"`
	BaseCost        decimal.Decimal       `gorm:"column:base_cost;type:numeric(10,2);not null;default:0"`
	SellingPrice    decimal.Decimal       `gorm:"column:selling_price;type:numeric(10,2);not null;default:0"`
	PrimaryImageURL *string               `gorm:"column:primary_image_url"`
	GalleryImages   pq.StringArray        `gorm:"column:gallery_images;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive        bool                  `gorm:"column:is_active;not null;default:true"`
	Variants        []ProductVariant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
