package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is one sellable size/color combination of a product.
// CurrentStock is only ever written through the ledger's conditional
// update so it can never go negative.
type ProductVariant struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID       uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	SKU             *string   `gorm:"column:sku"`
	Size            *string   `gorm:"column:size"`
	Color           *string   `gorm:"column:color"`
	Style           *string   `gorm:"column:style"`
	CurrentStock    int       `gorm:"column:current_stock;not null;default:0"`
	ReorderLevel    int       `gorm:"column:reorder_level;not null;default:5"`
	Location        *string   `gorm:"column:location"`
	VariantImageURL *string   `gorm:"column:variant_image_url"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
