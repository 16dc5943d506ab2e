package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cducote/pawstock-backend/pkg/enums"
)

// InventoryTransaction is an immutable stock movement. Rows are only
// ever inserted, never updated or deleted.
type InventoryTransaction struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID       uuid.UUID             `gorm:"column:variant_id;type:uuid;not null"`
	TransactionType enums.TransactionType `gorm:"column:transaction_type;type:transaction_type;not null"`
	Quantity        int                   `gorm:"column:quantity;not null"`
	Notes           *string               `gorm:"column:notes"`
	TransactionDate time.Time             `gorm:"column:transaction_date;autoCreateTime"`
}
