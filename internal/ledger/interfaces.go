package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cducote/pawstock-backend/pkg/db/models"
	"github.com/cducote/pawstock-backend/pkg/pagination"
)

// Repository defines persistence operations for the stock ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error)
	CreateTransaction(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryTransaction, error)
	ApplyStockDelta(ctx context.Context, variantID uuid.UUID, delta int) (StockUpdate, error)
	ListTransactionsByVariant(ctx context.Context, variantID uuid.UUID, params pagination.Params) (*TransactionList, error)
}

// StockUpdate is the outcome of the conditional counter write.
type StockUpdate struct {
	PreviousStock int
	CurrentStock  int
	Clamped       bool
}

// TransactionList is a cursor page of ledger rows, newest first.
type TransactionList struct {
	Transactions []models.InventoryTransaction
	NextCursor   *string
}
