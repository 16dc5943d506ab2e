package ledger

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cducote/pawstock-backend/pkg/db/models"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindVariant(ctx context.Context, variantID uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("id = ?", variantID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *repository) CreateTransaction(ctx context.Context, txn *models.InventoryTransaction) (*models.InventoryTransaction, error) {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// ApplyStockDelta moves the variant counter by delta in one statement.
// The row is locked while the previous value is read so concurrent
// movements serialize instead of losing updates, and GREATEST keeps the
// counter from ever going negative.
func (r *repository) ApplyStockDelta(ctx context.Context, variantID uuid.UUID, delta int) (StockUpdate, error) {
	var update StockUpdate
	row := r.db.WithContext(ctx).Raw(`
		UPDATE product_variants pv
		SET current_stock = GREATEST(0, pv.current_stock + ?),
			updated_at = CURRENT_TIMESTAMP
		FROM (
			SELECT id, current_stock AS prev_stock
			FROM product_variants
			WHERE id = ?
			FOR UPDATE
		) prev
		WHERE pv.id = prev.id
		RETURNING prev.prev_stock, pv.current_stock
	`, delta, variantID).Row()

	if err := row.Scan(&update.PreviousStock, &update.CurrentStock); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return update, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return update, err
	}

	update.Clamped = update.PreviousStock+delta < 0
	return update, nil
}

func (r *repository) ListTransactionsByVariant(ctx context.Context, variantID uuid.UUID, params pagination.Params) (*TransactionList, error) {
	cursor, err := pagination.Parse(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.InventoryTransaction{}).
		Where("variant_id = ?", variantID)
	if cursor != nil {
		query = query.Where("(transaction_date, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.InventoryTransaction
	if err := query.Order("transaction_date DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &TransactionList{Transactions: rows}
	if len(rows) > normalized {
		list.Transactions = rows[:normalized]
		last := list.Transactions[normalized-1]
		encoded := pagination.Encode(pagination.Cursor{CreatedAt: last.TransactionDate, ID: last.ID})
		list.NextCursor = &encoded
	}
	return list, nil
}
