package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/cducote/pawstock-backend/internal/events"
	"github.com/cducote/pawstock-backend/pkg/db/models"
	"github.com/cducote/pawstock-backend/pkg/enums"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
	"github.com/cducote/pawstock-backend/pkg/metrics"
	"github.com/cducote/pawstock-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the write and read surface of the stock ledger.
type Service interface {
	RecordTransaction(ctx context.Context, input RecordInput) (*TransactionResult, error)
	RecordBulkAdjustment(ctx context.Context, input BulkAdjustmentInput) (*BulkResult, error)
	ListTransactions(ctx context.Context, variantID uuid.UUID, params pagination.Params) (*TransactionList, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	bus   *events.Bus
	stock *metrics.StockMetrics
	logg  *logger.Logger
}

// NewService builds the ledger service. The bus and metrics are optional.
func NewService(repo Repository, tx txRunner, bus *events.Bus, stock *metrics.StockMetrics, logg *logger.Logger) Service {
	return &service{
		repo:  repo,
		tx:    tx,
		bus:   bus,
		stock: stock,
		logg:  logg,
	}
}

// RecordInput captures a single stock movement request. For adjustments
// Quantity is the signed delta; for all other types it is a positive
// magnitude.
type RecordInput struct {
	VariantID uuid.UUID
	Type      enums.TransactionType
	Quantity  int
	Notes     *string
}

// TransactionResult is the committed outcome of one movement.
type TransactionResult struct {
	Transaction  models.InventoryTransaction
	CurrentStock int
	Clamped      bool
}

// BulkAdjustmentInput applies several adjustment deltas in one request.
type BulkAdjustmentInput struct {
	Items []BulkAdjustmentItem
}

// BulkAdjustmentItem is one variant correction inside a bulk request.
type BulkAdjustmentItem struct {
	VariantID uuid.UUID
	Delta     int
	Notes     *string
}

// BulkItemResult reports per-item success or failure. A failed item
// never blocks the others.
type BulkItemResult struct {
	VariantID uuid.UUID
	Result    *TransactionResult
	Err       error
}

// BulkResult aggregates the per-item outcomes of a bulk adjustment.
type BulkResult struct {
	Items []BulkItemResult
}

// Failed combines the errors of every failed item. Nil when all items
// succeeded.
func (r *BulkResult) Failed() error {
	var errs error
	for _, item := range r.Items {
		if item.Err != nil {
			errs = multierr.Append(errs, item.Err)
		}
	}
	return errs
}

func (s *service) RecordTransaction(ctx context.Context, input RecordInput) (*TransactionResult, error) {
	movement, err := NewMovement(input.Type, input.Quantity)
	if err != nil {
		s.stock.IncRejected("invalid_quantity")
		return nil, err
	}
	if input.VariantID == uuid.Nil {
		s.stock.IncRejected("missing_variant")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}

	ctx = s.logg.WithVariantID(ctx, input.VariantID.String())

	var (
		result    TransactionResult
		productID uuid.UUID
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		variant, err := repo.FindVariant(ctx, input.VariantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
		}
		productID = variant.ProductID

		txn, err := repo.CreateTransaction(ctx, &models.InventoryTransaction{
			VariantID:       input.VariantID,
			TransactionType: movement.Type(),
			Quantity:        movement.Quantity(),
			Notes:           input.Notes,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert transaction")
		}

		update, err := repo.ApplyStockDelta(ctx, input.VariantID, movement.Delta())
		if err != nil {
			if pkgerrors.As(err) != nil {
				return err
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply stock delta")
		}

		result = TransactionResult{
			Transaction:  *txn,
			CurrentStock: update.CurrentStock,
			Clamped:      update.Clamped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.stock.IncMovement(movement.Type().String())
	if result.Clamped {
		s.stock.IncClamped()
		s.logg.Warn(ctx, "stock movement clamped at zero")
	}
	s.bus.Publish(ctx, events.VariantChanged{
		VariantID:       input.VariantID,
		ProductID:       productID,
		TransactionID:   result.Transaction.ID,
		TransactionType: movement.Type(),
		CurrentStock:    result.CurrentStock,
		Clamped:         result.Clamped,
		OccurredAt:      result.Transaction.TransactionDate,
	})

	return &result, nil
}

func (s *service) RecordBulkAdjustment(ctx context.Context, input BulkAdjustmentInput) (*BulkResult, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one adjustment item is required")
	}

	out := &BulkResult{Items: make([]BulkItemResult, 0, len(input.Items))}
	for _, item := range input.Items {
		result, err := s.RecordTransaction(ctx, RecordInput{
			VariantID: item.VariantID,
			Type:      enums.TransactionTypeAdjustment,
			Quantity:  item.Delta,
			Notes:     item.Notes,
		})
		out.Items = append(out.Items, BulkItemResult{
			VariantID: item.VariantID,
			Result:    result,
			Err:       err,
		})
	}

	if combined := out.Failed(); combined != nil {
		ctx := s.logg.WithField(ctx, "error", combined.Error())
		s.logg.Warn(ctx, "bulk adjustment finished with failed items")
	}
	return out, nil
}

func (s *service) ListTransactions(ctx context.Context, variantID uuid.UUID, params pagination.Params) (*TransactionList, error) {
	if variantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}

	if _, err := s.repo.FindVariant(ctx, variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	list, err := s.repo.ListTransactionsByVariant(ctx, variantID, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list transactions")
	}
	return list, nil
}
