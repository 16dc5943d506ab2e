package ledger

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cducote/pawstock-backend/internal/events"
	"github.com/cducote/pawstock-backend/pkg/db/models"
	"github.com/cducote/pawstock-backend/pkg/enums"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
	"github.com/cducote/pawstock-backend/pkg/pagination"
)

type fakeLedgerRepo struct {
	variants map[uuid.UUID]*models.ProductVariant
	txns     []models.InventoryTransaction
	applyErr error
}

func newFakeLedgerRepo(variants ...*models.ProductVariant) *fakeLedgerRepo {
	repo := &fakeLedgerRepo{variants: make(map[uuid.UUID]*models.ProductVariant)}
	for _, v := range variants {
		repo.variants[v.ID] = v
	}
	return repo
}

func (f *fakeLedgerRepo) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeLedgerRepo) FindVariant(_ context.Context, variantID uuid.UUID) (*models.ProductVariant, error) {
	variant, ok := f.variants[variantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *variant
	return &copied, nil
}

func (f *fakeLedgerRepo) CreateTransaction(_ context.Context, txn *models.InventoryTransaction) (*models.InventoryTransaction, error) {
	txn.ID = uuid.New()
	txn.TransactionDate = time.Now().UTC()
	f.txns = append(f.txns, *txn)
	return txn, nil
}

func (f *fakeLedgerRepo) ApplyStockDelta(_ context.Context, variantID uuid.UUID, delta int) (StockUpdate, error) {
	if f.applyErr != nil {
		return StockUpdate{}, f.applyErr
	}
	variant, ok := f.variants[variantID]
	if !ok {
		return StockUpdate{}, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	prev := variant.CurrentStock
	next := prev + delta
	clamped := next < 0
	if clamped {
		next = 0
	}
	variant.CurrentStock = next
	return StockUpdate{PreviousStock: prev, CurrentStock: next, Clamped: clamped}, nil
}

func (f *fakeLedgerRepo) ListTransactionsByVariant(_ context.Context, variantID uuid.UUID, params pagination.Params) (*TransactionList, error) {
	var rows []models.InventoryTransaction
	for i := len(f.txns) - 1; i >= 0; i-- {
		if f.txns[i].VariantID == variantID {
			rows = append(rows, f.txns[i])
		}
	}
	return &TransactionList{Transactions: rows}, nil
}

// rollbackTxRunner mimics transactional semantics over the fake repo:
// if fn fails, inserted rows and counter changes are restored.
type rollbackTxRunner struct {
	repo *fakeLedgerRepo
}

func (r rollbackTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	txnSnapshot := make([]models.InventoryTransaction, len(r.repo.txns))
	copy(txnSnapshot, r.repo.txns)
	stockSnapshot := make(map[uuid.UUID]int, len(r.repo.variants))
	for id, variant := range r.repo.variants {
		stockSnapshot[id] = variant.CurrentStock
	}

	if err := fn(nil); err != nil {
		r.repo.txns = txnSnapshot
		for id, stock := range stockSnapshot {
			r.repo.variants[id].CurrentStock = stock
		}
		return err
	}
	return nil
}

func testVariant(stock int) *models.ProductVariant {
	return &models.ProductVariant{
		ID:           uuid.New(),
		ProductID:    uuid.New(),
		CurrentStock: stock,
		ReorderLevel: 5,
	}
}

func newTestService(repo *fakeLedgerRepo) (Service, *[]events.VariantChanged) {
	logg := logger.New(logger.Options{Output: io.Discard})
	bus := events.NewBus(logg, "", nil)
	var published []events.VariantChanged
	bus.Subscribe(func(_ context.Context, event events.VariantChanged) {
		published = append(published, event)
	})
	return NewService(repo, rollbackTxRunner{repo: repo}, bus, nil, logg), &published
}

func TestRecordTransactionSoldReducesStock(t *testing.T) {
	variant := testVariant(10)
	repo := newFakeLedgerRepo(variant)
	svc, published := newTestService(repo)

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		VariantID: variant.ID,
		Type:      enums.TransactionTypeSold,
		Quantity:  3,
	})
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	if result.CurrentStock != 7 {
		t.Fatalf("current stock = %d, want 7", result.CurrentStock)
	}
	if result.Clamped {
		t.Fatal("unexpected clamp")
	}
	if result.Transaction.Quantity != 3 {
		t.Fatalf("persisted quantity = %d, want 3", result.Transaction.Quantity)
	}
	if len(repo.txns) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(repo.txns))
	}

	if len(*published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(*published))
	}
	event := (*published)[0]
	if event.VariantID != variant.ID || event.CurrentStock != 7 || event.ProductID != variant.ProductID {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestRecordTransactionClampsAtZero(t *testing.T) {
	variant := testVariant(2)
	repo := newFakeLedgerRepo(variant)
	svc, published := newTestService(repo)

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		VariantID: variant.ID,
		Type:      enums.TransactionTypeSold,
		Quantity:  5,
	})
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	if result.CurrentStock != 0 {
		t.Fatalf("current stock = %d, want 0", result.CurrentStock)
	}
	if !result.Clamped {
		t.Fatal("expected clamp at zero")
	}
	// the ledger row still records what was asked for
	if repo.txns[0].Quantity != 5 {
		t.Fatalf("persisted quantity = %d, want 5", repo.txns[0].Quantity)
	}
	if !(*published)[0].Clamped {
		t.Fatal("event should carry the clamp flag")
	}
}

func TestRecordTransactionNegativeAdjustment(t *testing.T) {
	variant := testVariant(8)
	repo := newFakeLedgerRepo(variant)
	svc, _ := newTestService(repo)

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		VariantID: variant.ID,
		Type:      enums.TransactionTypeAdjustment,
		Quantity:  -3,
	})
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	if result.CurrentStock != 5 {
		t.Fatalf("current stock = %d, want 5", result.CurrentStock)
	}
	if result.Transaction.Quantity != -3 {
		t.Fatalf("adjustments persist the signed delta, got %d", result.Transaction.Quantity)
	}
}

func TestRecordTransactionZeroAdjustmentIsRecordedNoOp(t *testing.T) {
	variant := testVariant(8)
	repo := newFakeLedgerRepo(variant)
	svc, published := newTestService(repo)

	result, err := svc.RecordTransaction(context.Background(), RecordInput{
		VariantID: variant.ID,
		Type:      enums.TransactionTypeAdjustment,
		Quantity:  0,
	})
	if err != nil {
		t.Fatalf("RecordTransaction: %v", err)
	}

	if result.CurrentStock != 8 {
		t.Fatalf("current stock = %d, want 8", result.CurrentStock)
	}
	if result.Clamped {
		t.Fatal("unexpected clamp")
	}
	if len(repo.txns) != 1 || repo.txns[0].Quantity != 0 {
		t.Fatalf("zero adjustment should still write a ledger row, got %+v", repo.txns)
	}
	if len(*published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(*published))
	}
}

func TestRecordTransactionRejectsInvalidQuantity(t *testing.T) {
	variant := testVariant(10)
	repo := newFakeLedgerRepo(variant)
	svc, published := newTestService(repo)

	_, err := svc.RecordTransaction(context.Background(), RecordInput{
		VariantID: variant.ID,
		Type:      enums.TransactionTypeReceived,
		Quantity:  -1,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	if len(repo.txns) != 0 {
		t.Fatal("rejected movement must not write a ledger row")
	}
	if variant.CurrentStock != 10 {
		t.Fatal("rejected movement must not touch stock")
	}
	if len(*published) != 0 {
		t.Fatal("rejected movement must not publish an event")
	}
}

func TestRecordTransactionUnknownVariant(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc, _ := newTestService(repo)

	_, err := svc.RecordTransaction(context.Background(), RecordInput{
		VariantID: uuid.New(),
		Type:      enums.TransactionTypeReceived,
		Quantity:  5,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRecordTransactionRollsBackOnFailedStockUpdate(t *testing.T) {
	variant := testVariant(10)
	repo := newFakeLedgerRepo(variant)
	repo.applyErr = errors.New("deadlock detected")
	svc, published := newTestService(repo)

	_, err := svc.RecordTransaction(context.Background(), RecordInput{
		VariantID: variant.ID,
		Type:      enums.TransactionTypeSold,
		Quantity:  2,
	})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(repo.txns) != 0 {
		t.Fatal("ledger insert must roll back with the failed counter write")
	}
	if len(*published) != 0 {
		t.Fatal("no event may fire for a rolled back movement")
	}
}

func TestRecordBulkAdjustmentPartialFailure(t *testing.T) {
	good := testVariant(10)
	repo := newFakeLedgerRepo(good)
	svc, _ := newTestService(repo)

	out, err := svc.RecordBulkAdjustment(context.Background(), BulkAdjustmentInput{
		Items: []BulkAdjustmentItem{
			{VariantID: good.ID, Delta: -4},
			{VariantID: uuid.New(), Delta: 2},
			{VariantID: good.ID, Delta: 0},
		},
	})
	if err != nil {
		t.Fatalf("bulk adjustment must not fail as a whole: %v", err)
	}
	if len(out.Items) != 3 {
		t.Fatalf("expected 3 item results, got %d", len(out.Items))
	}

	if out.Items[0].Err != nil {
		t.Fatalf("first item should succeed: %v", out.Items[0].Err)
	}
	if out.Items[0].Result.CurrentStock != 6 {
		t.Fatalf("first item stock = %d, want 6", out.Items[0].Result.CurrentStock)
	}

	if coded := pkgerrors.As(out.Items[1].Err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("second item should be not found, got %v", out.Items[1].Err)
	}
	if coded := pkgerrors.As(out.Items[2].Err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("third item should fail validation, got %v", out.Items[2].Err)
	}

	if good.CurrentStock != 6 {
		t.Fatalf("failed items must not affect earlier successes, stock = %d", good.CurrentStock)
	}
}

func TestRecordBulkAdjustmentEmpty(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc, _ := newTestService(repo)

	_, err := svc.RecordBulkAdjustment(context.Background(), BulkAdjustmentInput{})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListTransactionsUnknownVariant(t *testing.T) {
	repo := newFakeLedgerRepo()
	svc, _ := newTestService(repo)

	_, err := svc.ListTransactions(context.Background(), uuid.New(), pagination.Params{})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	variant := testVariant(20)
	repo := newFakeLedgerRepo(variant)
	svc, _ := newTestService(repo)

	for _, qty := range []int{1, 2, 3} {
		if _, err := svc.RecordTransaction(context.Background(), RecordInput{
			VariantID: variant.ID,
			Type:      enums.TransactionTypeSold,
			Quantity:  qty,
		}); err != nil {
			t.Fatalf("RecordTransaction: %v", err)
		}
	}

	list, err := svc.ListTransactions(context.Background(), variant.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(list.Transactions) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(list.Transactions))
	}
	if list.Transactions[0].Quantity != 3 {
		t.Fatalf("expected newest row first, got quantity %d", list.Transactions[0].Quantity)
	}
}
