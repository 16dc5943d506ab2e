package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cducote/pawstock-backend/internal/ledger"
	"github.com/cducote/pawstock-backend/pkg/db/models"
	"github.com/cducote/pawstock-backend/pkg/enums"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
	"github.com/cducote/pawstock-backend/pkg/pagination"
)

type stubLedgerService struct {
	recordFn func(ctx context.Context, input ledger.RecordInput) (*ledger.TransactionResult, error)
	bulkFn   func(ctx context.Context, input ledger.BulkAdjustmentInput) (*ledger.BulkResult, error)
}

func (s *stubLedgerService) RecordTransaction(ctx context.Context, input ledger.RecordInput) (*ledger.TransactionResult, error) {
	if s.recordFn == nil {
		panic("unimplemented")
	}
	return s.recordFn(ctx, input)
}

func (s *stubLedgerService) RecordBulkAdjustment(ctx context.Context, input ledger.BulkAdjustmentInput) (*ledger.BulkResult, error) {
	if s.bulkFn == nil {
		panic("unimplemented")
	}
	return s.bulkFn(ctx, input)
}

func (s *stubLedgerService) ListTransactions(ctx context.Context, variantID uuid.UUID, params pagination.Params) (*ledger.TransactionList, error) {
	panic("unimplemented")
}

func testControllerLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func committedResult(variantID uuid.UUID, stock int) *ledger.TransactionResult {
	return &ledger.TransactionResult{
		Transaction: models.InventoryTransaction{
			ID:              uuid.New(),
			VariantID:       variantID,
			TransactionType: enums.TransactionTypeSold,
			Quantity:        3,
			TransactionDate: time.Now().UTC(),
		},
		CurrentStock: stock,
	}
}

func TestRecordTransaction(t *testing.T) {
	logg := testControllerLogger()
	variantID := uuid.New()

	post := func(svc ledger.Service, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/transactions", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		RecordTransaction(svc, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		svc := &stubLedgerService{
			recordFn: func(_ context.Context, input ledger.RecordInput) (*ledger.TransactionResult, error) {
				if input.VariantID != variantID || input.Type != enums.TransactionTypeSold || input.Quantity != 3 {
					t.Fatalf("unexpected input: %+v", input)
				}
				return committedResult(variantID, 7), nil
			},
		}
		body := `{"variant_id":"` + variantID.String() + `","transaction_type":"sold","quantity":3}`
		rec := post(svc, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var envelope struct {
			Data transactionResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if envelope.Data.CurrentStock != 7 || envelope.Data.Type != "sold" {
			t.Fatalf("unexpected payload: %+v", envelope.Data)
		}
	})

	t.Run("zero quantity is accepted", func(t *testing.T) {
		svc := &stubLedgerService{
			recordFn: func(_ context.Context, input ledger.RecordInput) (*ledger.TransactionResult, error) {
				if input.Quantity != 0 || input.Type != enums.TransactionTypeAdjustment {
					t.Fatalf("unexpected input: %+v", input)
				}
				return &ledger.TransactionResult{
					Transaction: models.InventoryTransaction{
						ID:              uuid.New(),
						VariantID:       variantID,
						TransactionType: enums.TransactionTypeAdjustment,
						TransactionDate: time.Now().UTC(),
					},
					CurrentStock: 7,
				}, nil
			},
		}
		body := `{"variant_id":"` + variantID.String() + `","transaction_type":"adjustment","quantity":0}`
		rec := post(svc, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 for zero quantity, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown transaction type", func(t *testing.T) {
		body := `{"variant_id":"` + variantID.String() + `","transaction_type":"returned","quantity":1}`
		rec := post(&stubLedgerService{}, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("variant not found", func(t *testing.T) {
		svc := &stubLedgerService{
			recordFn: func(_ context.Context, _ ledger.RecordInput) (*ledger.TransactionResult, error) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			},
		}
		body := `{"variant_id":"` + variantID.String() + `","transaction_type":"sold","quantity":3}`
		rec := post(svc, body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestBulkAdjustPartialFailure(t *testing.T) {
	logg := testControllerLogger()
	okID := uuid.New()
	badID := uuid.New()

	svc := &stubLedgerService{
		bulkFn: func(_ context.Context, input ledger.BulkAdjustmentInput) (*ledger.BulkResult, error) {
			if len(input.Items) != 2 {
				t.Fatalf("expected 2 items, got %d", len(input.Items))
			}
			return &ledger.BulkResult{Items: []ledger.BulkItemResult{
				{VariantID: okID, Result: committedResult(okID, 4)},
				{VariantID: badID, Err: pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")},
			}}, nil
		},
	}

	body := `{"items":[` +
		`{"variant_id":"` + okID.String() + `","delta":-2},` +
		`{"variant_id":"` + badID.String() + `","delta":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/adjustments", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	BulkAdjust(svc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("partial failure must still return 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Items []bulkItemResponse `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	items := envelope.Data.Items
	if len(items) != 2 {
		t.Fatalf("expected 2 item results, got %d", len(items))
	}
	if items[0].Transaction == nil || items[0].Transaction.CurrentStock != 4 {
		t.Fatalf("first item should carry a transaction: %+v", items[0])
	}
	if items[1].Error == nil || items[1].Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("second item should carry the error: %+v", items[1])
	}
}

func TestBulkAdjustRejectsEmptyItems(t *testing.T) {
	logg := testControllerLogger()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/adjustments", bytes.NewBufferString(`{"items":[]}`))
	rec := httptest.NewRecorder()
	BulkAdjust(&stubLedgerService{}, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
