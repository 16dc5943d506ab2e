package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/cducote/pawstock-backend/api/responses"
	"github.com/cducote/pawstock-backend/api/validators"
	"github.com/cducote/pawstock-backend/internal/ledger"
	"github.com/cducote/pawstock-backend/internal/stockview"
	"github.com/cducote/pawstock-backend/pkg/enums"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
	"github.com/cducote/pawstock-backend/pkg/types"
)

type recordTransactionRequest struct {
	VariantID       string  `json:"variant_id" validate:"required,uuid"`
	TransactionType string  `json:"transaction_type" validate:"required"`
	Quantity        int     `json:"quantity"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type transactionResponse struct {
	TransactionID string  `json:"transaction_id"`
	VariantID     string  `json:"variant_id"`
	Type          string  `json:"transaction_type"`
	Quantity      int     `json:"quantity"`
	Notes         *string `json:"notes,omitempty"`
	CurrentStock  int     `json:"current_stock"`
	Clamped       bool    `json:"clamped"`
}

func toTransactionResponse(result *ledger.TransactionResult) transactionResponse {
	return transactionResponse{
		TransactionID: result.Transaction.ID.String(),
		VariantID:     result.Transaction.VariantID.String(),
		Type:          result.Transaction.TransactionType.String(),
		Quantity:      result.Transaction.Quantity,
		Notes:         result.Transaction.Notes,
		CurrentStock:  result.CurrentStock,
		Clamped:       result.Clamped,
	}
}

// RecordTransaction handles POST /api/v1/inventory/transactions.
func RecordTransaction(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recordTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := uuid.Parse(payload.VariantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
			return
		}

		txType, err := enums.ParseTransactionType(strings.TrimSpace(payload.TransactionType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type"))
			return
		}

		result, err := svc.RecordTransaction(r.Context(), ledger.RecordInput{
			VariantID: variantID,
			Type:      txType,
			Quantity:  payload.Quantity,
			Notes:     validators.CleanNotes(payload.Notes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toTransactionResponse(result))
	}
}

type bulkAdjustmentRequest struct {
	Items []bulkAdjustmentItem `json:"items" validate:"required,min=1,dive"`
}

type bulkAdjustmentItem struct {
	VariantID string  `json:"variant_id" validate:"required,uuid"`
	Delta     int     `json:"delta"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type bulkItemResponse struct {
	VariantID   string               `json:"variant_id"`
	Transaction *transactionResponse `json:"transaction,omitempty"`
	Error       *types.APIError      `json:"error,omitempty"`
}

// BulkAdjust handles POST /api/v1/inventory/adjustments. Failed items
// are reported in place; the request as a whole still succeeds.
func BulkAdjust(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bulkAdjustmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ledger.BulkAdjustmentInput{Items: make([]ledger.BulkAdjustmentItem, 0, len(payload.Items))}
		for _, item := range payload.Items {
			variantID, err := uuid.Parse(item.VariantID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
				return
			}
			input.Items = append(input.Items, ledger.BulkAdjustmentItem{
				VariantID: variantID,
				Delta:     item.Delta,
				Notes:     validators.CleanNotes(item.Notes),
			})
		}

		result, err := svc.RecordBulkAdjustment(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]bulkItemResponse, 0, len(result.Items))
		for _, item := range result.Items {
			resp := bulkItemResponse{VariantID: item.VariantID.String()}
			if item.Err != nil {
				apiErr := toAPIError(item.Err)
				resp.Error = &apiErr
			} else {
				txResp := toTransactionResponse(item.Result)
				resp.Transaction = &txResp
			}
			items = append(items, resp)
		}

		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

func toAPIError(err error) types.APIError {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	if m := typed.Message(); m != "" && meta.HTTPStatus < http.StatusInternalServerError {
		msg = m
	}
	return types.APIError{Code: string(typed.Code()), Message: msg}
}

// StockLevels handles GET /api/v1/inventory/stock-levels.
func StockLevels(svc *stockview.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := svc.StockLevels(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summaries)
	}
}

// LowStock handles GET /api/v1/inventory/low-stock.
func LowStock(svc *stockview.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := svc.LowStock(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summaries)
	}
}
