package controllers

import (
	"net/http"
	"strings"

	"github.com/cducote/pawstock-backend/api/responses"
	"github.com/cducote/pawstock-backend/api/validators"
	"github.com/cducote/pawstock-backend/internal/catalog"
	"github.com/cducote/pawstock-backend/internal/ledger"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
	"github.com/cducote/pawstock-backend/pkg/pagination"
)

type createVariantRequest struct {
	SKU             *string `json:"sku,omitempty" validate:"omitempty,min=1,max=64"`
	Size            *string `json:"size,omitempty"`
	Color           *string `json:"color,omitempty"`
	Style           *string `json:"style,omitempty"`
	InitialStock    int     `json:"initial_stock" validate:"min=0"`
	ReorderLevel    *int    `json:"reorder_level,omitempty" validate:"omitempty,min=0"`
	Location        *string `json:"location,omitempty"`
	VariantImageURL *string `json:"variant_image_url,omitempty"`
}

// CreateVariant handles POST /api/v1/products/{productId}/variants.
func CreateVariant(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuidParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.CreateVariant(r.Context(), productID, catalog.CreateVariantInput{
			SKU:             payload.SKU,
			Size:            payload.Size,
			Color:           payload.Color,
			Style:           payload.Style,
			InitialStock:    payload.InitialStock,
			ReorderLevel:    payload.ReorderLevel,
			Location:        payload.Location,
			VariantImageURL: payload.VariantImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

// ListVariants handles GET /api/v1/products/{productId}/variants.
func ListVariants(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuidParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variants, err := svc.ListVariants(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variants)
	}
}

// LookupVariantBySKU handles GET /api/v1/variants/lookup?sku=.
func LookupVariantBySKU(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := strings.TrimSpace(r.URL.Query().Get("sku"))
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku query parameter is required"))
			return
		}

		variant, err := svc.FindVariantBySKU(r.Context(), sku)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variant)
	}
}

// ListVariantTransactions handles GET /api/v1/variants/{variantId}/transactions.
func ListVariantTransactions(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variantID, err := uuidParam(r, "variantId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListTransactions(r.Context(), variantID, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"transactions": list.Transactions,
			"next_cursor":  list.NextCursor,
		})
	}
}
