package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cducote/pawstock-backend/api/responses"
	"github.com/cducote/pawstock-backend/api/validators"
	"github.com/cducote/pawstock-backend/internal/catalog"
	"github.com/cducote/pawstock-backend/pkg/enums"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
)

type createProductRequest struct {
	Name            string           `json:"name" validate:"required,min=1,max=200"`
	Description     *string          `json:"description,omitempty"`
	Category        string           `json:"category" validate:"required"`
	Pattern         *string          `json:"pattern,omitempty"`
	SupplierName    *string          `json:"supplier_name,omitempty"`
	BaseCost        *decimal.Decimal `json:"base_cost,omitempty"`
	SellingPrice    *decimal.Decimal `json:"selling_price,omitempty"`
	PrimaryImageURL *string          `json:"primary_image_url,omitempty"`
	GalleryImages   []string         `json:"gallery_images,omitempty"`
}

func (req createProductRequest) toInput() (catalog.CreateProductInput, error) {
	category, err := enums.ParseProductCategory(strings.TrimSpace(req.Category))
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	input := catalog.CreateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Category:        category,
		Pattern:         req.Pattern,
		SupplierName:    req.SupplierName,
		PrimaryImageURL: req.PrimaryImageURL,
		GalleryImages:   req.GalleryImages,
	}
	if req.BaseCost != nil {
		input.BaseCost = *req.BaseCost
	}
	if req.SellingPrice != nil {
		input.SellingPrice = *req.SellingPrice
	}
	return input, nil
}

// CreateProduct handles POST /api/v1/products.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ListProducts handles GET /api/v1/products. Inactive products are
// hidden unless include_inactive=true; category narrows the listing.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeInactive, err := validators.ParseQueryBool(r, "include_inactive", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ProductFilter{IncludeInactive: includeInactive}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			filter.Category = &category
		}

		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// GetProduct handles GET /api/v1/products/{productId}.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuidParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type updateProductRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string          `json:"description,omitempty"`
	Pattern         *string          `json:"pattern,omitempty"`
	SupplierName    *string          `json:"supplier_name,omitempty"`
	BaseCost        *decimal.Decimal `json:"base_cost,omitempty"`
	SellingPrice    *decimal.Decimal `json:"selling_price,omitempty"`
	PrimaryImageURL *string          `json:"primary_image_url,omitempty"`
	GalleryImages   []string         `json:"gallery_images,omitempty"`
}

// UpdateProduct handles PATCH /api/v1/products/{productId}.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuidParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, catalog.UpdateProductInput{
			Name:            payload.Name,
			Description:     payload.Description,
			Pattern:         payload.Pattern,
			SupplierName:    payload.SupplierName,
			BaseCost:        payload.BaseCost,
			SellingPrice:    payload.SellingPrice,
			PrimaryImageURL: payload.PrimaryImageURL,
			GalleryImages:   payload.GalleryImages,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeactivateProduct handles DELETE /api/v1/products/{productId}. The
// row survives as inactive so ledger history stays intact.
func DeactivateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuidParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"product_id": productID, "is_active": false})
	}
}
