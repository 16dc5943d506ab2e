package controllers

import (
	"net/http"

	"github.com/cducote/pawstock-backend/api/responses"
	"github.com/cducote/pawstock-backend/api/validators"
	"github.com/cducote/pawstock-backend/internal/catalog"
	"github.com/cducote/pawstock-backend/pkg/logger"
)

type createSupplierRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	WebsiteURL   *string `json:"website_url,omitempty" validate:"omitempty,url"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CreateSupplier handles POST /api/v1/suppliers.
func CreateSupplier(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createSupplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.CreateSupplier(r.Context(), catalog.CreateSupplierInput{
			Name:         payload.Name,
			ContactEmail: payload.ContactEmail,
			WebsiteURL:   payload.WebsiteURL,
			Notes:        validators.CleanNotes(payload.Notes),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, supplier)
	}
}

// ListSuppliers handles GET /api/v1/suppliers.
func ListSuppliers(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := svc.ListSuppliers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, suppliers)
	}
}
