package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cducote/pawstock-backend/api/responses"
	"github.com/cducote/pawstock-backend/api/validators"
	"github.com/cducote/pawstock-backend/internal/catalog"
	pkgerrors "github.com/cducote/pawstock-backend/pkg/errors"
	"github.com/cducote/pawstock-backend/pkg/logger"
)

type createMatchingSetRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=200"`
	Pattern    *string  `json:"pattern,omitempty"`
	ProductIDs []string `json:"product_ids" validate:"required,min=1,dive,uuid"`
}

// CreateMatchingSet handles POST /api/v1/matching-sets.
func CreateMatchingSet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createMatchingSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids := make([]uuid.UUID, 0, len(payload.ProductIDs))
		for _, raw := range payload.ProductIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			ids = append(ids, id)
		}

		set, err := svc.CreateMatchingSet(r.Context(), catalog.CreateMatchingSetInput{
			Name:       payload.Name,
			Pattern:    payload.Pattern,
			ProductIDs: ids,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, set)
	}
}

// ListMatchingSets handles GET /api/v1/matching-sets.
func ListMatchingSets(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sets, err := svc.ListMatchingSets(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sets)
	}
}

// DeleteMatchingSet handles DELETE /api/v1/matching-sets/{setId}.
func DeleteMatchingSet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setID, err := uuidParam(r, "setId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMatchingSet(r.Context(), setID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"set_id": setID, "deleted": true})
	}
}
