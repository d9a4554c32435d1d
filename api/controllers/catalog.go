package controllers

import (
	"net/http"

	"github.com/grocerly/grocerly-backend/api/responses"
	"github.com/grocerly/grocerly-backend/api/validators"
	"github.com/grocerly/grocerly-backend/internal/catalog"
	"github.com/grocerly/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/logger"
)

type adjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ListPendingQuantities returns every per-product counter.
func ListPendingQuantities(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		rows, err := svc.ListQuantities(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if rows == nil {
			rows = []models.PendingQuantity{}
		}
		responses.WriteSuccess(w, rows)
	}
}

// AdjustPendingQuantity applies a signed delta to one counter, floored at
// zero.
func AdjustPendingQuantity(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Adjust(r.Context(), productID, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}
