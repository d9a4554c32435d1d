package controllers

import (
	"fmt"
	"net/http"

	"github.com/grocerly/grocerly-backend/api/responses"
	"github.com/grocerly/grocerly-backend/api/validators"
	"github.com/grocerly/grocerly-backend/internal/drafts"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/logger"
)

type setDraftFieldRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

func GetDraft(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Get(r.Context()))
	}
}

func SetDraftField(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}

		var payload setDraftFieldRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.SetField(r.Context(), payload.Field, payload.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// BeginDraftEdit loads a product into the form and flips it to edit mode.
func BeginDraftEdit(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.BeginEdit(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// SubmitDraft creates or updates the product behind the form. The draft
// survives a failed submit so nothing the shopper typed is lost.
func SubmitDraft(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}

		outcome, err := svc.Submit(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if outcome.Created {
			responses.WriteMessageWithID(w, http.StatusCreated,
				fmt.Sprintf("%s added successfully", outcome.Product.ProductName), outcome.Product.ID)
			return
		}
		responses.WriteMessage(w, http.StatusOK,
			fmt.Sprintf("%s has been updated with id %s", outcome.Product.ProductName, outcome.Product.ID))
	}
}

func CancelDraft(svc drafts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "draft service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Cancel(r.Context()))
	}
}
