package controllers

import (
	"net/http"

	"github.com/grocerly/grocerly-backend/api/responses"
	"github.com/grocerly/grocerly-backend/api/validators"
	cartsvc "github.com/grocerly/grocerly-backend/internal/cart"
	"github.com/grocerly/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/logger"
)

type cartResponse struct {
	Items     []models.CartItem `json:"items"`
	CartTotal string            `json:"cartTotal"`
	Count     int               `json:"count"`
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Delta          int   `json:"delta" validate:"required"`
	ConfirmRemoval *bool `json:"confirmRemoval,omitempty"`
}

type quantityResponse struct {
	Removed bool             `json:"removed"`
	Item    *models.CartItem `json:"item,omitempty"`
}

func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		view, err := svc.GetCart(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := view.Items
		if items == nil {
			items = []models.CartItem{}
		}
		responses.WriteSuccess(w, cartResponse{
			Items:     items,
			CartTotal: view.CartTotal,
			Count:     view.Count,
		})
	}
}

func AddCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDString(payload.ProductID, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := productScope(r.Context(), logg, productID)
		item, err := svc.AddItem(ctx, cartsvc.AddItemInput{
			ProductID: productID,
			Quantity:  payload.Quantity,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// AddCartItemFromPending commits a product's pending counter into the cart.
func AddCartItemFromPending(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := productScope(r.Context(), logg, productID)
		item, err := svc.AddFromPending(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// UpdateCartItemQuantity applies a signed delta. A change that would empty
// the line comes back 409 until the caller resends with confirmRemoval.
func UpdateCartItemQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := productScope(r.Context(), logg, productID)
		outcome, err := svc.UpdateQuantity(ctx, productID, payload.Delta, payload.ConfirmRemoval)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, quantityResponse{
			Removed: outcome.Removed,
			Item:    outcome.Item,
		})
	}
}

func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := productScope(r.Context(), logg, productID)
		if err := svc.RemoveItem(ctx, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func EmptyCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		if err := svc.EmptyCart(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
