package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/grocerly/grocerly-backend/api/responses"
	"github.com/grocerly/grocerly-backend/api/validators"
	productsvc "github.com/grocerly/grocerly-backend/internal/products"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/logger"
)

// productScope tags request-log lines with the product being acted on.
func productScope(ctx context.Context, logg *logger.Logger, id uuid.UUID) context.Context {
	if logg == nil {
		return ctx
	}
	return logg.WithProductID(ctx, id.String())
}

type productRequest struct {
	ProductName string `json:"productName" validate:"required"`
	Brand       string `json:"brand" validate:"required"`
	Image       string `json:"image" validate:"omitempty,url"`
	Price       string `json:"price" validate:"required"`
}

// ListProducts returns the whole catalog as a bare array.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := productScope(r.Context(), logg, id)
		product, err := svc.GetProduct(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			ProductName: payload.ProductName,
			Brand:       payload.Brand,
			Image:       payload.Image,
			Price:       payload.Price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessageWithID(w, http.StatusCreated,
			fmt.Sprintf("%s added successfully", created.ProductName), created.ID)
	}
}

func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := productScope(r.Context(), logg, id)
		updated, err := svc.UpdateProduct(ctx, id, productsvc.UpdateProductInput{
			ProductName: payload.ProductName,
			Brand:       payload.Brand,
			Image:       payload.Image,
			Price:       payload.Price,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK,
			fmt.Sprintf("%s has been updated with id %s", updated.ProductName, updated.ID))
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := productScope(r.Context(), logg, id)
		if err := svc.DeleteProduct(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK,
			fmt.Sprintf("Product is deleted with id %s", id))
	}
}
