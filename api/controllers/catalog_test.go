package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
)

type stubCatalogService struct {
	rows []models.PendingQuantity
	row  *models.PendingQuantity
	err  error

	lastDelta int
}

func (s *stubCatalogService) ListQuantities(context.Context) ([]models.PendingQuantity, error) {
	return s.rows, s.err
}

func (s *stubCatalogService) Adjust(_ context.Context, productID uuid.UUID, delta int) (*models.PendingQuantity, error) {
	s.lastDelta = delta
	return s.row, s.err
}

func (s *stubCatalogService) Reseed(context.Context, []uuid.UUID) error { return s.err }

func (s *stubCatalogService) Take(context.Context, *gorm.DB, uuid.UUID) (int, error) {
	return 0, s.err
}

func (s *stubCatalogService) EnsureRow(context.Context, *gorm.DB, uuid.UUID) error { return s.err }

func (s *stubCatalogService) RemoveRow(context.Context, *gorm.DB, uuid.UUID) error { return s.err }

func TestListPendingQuantities(t *testing.T) {
	productID := uuid.New()
	stub := &stubCatalogService{rows: []models.PendingQuantity{{ProductID: productID, Quantity: 3}}}

	rec := httptest.NewRecorder()
	ListPendingQuantities(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/quantities", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0].ProductID != productID.String() || body[0].Quantity != 3 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestAdjustPendingQuantity(t *testing.T) {
	productID := uuid.New()

	t.Run("success", func(t *testing.T) {
		stub := &stubCatalogService{row: &models.PendingQuantity{ProductID: productID, Quantity: 2}}
		req := httptest.NewRequest(http.MethodPatch, "/catalog/quantities/"+productID.String(), strings.NewReader(`{"delta":1}`))
		req = withURLParam(req, "productId", productID.String())
		rec := httptest.NewRecorder()
		AdjustPendingQuantity(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastDelta != 1 {
			t.Fatalf("expected delta 1 passed through, got %d", stub.lastDelta)
		}
	})

	t.Run("missing delta", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/catalog/quantities/"+productID.String(), strings.NewReader(`{}`))
		req = withURLParam(req, "productId", productID.String())
		rec := httptest.NewRecorder()
		AdjustPendingQuantity(&stubCatalogService{}, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		stub := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "pending quantity not found")}
		req := httptest.NewRequest(http.MethodPatch, "/catalog/quantities/"+productID.String(), strings.NewReader(`{"delta":1}`))
		req = withURLParam(req, "productId", productID.String())
		rec := httptest.NewRecorder()
		AdjustPendingQuantity(stub, testLogger()).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
