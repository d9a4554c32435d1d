package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/pkg/db/models"
)

func seedLine(t *testing.T, repo *Repository, name string, position int) *models.CartItem {
	t.Helper()

	row, err := repo.Create(context.Background(), &models.CartItem{
		ProductID:   uuid.New(),
		ProductName: name,
		Brand:       "Brand",
		Price:       "$2.50",
		Quantity:    1,
		Total:       decimal.RequireFromString("2.50"),
		Position:    position,
	})
	if err != nil {
		t.Fatalf("seed cart line %s: %v", name, err)
	}
	return row
}

func TestRepositoryListOrdersByPosition(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	seedLine(t, repo, "Bread", 0)
	seedLine(t, repo, "Milk", -1)
	seedLine(t, repo, "Eggs", -2)

	rows, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(rows))
	}
	if rows[0].ProductName != "Eggs" || rows[1].ProductName != "Milk" || rows[2].ProductName != "Bread" {
		t.Fatalf("expected newest-first order, got %s %s %s", rows[0].ProductName, rows[1].ProductName, rows[2].ProductName)
	}
}

func TestRepositoryMinPosition(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	min, err := repo.MinPosition(ctx)
	if err != nil {
		t.Fatalf("min on empty cart: %v", err)
	}
	if min != 0 {
		t.Fatalf("expected 0 for empty cart, got %d", min)
	}

	seedLine(t, repo, "Milk", -4)
	seedLine(t, repo, "Bread", 2)

	min, err = repo.MinPosition(ctx)
	if err != nil {
		t.Fatalf("min: %v", err)
	}
	if min != -4 {
		t.Fatalf("expected -4, got %d", min)
	}
}

func TestRepositoryUniqueProductPerLine(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	productID := uuid.New()
	if _, err := repo.Create(ctx, &models.CartItem{ProductID: productID, ProductName: "Milk", Price: "$2.50", Quantity: 1}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := repo.Create(ctx, &models.CartItem{ProductID: productID, ProductName: "Milk", Price: "$2.50", Quantity: 1}); err == nil {
		t.Fatal("expected unique violation for duplicate product line")
	}
}

func TestRepositoryDeleteByProductIDIsIdempotent(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	line := seedLine(t, repo, "Milk", 0)

	if err := repo.DeleteByProductID(ctx, line.ProductID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteByProductID(ctx, line.ProductID); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if _, err := repo.FindByProductID(ctx, line.ProductID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected line gone, got %v", err)
	}
}

func TestRepositoryDeleteAll(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	seedLine(t, repo, "Milk", 0)
	seedLine(t, repo, "Bread", -1)

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	rows, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(rows))
	}
}
