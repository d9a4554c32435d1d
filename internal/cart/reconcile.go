package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/money"
)

// Reconciler keeps cart lines consistent with product writes. It runs
// inside the product service's transaction and only needs the cart
// repository, so it can be wired before the cart service exists.
type Reconciler struct {
	repo   *Repository
	symbol string
}

// NewReconciler builds the cart-side hook for product edits and deletes.
func NewReconciler(repo *Repository, symbol string) *Reconciler {
	if symbol == "" {
		symbol = money.DefaultSymbol
	}
	return &Reconciler{repo: repo, symbol: symbol}
}

// ReconcileProductEdit copies the product's display fields onto its cart
// line and recomputes the total from the existing quantity. The quantity
// itself is never touched.
func (r *Reconciler) ReconcileProductEdit(ctx context.Context, tx *gorm.DB, updated *models.Product) error {
	txRepo := r.repo.WithTx(tx)

	item, err := txRepo.FindByProductID(ctx, updated.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
	}

	item.ProductName = updated.ProductName
	item.Brand = updated.Brand
	item.Image = updated.Image
	item.Price = updated.Price

	total, err := money.LineTotal(item.Price, item.Quantity, r.symbol)
	if err != nil {
		return err
	}
	item.Total = total.Decimal()

	if _, err := txRepo.Update(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
	}
	return nil
}

// ReconcileProductDelete removes the cart line for a deleted product.
func (r *Reconciler) ReconcileProductDelete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	if err := r.repo.WithTx(tx).DeleteByProductID(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
	}
	return nil
}
