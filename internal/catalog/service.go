package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages per-product pending quantities: the not-yet-committed
// counts shoppers dial up before adding a product to the cart.
type Service interface {
	ListQuantities(ctx context.Context) ([]models.PendingQuantity, error)
	Adjust(ctx context.Context, productID uuid.UUID, delta int) (*models.PendingQuantity, error)
	Reseed(ctx context.Context, productIDs []uuid.UUID) error

	// Transactional hooks used by the cart and product services.
	Take(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int, error)
	EnsureRow(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
	RemoveRow(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type service struct {
	repo *Repository
	db   txRunner
}

// NewService constructs a pending-quantity service instance.
func NewService(repo *Repository, db txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pending repository required")
	}
	if db == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, db: db}, nil
}

// ListQuantities returns every counter row.
func (s *service) ListQuantities(ctx context.Context) ([]models.PendingQuantity, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list pending quantities")
	}
	return rows, nil
}

// Adjust applies a signed delta to one counter, flooring at zero. Only the
// addressed row is touched.
func (s *service) Adjust(ctx context.Context, productID uuid.UUID, delta int) (*models.PendingQuantity, error) {
	row, err := s.repo.Find(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pending quantity not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load pending quantity")
	}

	next := row.Quantity + delta
	if next < 0 {
		next = 0
	}
	row.Quantity = next

	if _, err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save pending quantity")
	}
	return row, nil
}

// Reseed inserts zero rows for products that have no counter yet. Existing
// counters are never reset, so reloading the catalog keeps accumulated
// counts.
func (s *service) Reseed(ctx context.Context, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}

	if err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		rows, err := txRepo.List(ctx)
		if err != nil {
			return err
		}
		known := make(map[uuid.UUID]struct{}, len(rows))
		for _, row := range rows {
			known[row.ProductID] = struct{}{}
		}

		for _, id := range productIDs {
			if _, ok := known[id]; ok {
				continue
			}
			if _, err := txRepo.Create(ctx, &models.PendingQuantity{ProductID: id}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reseed pending quantities")
	}
	return nil
}

// Take hands over the accumulated count and resets the row to zero inside
// the caller's transaction. A missing row counts as zero.
func (s *service) Take(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int, error) {
	txRepo := s.repo.WithTx(tx)

	row, err := txRepo.Find(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load pending quantity")
	}

	qty := row.Quantity
	if qty == 0 {
		return 0, nil
	}

	row.Quantity = 0
	if _, err := txRepo.Save(ctx, row); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reset pending quantity")
	}
	return qty, nil
}

// EnsureRow seeds a zero counter for a new product. An existing counter is
// left alone.
func (s *service) EnsureRow(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	txRepo := s.repo.WithTx(tx)

	if _, err := txRepo.Find(ctx, productID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load pending quantity")
	}

	if _, err := txRepo.Create(ctx, &models.PendingQuantity{ProductID: productID}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: seed pending quantity")
	}
	return nil
}

// RemoveRow drops the counter for a deleted product.
func (s *service) RemoveRow(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	if err := s.repo.WithTx(tx).Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete pending quantity")
	}
	return nil
}
