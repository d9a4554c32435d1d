package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/pkg/db"
	"github.com/grocerly/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/money"
)

// Service exposes catalog product management operations.
type Service interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	ProductName string
	Brand       string
	Image       string
	Price       string
}

// UpdateProductInput replaces every mutable field, matching the PATCH
// contract which always carries the full form.
type UpdateProductInput struct {
	ProductName string
	Brand       string
	Image       string
	Price       string
}

// cartReconciler keeps committed cart lines in sync with catalog writes.
// Reconciliation runs inside the product transaction so a failed write
// leaves the cart untouched.
type cartReconciler interface {
	ReconcileProductEdit(ctx context.Context, tx *gorm.DB, updated *models.Product) error
	ReconcileProductDelete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

// pendingSeeder keeps the pending-quantity table aligned with the catalog:
// new products get a zero row, deleted products lose theirs. Existing rows
// are never reset (additive reseeding).
type pendingSeeder interface {
	EnsureRow(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
	RemoveRow(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	cart     cartReconciler
	pending  pendingSeeder
	symbol   string
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, cart cartReconciler, pending pendingSeeder, symbol string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart reconciler required")
	}
	if pending == nil {
		return nil, fmt.Errorf("pending seeder required")
	}
	if symbol == "" {
		symbol = money.DefaultSymbol
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		cart:     cart,
		pending:  pending,
		symbol:   symbol,
	}, nil
}

// ListProducts returns the whole catalog.
func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	return rows, nil
}

// GetProduct loads one product by id.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return row, nil
}

// CreateProduct inserts a product and seeds its pending-quantity row.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	price, err := s.normalizePrice(input.Price)
	if err != nil {
		return nil, err
	}

	row := &models.Product{
		ID:          uuid.New(),
		ProductName: strings.TrimSpace(input.ProductName),
		Brand:       strings.TrimSpace(input.Brand),
		Image:       strings.TrimSpace(input.Image),
		Price:       price,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Create(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		if err := s.pending.EnsureRow(ctx, tx, row.ID); err != nil {
			return err
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return row, nil
}

// UpdateProduct replaces the product's fields and reconciles any matching
// cart line in the same transaction. The cart quantity is never touched; the
// line total is recomputed from the new price.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	price, err := s.normalizePrice(input.Price)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	row.ProductName = strings.TrimSpace(input.ProductName)
	row.Brand = strings.TrimSpace(input.Brand)
	row.Image = strings.TrimSpace(input.Image)
	row.Price = price

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Update(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		return s.cart.ReconcileProductEdit(ctx, tx, row)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return row, nil
}

// DeleteProduct removes the product and, as a side effect, its cart line and
// pending-quantity row.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
		}
		if err := s.cart.ReconcileProductDelete(ctx, tx, id); err != nil {
			return err
		}
		return s.pending.RemoveRow(ctx, tx, id)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}

	return nil
}

// normalizePrice validates the incoming currency string and renders it in
// canonical form ("$2.5" becomes "$2.50").
func (s *service) normalizePrice(raw string) (string, error) {
	amount, err := money.Parse(raw, s.symbol)
	if err != nil {
		return "", err
	}
	return amount.Format(s.symbol), nil
}
