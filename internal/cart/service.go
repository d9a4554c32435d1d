package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/pkg/db/models"
	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
	"github.com/grocerly/grocerly-backend/pkg/money"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// pendingConsumer hands over a product's accumulated pending quantity and
// resets the row inside the same transaction.
type pendingConsumer interface {
	Take(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (int, error)
}

// View is the cart read model: every line plus the running total.
type View struct {
	Items     []models.CartItem
	CartTotal string
	Count     int
}

// QuantityOutcome reports what a quantity change did to the line.
type QuantityOutcome struct {
	Item    *models.CartItem
	Removed bool
}

// AddItemInput holds the validated add-to-cart payload.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// Service exposes cart state operations.
type Service interface {
	GetCart(ctx context.Context) (*View, error)
	AddItem(ctx context.Context, input AddItemInput) (*models.CartItem, error)
	AddFromPending(ctx context.Context, productID uuid.UUID) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, productID uuid.UUID, delta int, confirmRemoval *bool) (*QuantityOutcome, error)
	RemoveItem(ctx context.Context, productID uuid.UUID) error
	EmptyCart(ctx context.Context) error

	// Reconciliation hooks run by the product service inside its own
	// write transaction.
	ReconcileProductEdit(ctx context.Context, tx *gorm.DB, updated *models.Product) error
	ReconcileProductDelete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type service struct {
	*Reconciler

	repo     *Repository
	db       txRunner
	products productLoader
	pending  pendingConsumer
	symbol   string
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, db txRunner, products productLoader, pending pendingConsumer, symbol string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if db == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if pending == nil {
		return nil, fmt.Errorf("pending consumer required")
	}
	if symbol == "" {
		symbol = money.DefaultSymbol
	}
	return &service{
		Reconciler: NewReconciler(repo, symbol),
		repo:       repo,
		db:         db,
		products:   products,
		pending:    pending,
		symbol:     symbol,
	}, nil
}

// GetCart returns every line plus the formatted running total.
func (s *service) GetCart(ctx context.Context) (*View, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
	}

	total := money.Zero()
	for _, row := range rows {
		total = total.Add(money.FromDecimal(row.Total))
	}

	return &View{
		Items:     rows,
		CartTotal: total.Format(s.symbol),
		Count:     len(rows),
	}, nil
}

// AddItem merges the quantity into an existing line or prepends a new one.
func (s *service) AddItem(ctx context.Context, input AddItemInput) (*models.CartItem, error) {
	if input.Quantity == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "number of items cannot be 0")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "number of items cannot be negative")
	}

	prod, err := s.products.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	var item *models.CartItem
	if err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		item, err = s.mergeOrInsert(ctx, tx, prod, input.Quantity)
		return err
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return item, nil
}

// AddFromPending moves the product's accumulated pending count into the
// cart and resets the counter, all in one transaction.
func (s *service) AddFromPending(ctx context.Context, productID uuid.UUID) (*models.CartItem, error) {
	prod, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var item *models.CartItem
	if err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		qty, err := s.pending.Take(ctx, tx, productID)
		if err != nil {
			return err
		}
		if qty == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "number of items cannot be 0")
		}
		item, err = s.mergeOrInsert(ctx, tx, prod, qty)
		return err
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item from pending")
	}
	return item, nil
}

// UpdateQuantity applies a signed delta to the line. Dropping below one
// unit requires an explicit removal decision: absent a decision the call
// fails with CONFIRMATION_REQUIRED and the line is untouched; a true
// decision removes the line; a false decision clamps it to one unit.
func (s *service) UpdateQuantity(ctx context.Context, productID uuid.UUID, delta int, confirmRemoval *bool) (*QuantityOutcome, error) {
	item, err := s.findLine(ctx, productID)
	if err != nil {
		return nil, err
	}

	change := computeQuantityChange(item.Quantity, delta)
	if !change.RequiresConfirmation {
		if err := s.setQuantity(ctx, item, change.NewQuantity); err != nil {
			return nil, err
		}
		return &QuantityOutcome{Item: item}, nil
	}

	if confirmRemoval == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfirmation, "removing the last unit empties this cart line").
			WithDetails(map[string]any{
				"productId":   item.ProductID,
				"productName": item.ProductName,
			})
	}

	if *confirmRemoval {
		if err := s.repo.DeleteByProductID(ctx, productID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
		}
		return &QuantityOutcome{Removed: true}, nil
	}

	if err := s.setQuantity(ctx, item, 1); err != nil {
		return nil, err
	}
	return &QuantityOutcome{Item: item}, nil
}

// RemoveItem drops the line holding the product. Removing an absent line
// is not an error.
func (s *service) RemoveItem(ctx context.Context, productID uuid.UUID) error {
	if err := s.repo.DeleteByProductID(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
	}
	return nil
}

// EmptyCart clears every line.
func (s *service) EmptyCart(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: empty cart")
	}
	return nil
}

func (s *service) findLine(ctx context.Context, productID uuid.UUID) (*models.CartItem, error) {
	item, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
	}
	return item, nil
}

func (s *service) setQuantity(ctx context.Context, item *models.CartItem, quantity int) error {
	total, err := money.LineTotal(item.Price, quantity, s.symbol)
	if err != nil {
		return err
	}

	item.Quantity = quantity
	item.Total = total.Decimal()

	if _, err := s.repo.Update(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
	}
	return nil
}

// mergeOrInsert folds quantity into the product's existing line or makes a
// fresh line at the top of the cart.
func (s *service) mergeOrInsert(ctx context.Context, tx *gorm.DB, prod *models.Product, quantity int) (*models.CartItem, error) {
	txRepo := s.repo.WithTx(tx)

	existing, err := txRepo.FindByProductID(ctx, prod.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
	}

	if existing != nil {
		newQty := existing.Quantity + quantity
		total, err := money.LineTotal(existing.Price, newQty, s.symbol)
		if err != nil {
			return nil, err
		}
		existing.Quantity = newQty
		existing.Total = total.Decimal()
		if _, err := txRepo.Update(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
		}
		return existing, nil
	}

	total, err := money.LineTotal(prod.Price, quantity, s.symbol)
	if err != nil {
		return nil, err
	}

	minPos, err := txRepo.MinPosition(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: cart position")
	}

	row := &models.CartItem{
		ID:          uuid.New(),
		ProductID:   prod.ID,
		ProductName: prod.ProductName,
		Brand:       prod.Brand,
		Image:       prod.Image,
		Price:       prod.Price,
		Quantity:    quantity,
		Total:       total.Decimal(),
		Position:    minPos - 1,
	}
	if _, err := txRepo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cart item")
	}
	return row, nil
}
