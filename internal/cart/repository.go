package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/internal/repo"
	"github.com/grocerly/grocerly-backend/pkg/db/models"
)

// Repository provides gorm-backed cart line access.
type Repository struct {
	repo.Base
}

// NewRepository wires a cart repository around the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// List returns every cart line, newest first.
func (r *Repository) List(ctx context.Context) ([]models.CartItem, error) {
	var rows []models.CartItem
	if err := r.DB(ctx).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByProductID loads the cart line holding the given product.
func (r *Repository) FindByProductID(ctx context.Context, productID uuid.UUID) (*models.CartItem, error) {
	var row models.CartItem
	if err := r.DB(ctx).Where("product_id = ?", productID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a cart line, assigning an id when absent.
func (r *Repository) Create(ctx context.Context, row *models.CartItem) (*models.CartItem, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update persists the full cart line.
func (r *Repository) Update(ctx context.Context, row *models.CartItem) (*models.CartItem, error) {
	if err := r.DB(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteByProductID removes the line holding the given product, if any.
func (r *Repository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	return r.DB(ctx).Where("product_id = ?", productID).Delete(&models.CartItem{}).Error
}

// DeleteAll clears the cart.
func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.DB(ctx).Where("1 = 1").Delete(&models.CartItem{}).Error
}

// MinPosition returns the smallest position in use; zero when empty.
// New lines insert at MinPosition-1 so they sort first.
func (r *Repository) MinPosition(ctx context.Context) (int, error) {
	var min *int
	if err := r.DB(ctx).Model(&models.CartItem{}).Select("MIN(position)").Scan(&min).Error; err != nil {
		return 0, err
	}
	if min == nil {
		return 0, nil
	}
	return *min, nil
}
