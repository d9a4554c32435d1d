package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/internal/repo"
	"github.com/grocerly/grocerly-backend/pkg/db/models"
)

// Repository provides gorm-backed pending-quantity access.
type Repository struct {
	repo.Base
}

// NewRepository wires a pending-quantity repository around the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// List returns every counter row.
func (r *Repository) List(ctx context.Context) ([]models.PendingQuantity, error) {
	var rows []models.PendingQuantity
	if err := r.DB(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find loads the counter row for one product.
func (r *Repository) Find(ctx context.Context, productID uuid.UUID) (*models.PendingQuantity, error) {
	var row models.PendingQuantity
	if err := r.DB(ctx).Where("product_id = ?", productID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a counter row.
func (r *Repository) Create(ctx context.Context, row *models.PendingQuantity) (*models.PendingQuantity, error) {
	if err := r.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Save persists the full counter row.
func (r *Repository) Save(ctx context.Context, row *models.PendingQuantity) (*models.PendingQuantity, error) {
	if err := r.DB(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the counter row for one product, if any.
func (r *Repository) Delete(ctx context.Context, productID uuid.UUID) error {
	return r.DB(ctx).Where("product_id = ?", productID).Delete(&models.PendingQuantity{}).Error
}
