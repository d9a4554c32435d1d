package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grocerly/grocerly-backend/internal/repo"
	"github.com/grocerly/grocerly-backend/pkg/db/models"
)

// Repository is the GORM-backed product store.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// List returns every catalog product, oldest first.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	if err := r.DB(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var row models.Product
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the product.
func (r *Repository) Create(ctx context.Context, row *models.Product) (*models.Product, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.DB(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves all mutable product fields.
func (r *Repository) Update(ctx context.Context, row *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Product{}, "id = ?", id).Error
}
