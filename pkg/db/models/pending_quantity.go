package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingQuantity is the per-product draft count shown on a catalog card
// before it is committed to the cart. Exactly one row exists per catalog
// product; the quantity never goes negative.
type PendingQuantity struct {
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey" json:"productId"`
	Quantity  int       `gorm:"column:quantity;not null;default:0" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (PendingQuantity) TableName() string { return "pending_quantities" }
