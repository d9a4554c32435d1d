package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a committed cart line. At most one row exists per product
// (enforced by the unique index; merges happen in the service layer), the
// quantity stays >= 1 while the row exists, and Total is always recomputed
// from price and quantity on mutation.
type CartItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_items_product_id_key" json:"productId"`
	ProductName string          `gorm:"column:product_name;not null" json:"productName"`
	Brand       string          `gorm:"column:brand;not null" json:"brand"`
	Image       string          `gorm:"column:image;not null" json:"image"`
	Price       string          `gorm:"column:price;not null" json:"price"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	Total       decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Position    int             `gorm:"column:position;not null;default:0" json:"-"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (CartItem) TableName() string { return "cart_items" }
