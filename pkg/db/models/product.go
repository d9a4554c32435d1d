package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is the canonical grocery catalog entry. Price is stored the way
// the wire contract carries it: a currency-prefixed string (e.g. "$2.50"),
// validated on every write.
type Product struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductName string    `gorm:"column:product_name;not null" json:"productName"`
	Brand       string    `gorm:"column:brand;not null" json:"brand"`
	Image       string    `gorm:"column:image;not null" json:"image"`
	Price       string    `gorm:"column:price;not null" json:"price"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Product) TableName() string { return "products" }
