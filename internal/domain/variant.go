package domain

import (
	"time"
)

// ProductVariant is a purchasable flavor of a product (size, color, pack
// count). Each variant carries its own SKU and price; its stock lives in the
// associated Inventory row.
type ProductVariant struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	SKU         string    `json:"sku"`
	VariantName string    `json:"variantName"`
	Price       float64   `json:"price"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Inventory *Inventory `json:"inventory,omitempty"`
	Product   *Product   `json:"product,omitempty"`
}

// Inventory tracks the stock on hand for one variant.
type Inventory struct {
	VariantID     string    `json:"variantId"`
	StockQuantity int       `json:"stockQuantity"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
