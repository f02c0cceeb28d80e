package domain

import (
	"time"
)

// Sort keys accepted on the product listing endpoint.
const (
	SortByName      = "name"
	SortByPrice     = "price"
	SortByCreatedAt = "createdAt"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Product represents a sellable catalog item. DiscountPrice, when set, is the
// promotional price shown instead of Price. Stock is the units available for
// the base product; variant-level stock lives in Inventory.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discountPrice,omitempty"`
	Stock         int       `json:"stock"`
	SKU           string    `json:"sku"`
	CategoryID    string    `json:"categoryId"`
	SubCategoryID *string   `json:"subCategoryId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Category    *Category    `json:"category,omitempty"`
	SubCategory *SubCategory `json:"subCategory,omitempty"`
}

// ProductStats summarizes the catalog in one aggregate.
type ProductStats struct {
	TotalProducts int     `json:"totalProducts"`
	TotalValue    float64 `json:"totalValue"`
	AvgPrice      float64 `json:"avgPrice"`
	OutOfStock    int     `json:"outOfStock"`
}

// sortColumns whitelists the API sort keys and maps them to SQL columns.
// Anything not in this map falls back to created_at.
var sortColumns = map[string]string{
	SortByName:      "name",
	SortByPrice:     "price",
	SortByCreatedAt: "created_at",
}

// SortColumn maps an API sort key to its SQL column. Unknown keys yield the
// created_at default.
func SortColumn(sortBy string) string {
	if col, ok := sortColumns[sortBy]; ok {
		return col
	}
	return "created_at"
}

// SortDirection normalizes a sort order to ASC or DESC, defaulting to DESC.
func SortDirection(sortOrder string) string {
	if sortOrder == SortAsc {
		return "ASC"
	}
	return "DESC"
}
