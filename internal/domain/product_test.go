package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// Sort whitelist tests
// ============================================================================

func TestSortColumn_KnownKeys(t *testing.T) {
	assert.Equal(t, "name", SortColumn(SortByName))
	assert.Equal(t, "price", SortColumn(SortByPrice))
	assert.Equal(t, "created_at", SortColumn(SortByCreatedAt))
}

func TestSortColumn_UnknownKey_FallsBackToCreatedAt(t *testing.T) {
	assert.Equal(t, "created_at", SortColumn(""))
	assert.Equal(t, "created_at", SortColumn("stock"))
	assert.Equal(t, "created_at", SortColumn("NAME"))
	// Never pass user input through as a column name.
	assert.Equal(t, "created_at", SortColumn("price; DROP TABLE products"))
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, "ASC", SortDirection(SortAsc))
	assert.Equal(t, "DESC", SortDirection(SortDesc))
	assert.Equal(t, "DESC", SortDirection(""))
	assert.Equal(t, "DESC", SortDirection("sideways"))
}

// ============================================================================
// Product struct tests
// ============================================================================

func TestProduct_SlugField(t *testing.T) {
	p := Product{Name: "Dog Chew Toy", Slug: "dog-chew-toy"}
	assert.Equal(t, "dog-chew-toy", p.Slug)
	assert.Equal(t, "Dog Chew Toy", p.Name)
}

func TestProduct_NullableDiscountPrice(t *testing.T) {
	discount := 14.99
	p := Product{Price: 19.99, DiscountPrice: &discount}
	assert.NotNil(t, p.DiscountPrice)
	assert.Equal(t, 14.99, *p.DiscountPrice)

	assert.Nil(t, Product{}.DiscountPrice)
}

func TestProduct_NullableSubCategory(t *testing.T) {
	subID := "sub-123"
	p := Product{CategoryID: "cat-1", SubCategoryID: &subID}
	assert.Equal(t, "cat-1", p.CategoryID)
	assert.Equal(t, "sub-123", *p.SubCategoryID)

	assert.Nil(t, Product{}.SubCategoryID)
}
