package repository

import (
	"context"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
)

// ProductFilter defines the composable criteria for listing products. Nil
// pointer fields mean "not filtered". The repository renders the data query
// and the total count from the same predicate, so they can never disagree.
type ProductFilter struct {
	Search        *string
	CategoryID    *string
	SubCategoryID *string
	MinPrice      *float64
	MaxPrice      *float64
	InStock       *bool
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}

// OrderFilter defines criteria for listing orders.
type OrderFilter struct {
	UserID *string
	Status *string
	Page   int
	Limit  int
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// SubCategoryRepository defines persistence operations for sub-categories.
type SubCategoryRepository interface {
	Create(ctx context.Context, sub *domain.SubCategory) error
	GetByID(ctx context.Context, id string) (*domain.SubCategory, error)
	GetBySlug(ctx context.Context, slug string) (*domain.SubCategory, error)
	List(ctx context.Context) ([]domain.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error)
	Update(ctx context.Context, sub *domain.SubCategory) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// List returns products matching the filter along with the total count
	// of rows matching the same predicate.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// ListDiscounted returns products with a discount price set, newest first.
	ListDiscounted(ctx context.Context, limit int) ([]domain.Product, error)

	// ListLowStock returns products with stock at or below threshold,
	// least stocked first.
	ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error)

	// Stats computes catalog-wide aggregates in a single query.
	Stats(ctx context.Context) (*domain.ProductStats, error)

	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// VariantRepository defines persistence operations for product variants and
// their inventory rows. Stock writes happen in the same transaction as the
// variant write.
type VariantRepository interface {
	Create(ctx context.Context, variant *domain.ProductVariant, stock int) error
	GetByID(ctx context.Context, id string) (*domain.ProductVariant, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error)
	Update(ctx context.Context, variant *domain.ProductVariant, stock *int) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns users with their order counts plus the total user count.
	List(ctx context.Context, page, limit int) ([]domain.User, int, error)

	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Create inserts the order and all of its items in one transaction.
	Create(ctx context.Context, order *domain.Order) error

	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
