package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	"github.com/OishiSharmeen04/Pet-Shop/internal/event"
	"github.com/OishiSharmeen04/Pet-Shop/internal/repository"
	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/pagination"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/slug"
)

// DefaultLowStockThreshold is used when no threshold is given for low-stock
// listings.
const DefaultLowStockThreshold = 5

// ProductService implements the business logic for product operations.
type ProductService struct {
	repo     repository.ProductRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, producer *event.Producer, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name          string
	Slug          string
	Description   string
	Price         float64
	DiscountPrice *float64
	Stock         int
	SKU           string
	CategoryID    string
	SubCategoryID *string
}

// UpdateProductInput holds the parameters for updating a product.
type UpdateProductInput struct {
	Name          *string
	Slug          *string
	Description   *string
	Price         *float64
	DiscountPrice *float64
	Stock         *int
	SKU           *string
	CategoryID    *string
	SubCategoryID *string
}

// CreateProduct creates a new product. When no slug is given, one is derived
// from the name.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.SKU == "" {
		return nil, apperrors.InvalidInput("product sku is required")
	}
	if input.CategoryID == "" {
		return nil, apperrors.InvalidInput("categoryId is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Stock < 0 {
		return nil, apperrors.InvalidInput("stock must not be negative")
	}
	if input.DiscountPrice != nil && *input.DiscountPrice >= input.Price {
		return nil, apperrors.InvalidInput("discount price must be lower than the price")
	}

	productSlug := input.Slug
	if productSlug == "" {
		productSlug = slug.Generate(input.Name)
	}
	if productSlug == "" {
		return nil, apperrors.InvalidInput("product name must contain at least one letter or digit")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Slug:          productSlug,
		Description:   input.Description,
		Price:         input.Price,
		DiscountPrice: input.DiscountPrice,
		Stock:         input.Stock,
		SKU:           input.SKU,
		CategoryID:    input.CategoryID,
		SubCategoryID: input.SubCategoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// GetProductBySlug retrieves a product by its slug.
func (s *ProductService) GetProductBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	product, err := s.repo.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return product, nil
}

// ListProducts returns a filtered, paginated product list with pagination
// metadata computed from the total match count.
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, *pagination.Meta, error) {
	params := pagination.Params{Page: filter.Page, Limit: filter.Limit}.Normalize()
	filter.Page = params.Page
	filter.Limit = params.Limit

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list products: %w", err)
	}

	meta := pagination.NewMeta(params, total)
	return products, &meta, nil
}

// ListDiscountedProducts returns products with an active discount.
func (s *ProductService) ListDiscountedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	if limit > pagination.MaxLimit {
		limit = pagination.MaxLimit
	}

	products, err := s.repo.ListDiscounted(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list discounted products: %w", err)
	}
	return products, nil
}

// ListLowStockProducts returns products with stock at or below the threshold.
func (s *ProductService) ListLowStockProducts(ctx context.Context, threshold int) ([]domain.Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	products, err := s.repo.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	return products, nil
}

// GetProductStats returns catalog-wide aggregates.
func (s *ProductService) GetProductStats(ctx context.Context) (*domain.ProductStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get product stats: %w", err)
	}
	return stats, nil
}

// UpdateProduct applies partial updates to an existing product. A name change
// regenerates the slug unless an explicit slug is also given.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("product name must not be empty")
		}
		product.Name = *input.Name
		product.Slug = slug.Generate(*input.Name)
	}

	if input.Slug != nil {
		if *input.Slug == "" {
			return nil, apperrors.InvalidInput("product slug must not be empty")
		}
		product.Slug = *input.Slug
	}

	if input.Description != nil {
		product.Description = *input.Description
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}
		product.Price = *input.Price
	}

	if input.DiscountPrice != nil {
		product.DiscountPrice = input.DiscountPrice
	}

	if product.DiscountPrice != nil && *product.DiscountPrice >= product.Price {
		return nil, apperrors.InvalidInput("discount price must be lower than the price")
	}

	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, apperrors.InvalidInput("stock must not be negative")
		}
		product.Stock = *input.Stock
	}

	if input.SKU != nil {
		if *input.SKU == "" {
			return nil, apperrors.InvalidInput("product sku must not be empty")
		}
		product.SKU = *input.SKU
	}

	if input.CategoryID != nil {
		if *input.CategoryID == "" {
			return nil, apperrors.InvalidInput("categoryId must not be empty")
		}
		product.CategoryID = *input.CategoryID
	}

	if input.SubCategoryID != nil {
		product.SubCategoryID = input.SubCategoryID
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// DeleteProduct removes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
	)

	return nil
}
