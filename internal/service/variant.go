package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	"github.com/OishiSharmeen04/Pet-Shop/internal/repository"
	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
)

// VariantService implements the business logic for product variant operations.
type VariantService struct {
	repo   repository.VariantRepository
	logger *slog.Logger
}

// NewVariantService creates a new variant service.
func NewVariantService(repo repository.VariantRepository, logger *slog.Logger) *VariantService {
	return &VariantService{
		repo:   repo,
		logger: logger,
	}
}

// CreateVariantInput holds the parameters for creating a variant.
type CreateVariantInput struct {
	ProductID   string
	SKU         string
	VariantName string
	Price       float64
	IsDefault   bool
	Stock       int
}

// UpdateVariantInput holds the parameters for updating a variant.
type UpdateVariantInput struct {
	SKU         *string
	VariantName *string
	Price       *float64
	IsDefault   *bool
	Stock       *int
}

// CreateVariant creates a variant and its inventory record.
func (s *VariantService) CreateVariant(ctx context.Context, input *CreateVariantInput) (*domain.ProductVariant, error) {
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("productId is required")
	}
	if input.SKU == "" {
		return nil, apperrors.InvalidInput("variant sku is required")
	}
	if input.VariantName == "" {
		return nil, apperrors.InvalidInput("variant name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Stock < 0 {
		return nil, apperrors.InvalidInput("stock must not be negative")
	}

	now := time.Now().UTC()
	variant := &domain.ProductVariant{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		SKU:         input.SKU,
		VariantName: input.VariantName,
		Price:       input.Price,
		IsDefault:   input.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, variant, input.Stock); err != nil {
		return nil, fmt.Errorf("create variant: %w", err)
	}

	s.logger.InfoContext(ctx, "variant created",
		slog.String("variant_id", variant.ID),
		slog.String("product_id", variant.ProductID),
		slog.String("sku", variant.SKU),
	)

	return variant, nil
}

// GetVariant retrieves a variant by its ID, with its inventory.
func (s *VariantService) GetVariant(ctx context.Context, id string) (*domain.ProductVariant, error) {
	variant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get variant by id: %w", err)
	}
	return variant, nil
}

// ListVariantsByProduct returns a product's variants, default variant first.
func (s *VariantService) ListVariantsByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	variants, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants by product: %w", err)
	}
	return variants, nil
}

// UpdateVariant applies partial updates to a variant, including its stock.
func (s *VariantService) UpdateVariant(ctx context.Context, id string, input *UpdateVariantInput) (*domain.ProductVariant, error) {
	variant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get variant for update: %w", err)
	}

	if input.SKU != nil {
		if *input.SKU == "" {
			return nil, apperrors.InvalidInput("variant sku must not be empty")
		}
		variant.SKU = *input.SKU
	}

	if input.VariantName != nil {
		if *input.VariantName == "" {
			return nil, apperrors.InvalidInput("variant name must not be empty")
		}
		variant.VariantName = *input.VariantName
	}

	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}
		variant.Price = *input.Price
	}

	if input.IsDefault != nil {
		variant.IsDefault = *input.IsDefault
	}

	if input.Stock != nil && *input.Stock < 0 {
		return nil, apperrors.InvalidInput("stock must not be negative")
	}

	if err := s.repo.Update(ctx, variant, input.Stock); err != nil {
		return nil, fmt.Errorf("update variant: %w", err)
	}

	if input.Stock != nil {
		variant.Inventory = &domain.Inventory{
			VariantID:     variant.ID,
			StockQuantity: *input.Stock,
			UpdatedAt:     variant.UpdatedAt,
		}
	}

	s.logger.InfoContext(ctx, "variant updated",
		slog.String("variant_id", variant.ID),
		slog.String("sku", variant.SKU),
	)

	return variant, nil
}

// DeleteVariant removes a variant and its inventory record.
func (s *VariantService) DeleteVariant(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}

	s.logger.InfoContext(ctx, "variant deleted",
		slog.String("variant_id", id),
	)

	return nil
}
