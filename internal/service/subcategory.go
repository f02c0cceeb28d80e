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
	"github.com/OishiSharmeen04/Pet-Shop/pkg/slug"
)

// SubCategoryService implements the business logic for sub-category operations.
type SubCategoryService struct {
	repo   repository.SubCategoryRepository
	logger *slog.Logger
}

// NewSubCategoryService creates a new sub-category service.
func NewSubCategoryService(repo repository.SubCategoryRepository, logger *slog.Logger) *SubCategoryService {
	return &SubCategoryService{
		repo:   repo,
		logger: logger,
	}
}

// CreateSubCategoryInput holds the parameters for creating a sub-category.
type CreateSubCategoryInput struct {
	Name       string
	Slug       string
	CategoryID string
}

// UpdateSubCategoryInput holds the parameters for updating a sub-category.
type UpdateSubCategoryInput struct {
	Name       *string
	Slug       *string
	CategoryID *string
}

// CreateSubCategory creates a new sub-category under an existing category.
func (s *SubCategoryService) CreateSubCategory(ctx context.Context, input *CreateSubCategoryInput) (*domain.SubCategory, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("sub-category name is required")
	}
	if input.CategoryID == "" {
		return nil, apperrors.InvalidInput("categoryId is required")
	}

	subSlug := input.Slug
	if subSlug == "" {
		subSlug = slug.Generate(input.Name)
	}
	if subSlug == "" {
		return nil, apperrors.InvalidInput("sub-category name must contain at least one letter or digit")
	}

	now := time.Now().UTC()
	sub := &domain.SubCategory{
		ID:         uuid.New().String(),
		Name:       input.Name,
		Slug:       subSlug,
		CategoryID: input.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create sub-category: %w", err)
	}

	s.logger.InfoContext(ctx, "sub-category created",
		slog.String("sub_category_id", sub.ID),
		slog.String("category_id", sub.CategoryID),
		slog.String("slug", sub.Slug),
	)

	return sub, nil
}

// GetSubCategory retrieves a sub-category by its ID, with its parent category.
func (s *SubCategoryService) GetSubCategory(ctx context.Context, id string) (*domain.SubCategory, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sub-category by id: %w", err)
	}
	return sub, nil
}

// GetSubCategoryBySlug retrieves a sub-category by its slug, with its parent
// category.
func (s *SubCategoryService) GetSubCategoryBySlug(ctx context.Context, subSlug string) (*domain.SubCategory, error) {
	sub, err := s.repo.GetBySlug(ctx, subSlug)
	if err != nil {
		return nil, fmt.Errorf("get sub-category by slug: %w", err)
	}
	return sub, nil
}

// ListSubCategories returns all sub-categories.
func (s *SubCategoryService) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sub-categories: %w", err)
	}
	return subs, nil
}

// ListSubCategoriesByCategory returns the sub-categories of one category.
func (s *SubCategoryService) ListSubCategoriesByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	subs, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list sub-categories by category: %w", err)
	}
	return subs, nil
}

// UpdateSubCategory applies partial updates to an existing sub-category. A
// name change regenerates the slug unless an explicit slug is also given.
func (s *SubCategoryService) UpdateSubCategory(ctx context.Context, id string, input *UpdateSubCategoryInput) (*domain.SubCategory, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sub-category for update: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("sub-category name must not be empty")
		}
		sub.Name = *input.Name
		sub.Slug = slug.Generate(*input.Name)
	}

	if input.Slug != nil {
		if *input.Slug == "" {
			return nil, apperrors.InvalidInput("sub-category slug must not be empty")
		}
		sub.Slug = *input.Slug
	}

	if input.CategoryID != nil {
		if *input.CategoryID == "" {
			return nil, apperrors.InvalidInput("categoryId must not be empty")
		}
		sub.CategoryID = *input.CategoryID
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("update sub-category: %w", err)
	}

	s.logger.InfoContext(ctx, "sub-category updated",
		slog.String("sub_category_id", sub.ID),
		slog.String("slug", sub.Slug),
	)

	return sub, nil
}

// DeleteSubCategory removes a sub-category by its ID.
func (s *SubCategoryService) DeleteSubCategory(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete sub-category: %w", err)
	}

	s.logger.InfoContext(ctx, "sub-category deleted",
		slog.String("sub_category_id", id),
	)

	return nil
}
