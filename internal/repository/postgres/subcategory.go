package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/database"
	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
)

const subCategoryColumns = `id, name, slug, category_id, created_at, updated_at`

// SubCategoryRepository implements sub-category persistence operations using PostgreSQL.
type SubCategoryRepository struct {
	pool database.DBTX
}

// NewSubCategoryRepository creates a new PostgreSQL-backed sub-category repository.
func NewSubCategoryRepository(pool database.DBTX) *SubCategoryRepository {
	return &SubCategoryRepository{pool: pool}
}

// Create inserts a new sub-category into the database.
func (r *SubCategoryRepository) Create(ctx context.Context, s *domain.SubCategory) error {
	query := `
		INSERT INTO sub_categories (id, name, slug, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.Name, s.Slug, s.CategoryID, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("sub-category", "slug", s.Slug)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("sub-category", "category")
		}
		return fmt.Errorf("insert sub_category: %w", err)
	}

	return nil
}

// GetByID retrieves a sub-category by its ID, with its parent category.
func (r *SubCategoryRepository) GetByID(ctx context.Context, id string) (*domain.SubCategory, error) {
	return r.getOne(ctx, "s.id", id)
}

// GetBySlug retrieves a sub-category by its slug, with its parent category.
func (r *SubCategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.SubCategory, error) {
	return r.getOne(ctx, "s.slug", slug)
}

func (r *SubCategoryRepository) getOne(ctx context.Context, column, value string) (*domain.SubCategory, error) {
	query := fmt.Sprintf(`
		SELECT s.id, s.name, s.slug, s.category_id, s.created_at, s.updated_at,
		       c.id, c.name, c.slug, c.type, c.parent_id, c.created_at, c.updated_at
		FROM sub_categories s
		JOIN categories c ON c.id = s.category_id
		WHERE %s = $1`, column)

	var (
		s domain.SubCategory
		c domain.Category
	)
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&s.ID, &s.Name, &s.Slug, &s.CategoryID, &s.CreatedAt, &s.UpdatedAt,
		&c.ID, &c.Name, &c.Slug, &c.Type, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan sub_category: %w", err)
	}
	s.Category = &c

	return &s, nil
}

// List returns all sub-categories ordered by name.
func (r *SubCategoryRepository) List(ctx context.Context) ([]domain.SubCategory, error) {
	query := fmt.Sprintf(`SELECT %s FROM sub_categories ORDER BY name ASC`, subCategoryColumns)
	return r.list(ctx, query)
}

// ListByCategory returns the sub-categories of one category ordered by name.
func (r *SubCategoryRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	query := fmt.Sprintf(`SELECT %s FROM sub_categories WHERE category_id = $1 ORDER BY name ASC`, subCategoryColumns)
	return r.list(ctx, query, categoryID)
}

func (r *SubCategoryRepository) list(ctx context.Context, query string, args ...any) ([]domain.SubCategory, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sub_categories: %w", err)
	}
	defer rows.Close()

	subs := []domain.SubCategory{}
	for rows.Next() {
		var s domain.SubCategory
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.CategoryID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sub_category row: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sub_category rows: %w", err)
	}

	return subs, nil
}

// Update modifies an existing sub-category in the database.
func (r *SubCategoryRepository) Update(ctx context.Context, s *domain.SubCategory) error {
	s.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE sub_categories
		SET name = $1, slug = $2, category_id = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.pool.Exec(ctx, query, s.Name, s.Slug, s.CategoryID, s.UpdatedAt, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("sub-category", "slug", s.Slug)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("sub-category", "category")
		}
		return fmt.Errorf("update sub_category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("sub-category", s.ID)
	}

	return nil
}

// Delete removes a sub-category from the database by its ID.
func (r *SubCategoryRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("sub-category", "dependent record")
		}
		return fmt.Errorf("delete sub_category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("sub-category", id)
	}

	return nil
}
