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

// categoryColumns is the standard SELECT column list for categories.
const categoryColumns = `id, name, slug, type, parent_id, created_at, updated_at`

// CategoryRepository implements category persistence operations using PostgreSQL.
type CategoryRepository struct {
	pool database.DBTX
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool database.DBTX) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category into the database.
func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, type, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Slug, c.Type, c.ParentID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "slug", c.Slug)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("category", "parent category")
		}
		return fmt.Errorf("insert category: %w", err)
	}

	return nil
}

// GetByID retrieves a category and its sub-categories by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.getOne(ctx, "id", id)
}

// GetBySlug retrieves a category and its sub-categories by slug.
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *CategoryRepository) getOne(ctx context.Context, column, value string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE %s = $1`, categoryColumns, column)

	var c domain.Category
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Type, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}

	subs, err := r.listSubCategories(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.SubCategories = subs

	return &c, nil
}

// List returns all categories with their sub-categories, ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`SELECT %s FROM categories ORDER BY name ASC`, categoryColumns))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	index := map[string]int{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Type, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	// Attach sub-categories in one pass rather than a query per category.
	subRows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, category_id, created_at, updated_at
		FROM sub_categories
		ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sub_categories: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var s domain.SubCategory
		if err := subRows.Scan(&s.ID, &s.Name, &s.Slug, &s.CategoryID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sub_category row: %w", err)
		}
		if i, ok := index[s.CategoryID]; ok {
			categories[i].SubCategories = append(categories[i].SubCategories, s)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sub_category rows: %w", err)
	}

	return categories, nil
}

// Update modifies an existing category in the database.
func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE categories
		SET name = $1, slug = $2, type = $3, parent_id = $4, updated_at = $5
		WHERE id = $6`

	ct, err := r.pool.Exec(ctx, query, c.Name, c.Slug, c.Type, c.ParentID, c.UpdatedAt, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("category", "slug", c.Slug)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("category", "parent category")
		}
		return fmt.Errorf("update category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("category", c.ID)
	}

	return nil
}

// Delete removes a category from the database by its ID.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("category", "dependent record")
		}
		return fmt.Errorf("delete category: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("category", id)
	}

	return nil
}

func (r *CategoryRepository) listSubCategories(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug, category_id, created_at, updated_at
		FROM sub_categories
		WHERE category_id = $1
		ORDER BY name ASC`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list sub_categories for category: %w", err)
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
