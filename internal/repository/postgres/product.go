package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	"github.com/OishiSharmeen04/Pet-Shop/internal/repository"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/database"
	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
)

// productColumns is the column list scanned into domain.Product, with the
// joined category and sub-category names. Keep in sync with scanJoinedProduct.
const productColumns = `
	p.id, p.name, p.slug, p.description, p.price, p.discount_price, p.stock,
	p.sku, p.category_id, p.sub_category_id, p.created_at, p.updated_at,
	c.name, c.slug, s.name, s.slug`

const productJoins = `
	FROM products p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN sub_categories s ON s.id = p.sub_category_id`

// ProductRepository implements product persistence operations using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, slug, description, price, discount_price, stock, sku, category_id, sub_category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, p.DiscountPrice,
		p.Stock, p.SKU, p.CategoryID, p.SubCategoryID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug or sku", p.Slug)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("product", "category")
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID with category and sub-category.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.id = $1`, productColumns, productJoins)
	return r.scanProduct(ctx, query, id)
}

// GetBySlug retrieves a product by its slug with category and sub-category.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE p.slug = $1`, productColumns, productJoins)
	return r.scanProduct(ctx, query, slug)
}

// List returns products matching the given filter with the total count. The
// count is computed by count(*) OVER() in the same query as the data, so both
// always share one predicate.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf(
			"(p.name ILIKE $%d OR p.description ILIKE $%d OR p.sku ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}

	if filter.SubCategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("p.sub_category_id = $%d", argIndex))
		args = append(args, *filter.SubCategoryID)
		argIndex++
	}

	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price >= $%d", argIndex))
		args = append(args, *filter.MinPrice)
		argIndex++
	}

	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price <= $%d", argIndex))
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	if filter.InStock != nil && *filter.InStock {
		conditions = append(conditions, "p.stock > 0")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Sort column and direction come from a whitelist, never from user input.
	orderBy := fmt.Sprintf("ORDER BY p.%s %s",
		domain.SortColumn(filter.SortBy), domain.SortDirection(filter.SortOrder))

	query := fmt.Sprintf(`
		SELECT %s, count(*) OVER() AS total_count
		%s
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		productColumns, productJoins, whereClause, orderBy, argIndex, argIndex+1,
	)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		products   = []domain.Product{}
		totalCount int
	)

	for rows.Next() {
		p, err := scanJoinedProduct(rows, &totalCount)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, totalCount, nil
}

// ListDiscounted returns products with a discount price set, newest first.
func (r *ProductRepository) ListDiscounted(ctx context.Context, limit int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE p.discount_price IS NOT NULL
		ORDER BY p.created_at DESC
		LIMIT $1`, productColumns, productJoins)

	return r.listPlain(ctx, query, limit)
}

// ListLowStock returns products with stock at or below the threshold,
// least stocked first.
func (r *ProductRepository) ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE p.stock <= $1
		ORDER BY p.stock ASC`, productColumns, productJoins)

	return r.listPlain(ctx, query, threshold)
}

// Stats computes catalog aggregates in one query.
func (r *ProductRepository) Stats(ctx context.Context) (*domain.ProductStats, error) {
	query := `
		SELECT count(*),
		       COALESCE(sum(price), 0),
		       COALESCE(avg(price), 0),
		       count(*) FILTER (WHERE stock = 0)
		FROM products`

	var s domain.ProductStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalProducts, &s.TotalValue, &s.AvgPrice, &s.OutOfStock,
	)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}

	return &s, nil
}

// Update modifies an existing product in the database.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name = $1, slug = $2, description = $3, price = $4, discount_price = $5,
		    stock = $6, sku = $7, category_id = $8, sub_category_id = $9, updated_at = $10
		WHERE id = $11`

	ct, err := r.pool.Exec(ctx, query,
		p.Name, p.Slug, p.Description, p.Price, p.DiscountPrice,
		p.Stock, p.SKU, p.CategoryID, p.SubCategoryID, p.UpdatedAt, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("product", "slug or sku", p.Slug)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("product", "category")
		}
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a product from the database by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("product", "dependent record")
		}
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

func (r *ProductRepository) listPlain(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanJoinedProduct(rows, nil)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

// scanProduct executes a query expected to return one joined product row.
func (r *ProductRepository) scanProduct(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var (
		p                  domain.Product
		catName, catSlug   string
		subName, subSlug   *string
	)

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.DiscountPrice,
		&p.Stock, &p.SKU, &p.CategoryID, &p.SubCategoryID, &p.CreatedAt, &p.UpdatedAt,
		&catName, &catSlug, &subName, &subSlug,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	attachRelations(&p, catName, catSlug, subName, subSlug)
	return &p, nil
}

// scanJoinedProduct scans one row of the joined product column list. When
// total is non-nil the row is expected to end with a count(*) OVER() column.
func scanJoinedProduct(rows pgx.Rows, total *int) (*domain.Product, error) {
	var (
		p                  domain.Product
		catName, catSlug   string
		subName, subSlug   *string
	)

	dest := []any{
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.DiscountPrice,
		&p.Stock, &p.SKU, &p.CategoryID, &p.SubCategoryID, &p.CreatedAt, &p.UpdatedAt,
		&catName, &catSlug, &subName, &subSlug,
	}
	if total != nil {
		dest = append(dest, total)
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan product row: %w", err)
	}

	attachRelations(&p, catName, catSlug, subName, subSlug)
	return &p, nil
}

func attachRelations(p *domain.Product, catName, catSlug string, subName, subSlug *string) {
	p.Category = &domain.Category{ID: p.CategoryID, Name: catName, Slug: catSlug}
	if p.SubCategoryID != nil && subName != nil && subSlug != nil {
		p.SubCategory = &domain.SubCategory{
			ID:         *p.SubCategoryID,
			Name:       *subName,
			Slug:       *subSlug,
			CategoryID: p.CategoryID,
		}
	}
}
