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

const variantColumns = `
	v.id, v.product_id, v.sku, v.variant_name, v.price, v.is_default,
	v.created_at, v.updated_at, i.stock_quantity, i.updated_at`

// VariantRepository implements variant persistence operations using
// PostgreSQL. Variant and inventory rows are written together.
type VariantRepository struct {
	pool database.DBTX
}

// NewVariantRepository creates a new PostgreSQL-backed variant repository.
func NewVariantRepository(pool database.DBTX) *VariantRepository {
	return &VariantRepository{pool: pool}
}

// Create inserts a variant and its inventory row in one transaction.
func (r *VariantRepository) Create(ctx context.Context, v *domain.ProductVariant, stock int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin variant tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx, `
		INSERT INTO product_variants (id, product_id, sku, variant_name, price, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		v.ID, v.ProductID, v.SKU, v.VariantName, v.Price, v.IsDefault, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("variant", "sku", v.SKU)
		}
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("variant", "product")
		}
		return fmt.Errorf("insert variant: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO inventories (variant_id, stock_quantity, updated_at)
		VALUES ($1, $2, $3)`,
		v.ID, stock, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit variant tx: %w", err)
	}

	v.Inventory = &domain.Inventory{VariantID: v.ID, StockQuantity: stock, UpdatedAt: v.CreatedAt}
	return nil
}

// GetByID retrieves a variant with its inventory.
func (r *VariantRepository) GetByID(ctx context.Context, id string) (*domain.ProductVariant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM product_variants v
		LEFT JOIN inventories i ON i.variant_id = v.id
		WHERE v.id = $1`, variantColumns)

	var (
		v       domain.ProductVariant
		stock   *int
		stockAt *time.Time
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.VariantName, &v.Price, &v.IsDefault,
		&v.CreatedAt, &v.UpdatedAt, &stock, &stockAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan variant: %w", err)
	}

	attachInventory(&v, stock, stockAt)
	return &v, nil
}

// ListByProduct returns all variants of a product, default variant first.
func (r *VariantRepository) ListByProduct(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM product_variants v
		LEFT JOIN inventories i ON i.variant_id = v.id
		WHERE v.product_id = $1
		ORDER BY v.is_default DESC, v.created_at ASC`, variantColumns)

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	variants := []domain.ProductVariant{}
	for rows.Next() {
		var (
			v       domain.ProductVariant
			stock   *int
			stockAt *time.Time
		)
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.SKU, &v.VariantName, &v.Price, &v.IsDefault,
			&v.CreatedAt, &v.UpdatedAt, &stock, &stockAt,
		); err != nil {
			return nil, fmt.Errorf("scan variant row: %w", err)
		}
		attachInventory(&v, stock, stockAt)
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variant rows: %w", err)
	}

	return variants, nil
}

// Update modifies a variant, and its inventory when stock is non-nil, in one
// transaction.
func (r *VariantRepository) Update(ctx context.Context, v *domain.ProductVariant, stock *int) error {
	v.UpdatedAt = time.Now().UTC()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin variant tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	ct, err := tx.Exec(ctx, `
		UPDATE product_variants
		SET sku = $1, variant_name = $2, price = $3, is_default = $4, updated_at = $5
		WHERE id = $6`,
		v.SKU, v.VariantName, v.Price, v.IsDefault, v.UpdatedAt, v.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("variant", "sku", v.SKU)
		}
		return fmt.Errorf("update variant: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("variant", v.ID)
	}

	if stock != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO inventories (variant_id, stock_quantity, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (variant_id) DO UPDATE
			SET stock_quantity = EXCLUDED.stock_quantity, updated_at = EXCLUDED.updated_at`,
			v.ID, *stock, v.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert inventory: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit variant tx: %w", err)
	}

	return nil
}

// Delete removes a variant; its inventory row goes with it via ON DELETE CASCADE.
func (r *VariantRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("variant", "dependent record")
		}
		return fmt.Errorf("delete variant: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("variant", id)
	}

	return nil
}

func attachInventory(v *domain.ProductVariant, stock *int, updatedAt *time.Time) {
	if stock == nil {
		return
	}
	inv := &domain.Inventory{VariantID: v.ID, StockQuantity: *stock}
	if updatedAt != nil {
		inv.UpdatedAt = *updatedAt
	}
	v.Inventory = inv
}
