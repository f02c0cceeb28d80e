package postgres

import (
	"context"
	"encoding/json"
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

// orderItemsAgg aggregates an order's items, each with its variant and the
// variant's product, into one jsonb column. Keys match the domain JSON tags
// so the blob unmarshals straight into []domain.OrderItem.
const orderItemsAgg = `
	COALESCE(jsonb_agg(jsonb_build_object(
		'id', oi.id,
		'orderId', oi.order_id,
		'variantId', oi.variant_id,
		'quantity', oi.quantity,
		'price', oi.price,
		'variant', jsonb_build_object(
			'id', v.id,
			'productId', v.product_id,
			'sku', v.sku,
			'variantName', v.variant_name,
			'price', v.price,
			'isDefault', v.is_default,
			'product', jsonb_build_object(
				'id', p.id,
				'name', p.name,
				'slug', p.slug,
				'sku', p.sku,
				'price', p.price,
				'categoryId', p.category_id
			)
		)
	)) FILTER (WHERE oi.id IS NOT NULL), '[]')`

const orderJoins = `
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN product_variants v ON v.id = oi.variant_id
	LEFT JOIN products p ON p.id = v.product_id`

// OrderRepository implements order persistence operations using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order and all of its items in one transaction, so a
// failing item insert leaves no partial order behind.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, status, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.UserID, o.Status, o.Total, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ForeignKey("order", "user")
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, variant_id, quantity, price)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, it.OrderID, it.VariantID, it.Quantity, it.Price,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.ForeignKey("order item", "variant")
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}

	return nil
}

// GetByID retrieves an order with its items, variants, and products.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT o.id, o.user_id, o.status, o.total, o.created_at, o.updated_at, %s AS items
		%s
		WHERE o.id = $1
		GROUP BY o.id`, orderItemsAgg, orderJoins)

	var (
		o         domain.Order
		itemsJSON []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt, &itemsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	return &o, nil
}

// List returns orders matching the filter with the total count, newest first.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("o.user_id = $%d", argIndex))
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT o.id, o.user_id, o.status, o.total, o.created_at, o.updated_at, %s AS items,
		       count(*) OVER() AS total_count
		%s
		%s
		GROUP BY o.id
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d`,
		orderItemsAgg, orderJoins, whereClause, argIndex, argIndex+1,
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
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var (
		orders     = []domain.Order{}
		totalCount int
	)
	for rows.Next() {
		var (
			o         domain.Order
			itemsJSON []byte
		)
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt,
			&itemsJSON, &totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, 0, fmt.Errorf("unmarshal order items: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, totalCount, nil
}

// ListByUser returns all orders of one user, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	query := fmt.Sprintf(`
		SELECT o.id, o.user_id, o.status, o.total, o.created_at, o.updated_at, %s AS items
		%s
		WHERE o.user_id = $1
		GROUP BY o.id
		ORDER BY o.created_at DESC`, orderItemsAgg, orderJoins)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var (
			o         domain.Order
			itemsJSON []byte
		)
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt, &itemsJSON,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

// UpdateStatus sets the order's status. Transition legality is validated by
// the service before this is called.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}
