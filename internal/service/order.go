package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	"github.com/OishiSharmeen04/Pet-Shop/internal/event"
	"github.com/OishiSharmeen04/Pet-Shop/internal/repository"
	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/pagination"
)

// OrderService implements the business logic for order operations. Order
// totals are always recomputed server side from the submitted item lines;
// a client-supplied total is ignored.
type OrderService struct {
	repo     repository.OrderRepository
	variants repository.VariantRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, variants repository.VariantRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		variants: variants,
		producer: producer,
		logger:   logger,
	}
}

// CreateOrderItemInput is one requested line of a new order. The unit price
// is taken from the submitted line and snapshotted as-is; it is not re-derived
// from the current variant price.
type CreateOrderItemInput struct {
	VariantID string
	Quantity  int
	Price     float64
}

// CreateOrderInput holds the parameters for creating an order.
type CreateOrderInput struct {
	UserID *string
	Items  []CreateOrderItemInput
}

// CreateOrder creates an order in PENDING state. Each item's price is
// snapshotted from the submitted line, and the total is the sum of price
// times quantity across items.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.VariantID == "" {
			return nil, apperrors.InvalidInput("variantId is required for every item")
		}
		if in.Quantity < 1 {
			return nil, apperrors.InvalidInput("item quantity must be at least 1")
		}
		if in.Price < 0 {
			return nil, apperrors.InvalidInput("item price must not be negative")
		}

		variant, err := s.variants.GetByID(ctx, in.VariantID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.InvalidInput(fmt.Sprintf("variant %s does not exist", in.VariantID))
			}
			return nil, fmt.Errorf("look up variant %s: %w", in.VariantID, err)
		}

		if variant.Inventory != nil && variant.Inventory.StockQuantity < in.Quantity {
			return nil, apperrors.InvalidInput(fmt.Sprintf("insufficient stock for variant %s", in.VariantID))
		}

		items = append(items, domain.OrderItem{
			ID:        uuid.New().String(),
			VariantID: variant.ID,
			Quantity:  in.Quantity,
			Price:     in.Price,
		})
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Status:    domain.OrderStatusPending,
		Total:     domain.ItemsTotal(items),
		CreatedAt: now,
		UpdatedAt: now,
		Items:     items,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.Items)),
		slog.Float64("total", order.Total),
	)

	return order, nil
}

// GetOrder retrieves an order by its ID with all items.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

// ListOrders returns a filtered page of orders with pagination metadata.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, *pagination.Meta, error) {
	if filter.Status != nil {
		status := strings.ToUpper(*filter.Status)
		if !domain.IsValidOrderStatus(status) {
			return nil, nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q, must be one of: %s",
				*filter.Status, strings.Join(domain.ValidOrderStatuses(), ", ")))
		}
		filter.Status = &status
	}

	params := pagination.Params{Page: filter.Page, Limit: filter.Limit}.Normalize()
	filter.Page = params.Page
	filter.Limit = params.Limit

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("list orders: %w", err)
	}

	meta := pagination.NewMeta(params, total)
	return orders, &meta, nil
}

// ListOrdersByUser returns all orders of one user, newest first.
func (s *OrderService) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status, rejecting transitions the
// order lifecycle does not allow.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	status = strings.ToUpper(status)
	if !domain.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q, must be one of: %s",
			status, strings.Join(domain.ValidOrderStatuses(), ", ")))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for status update: %w", err)
	}

	if !domain.CanTransitionTo(order.Status, status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot transition order from %s to %s", order.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	from := order.Status
	order.Status = status
	order.UpdatedAt = time.Now().UTC()

	if err := s.producer.PublishOrderStatusChanged(ctx, id, from, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.status-changed event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("from", from),
		slog.String("to", status),
	)

	return order, nil
}
