package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	pkgkafka "github.com/OishiSharmeen04/Pet-Shop/pkg/kafka"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeOrder   = "order"
	AggregateTypeUser    = "user"
)

// Source identifier for events originating from this service.
const Source = "petshop-api"

// ProductData is the payload for product.created and product.updated events.
type ProductData struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Stock         int      `json:"stock"`
	SKU           string   `json:"sku"`
	CategoryID    string   `json:"categoryId"`
	SubCategoryID *string  `json:"subCategoryId,omitempty"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID string `json:"id"`
}

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	ID        string           `json:"id"`
	UserID    *string          `json:"userId,omitempty"`
	Status    string           `json:"status"`
	Total     float64          `json:"total"`
	ItemCount int              `json:"itemCount"`
	Items     []OrderItemData  `json:"items"`
}

// OrderItemData is one line of an order.created payload.
type OrderItemData struct {
	VariantID string  `json:"variantId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderStatusChangedData is the payload for an order.status-changed event.
type OrderStatusChangedData struct {
	ID         string `json:"id"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
}

// UserCreatedData is the payload for a user.created event. It never carries
// the password hash.
type UserCreatedData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Producer publishes domain events to Kafka. Publish failures are reported to
// the caller, who logs and moves on; an event is never worth failing a
// request over.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func (p *Producer) publish(ctx context.Context, domainName, action, aggregateID, aggregateType string, data any) error {
	topic := pkgkafka.Topic(domainName, action)

	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, "product", "created", product.ID, AggregateTypeProduct, productData(product))
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, "product", "updated", product.ID, AggregateTypeProduct, productData(product))
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, "product", "deleted", id, AggregateTypeProduct, ProductDeletedData{ID: id})
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	items := make([]OrderItemData, len(order.Items))
	for i, it := range order.Items {
		items[i] = OrderItemData{VariantID: it.VariantID, Quantity: it.Quantity, Price: it.Price}
	}

	data := OrderCreatedData{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total,
		ItemCount: len(order.Items),
		Items:     items,
	}
	return p.publish(ctx, "order", "created", order.ID, AggregateTypeOrder, data)
}

// PublishOrderStatusChanged publishes an order.status-changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, id, from, to string) error {
	data := OrderStatusChangedData{ID: id, FromStatus: from, ToStatus: to}
	return p.publish(ctx, "order", "status-changed", id, AggregateTypeOrder, data)
}

// PublishUserCreated publishes a user.created event.
func (p *Producer) PublishUserCreated(ctx context.Context, user *domain.User) error {
	data := UserCreatedData{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}
	return p.publish(ctx, "user", "created", user.ID, AggregateTypeUser, data)
}

func productData(product *domain.Product) ProductData {
	return ProductData{
		ID:            product.ID,
		Name:          product.Name,
		Slug:          product.Slug,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Stock:         product.Stock,
		SKU:           product.SKU,
		CategoryID:    product.CategoryID,
		SubCategoryID: product.SubCategoryID,
	}
}
