package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OishiSharmeen04/Pet-Shop/internal/repository"
	"github.com/OishiSharmeen04/Pet-Shop/internal/service"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/httputil"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/validator"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// OrderItemRequest is one requested line of a new order. The unit price is
// part of the submitted line and snapshotted onto the order item.
type OrderItemRequest struct {
	VariantID string  `json:"variantId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Price     float64 `json:"price" validate:"gte=0"`
}

// CreateOrderRequest is the JSON request body for creating an order. The
// total is never taken from the client; it is recomputed from the items.
type CreateOrderRequest struct {
	UserID *string            `json:"userId"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest is the JSON request body for an order status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListOrders handles GET /api/v1/orders.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var filter repository.OrderFilter

	page, ok := httputil.QueryInt(w, r, "page", 1)
	if !ok {
		return
	}
	limit, ok := httputil.QueryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	filter.Page = page
	filter.Limit = limit

	if v := r.URL.Query().Get("userId"); v != "" {
		filter.UserID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	orders, meta, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WritePaginated(w, orders, *meta)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, order)
}

// CreateOrder handles POST /api/v1/orders.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	items := make([]service.CreateOrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = service.CreateOrderItemInput{VariantID: it.VariantID, Quantity: it.Quantity, Price: it.Price}
	}

	order, err := h.service.CreateOrder(r.Context(), &service.CreateOrderInput{
		UserID: req.UserID,
		Items:  items,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, order)
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{id}/status.
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateOrderStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, order)
}
