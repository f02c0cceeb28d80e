package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OishiSharmeen04/Pet-Shop/internal/service"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/httputil"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/validator"
)

// VariantHandler handles HTTP requests for product variant endpoints.
type VariantHandler struct {
	service *service.VariantService
	logger  *slog.Logger
}

// NewVariantHandler creates a new variant HTTP handler.
func NewVariantHandler(svc *service.VariantService, logger *slog.Logger) *VariantHandler {
	return &VariantHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateVariantRequest is the JSON request body for creating a variant under
// a product.
type CreateVariantRequest struct {
	SKU         string  `json:"sku" validate:"required,min=1,max=100"`
	VariantName string  `json:"variantName" validate:"required,min=1,max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsDefault   bool    `json:"isDefault"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// UpdateVariantRequest is the JSON request body for updating a variant.
type UpdateVariantRequest struct {
	SKU         *string  `json:"sku" validate:"omitempty,min=1,max=100"`
	VariantName *string  `json:"variantName" validate:"omitempty,min=1,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	IsDefault   *bool    `json:"isDefault"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

// ListProductVariants handles GET /api/v1/products/{id}/variants.
func (h *VariantHandler) ListProductVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := h.service.ListVariantsByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, variants)
}

// CreateProductVariant handles POST /api/v1/products/{id}/variants.
func (h *VariantHandler) CreateProductVariant(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateVariantRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	variant, err := h.service.CreateVariant(r.Context(), &service.CreateVariantInput{
		ProductID:   chi.URLParam(r, "id"),
		SKU:         req.SKU,
		VariantName: req.VariantName,
		Price:       req.Price,
		IsDefault:   req.IsDefault,
		Stock:       req.Stock,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, variant)
}

// GetVariant handles GET /api/v1/variants/{id}.
func (h *VariantHandler) GetVariant(w http.ResponseWriter, r *http.Request) {
	variant, err := h.service.GetVariant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, variant)
}

// UpdateVariant handles PUT /api/v1/variants/{id}.
func (h *VariantHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateVariantRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	variant, err := h.service.UpdateVariant(r.Context(), chi.URLParam(r, "id"), &service.UpdateVariantInput{
		SKU:         req.SKU,
		VariantName: req.VariantName,
		Price:       req.Price,
		IsDefault:   req.IsDefault,
		Stock:       req.Stock,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, variant)
}

// DeleteVariant handles DELETE /api/v1/variants/{id}.
func (h *VariantHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteVariant(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}
