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

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateProductRequest is the JSON request body for creating a product.
type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=255"`
	Slug          string   `json:"slug" validate:"omitempty,max=255"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"gte=0"`
	DiscountPrice *float64 `json:"discountPrice" validate:"omitempty,gte=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	SKU           string   `json:"sku" validate:"required,min=1,max=100"`
	CategoryID    string   `json:"categoryId" validate:"required"`
	SubCategoryID *string  `json:"subCategoryId"`
}

// UpdateProductRequest is the JSON request body for updating a product.
type UpdateProductRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Slug          *string  `json:"slug" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	DiscountPrice *float64 `json:"discountPrice" validate:"omitempty,gte=0"`
	Stock         *int     `json:"stock" validate:"omitempty,gte=0"`
	SKU           *string  `json:"sku" validate:"omitempty,min=1,max=100"`
	CategoryID    *string  `json:"categoryId" validate:"omitempty,min=1"`
	SubCategoryID *string  `json:"subCategoryId"`
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products. Every filter is optional; a
// malformed value is rejected before any query runs.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, ok := productFilterFromQuery(w, r)
	if !ok {
		return
	}

	products, meta, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WritePaginated(w, products, *meta)
}

// productFilterFromQuery parses the product list query parameters, writing a
// 400 response and returning false on the first malformed value.
func productFilterFromQuery(w http.ResponseWriter, r *http.Request) (repository.ProductFilter, bool) {
	var filter repository.ProductFilter

	page, ok := httputil.QueryInt(w, r, "page", 1)
	if !ok {
		return filter, false
	}
	limit, ok := httputil.QueryInt(w, r, "limit", 0)
	if !ok {
		return filter, false
	}
	filter.Page = page
	filter.Limit = limit

	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}
	if v := r.URL.Query().Get("categoryId"); v != "" {
		filter.CategoryID = &v
	}
	if v := r.URL.Query().Get("subCategoryId"); v != "" {
		filter.SubCategoryID = &v
	}

	minPrice, ok := httputil.QueryFloat(w, r, "minPrice")
	if !ok {
		return filter, false
	}
	maxPrice, ok := httputil.QueryFloat(w, r, "maxPrice")
	if !ok {
		return filter, false
	}
	filter.MinPrice = minPrice
	filter.MaxPrice = maxPrice

	if v := r.URL.Query().Get("inStock"); v != "" {
		switch v {
		case "true":
			t := true
			filter.InStock = &t
		case "false":
			// Only a true flag narrows the listing; false means unfiltered.
		default:
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{Error: "invalid inStock: " + v})
			return filter, false
		}
	}

	// Unknown sort values fall back to the default ordering.
	filter.SortBy = r.URL.Query().Get("sortBy")
	filter.SortOrder = r.URL.Query().Get("sortOrder")

	return filter, true
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, product)
}

// GetProductBySlug handles GET /api/v1/products/slug/{slug}.
func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, product)
}

// ListDiscounted handles GET /api/v1/products/discounted.
func (h *ProductHandler) ListDiscounted(w http.ResponseWriter, r *http.Request) {
	limit, ok := httputil.QueryInt(w, r, "limit", 0)
	if !ok {
		return
	}

	products, err := h.service.ListDiscountedProducts(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, products)
}

// ListLowStock handles GET /api/v1/products/low-stock.
func (h *ProductHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	threshold, ok := httputil.QueryInt(w, r, "threshold", 0)
	if !ok {
		return
	}

	products, err := h.service.ListLowStockProducts(r.Context(), threshold)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, products)
}

// GetStats handles GET /api/v1/products/stats.
func (h *ProductHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetProductStats(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, stats)
}

// CreateProduct handles POST /api/v1/products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateProductInput{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		SKU:           req.SKU,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/v1/products/{id}.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.UpdateProductInput{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		SKU:           req.SKU,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}
