package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OishiSharmeen04/Pet-Shop/internal/service"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/httputil"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/validator"
)

// CategoryHandler handles HTTP requests for category endpoints.
type CategoryHandler struct {
	service       *service.CategoryService
	subCategories *service.SubCategoryService
	products      *service.ProductService
	logger        *slog.Logger
}

// NewCategoryHandler creates a new category HTTP handler.
func NewCategoryHandler(svc *service.CategoryService, subs *service.SubCategoryService, products *service.ProductService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:       svc,
		subCategories: subs,
		products:      products,
		logger:        logger,
	}
}

// --- Request DTOs ---

// CreateCategoryRequest is the JSON request body for creating a category.
type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Slug     string  `json:"slug" validate:"omitempty,max=255"`
	Type     *string `json:"type" validate:"omitempty,max=100"`
	ParentID *string `json:"parentId"`
}

// UpdateCategoryRequest is the JSON request body for updating a category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Slug     *string `json:"slug" validate:"omitempty,min=1,max=255"`
	Type     *string `json:"type" validate:"omitempty,max=100"`
	ParentID *string `json:"parentId"`
}

// --- Handlers ---

// ListCategories handles GET /api/v1/categories.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, categories)
}

// GetCategory handles GET /api/v1/categories/{id}.
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, category)
}

// GetCategoryBySlug handles GET /api/v1/categories/slug/{slug}.
func (h *CategoryHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, category)
}

// ListCategorySubCategories handles GET /api/v1/categories/{id}/sub-categories.
func (h *CategoryHandler) ListCategorySubCategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subCategories.ListSubCategoriesByCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, subs)
}

// ListCategoryProducts handles GET /api/v1/categories/{id}/products with the
// same pagination and filters as the main product list, scoped to a category.
func (h *CategoryHandler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	filter, ok := productFilterFromQuery(w, r)
	if !ok {
		return
	}
	categoryID := chi.URLParam(r, "id")
	filter.CategoryID = &categoryID

	products, meta, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WritePaginated(w, products, *meta)
}

// CreateCategory handles POST /api/v1/categories.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateCategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &service.CreateCategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		Type:     req.Type,
		ParentID: req.ParentID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /api/v1/categories/{id}.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateCategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), &service.UpdateCategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		Type:     req.Type,
		ParentID: req.ParentID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/v1/categories/{id}.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}
