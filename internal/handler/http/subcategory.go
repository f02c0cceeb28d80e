package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OishiSharmeen04/Pet-Shop/internal/service"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/httputil"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/validator"
)

// SubCategoryHandler handles HTTP requests for sub-category endpoints.
type SubCategoryHandler struct {
	service  *service.SubCategoryService
	products *service.ProductService
	logger   *slog.Logger
}

// NewSubCategoryHandler creates a new sub-category HTTP handler.
func NewSubCategoryHandler(svc *service.SubCategoryService, products *service.ProductService, logger *slog.Logger) *SubCategoryHandler {
	return &SubCategoryHandler{
		service:  svc,
		products: products,
		logger:   logger,
	}
}

// CreateSubCategoryRequest is the JSON request body for creating a sub-category.
type CreateSubCategoryRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	Slug       string `json:"slug" validate:"omitempty,max=255"`
	CategoryID string `json:"categoryId" validate:"required"`
}

// UpdateSubCategoryRequest is the JSON request body for updating a sub-category.
type UpdateSubCategoryRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=255"`
	Slug       *string `json:"slug" validate:"omitempty,min=1,max=255"`
	CategoryID *string `json:"categoryId" validate:"omitempty,min=1"`
}

// ListSubCategories handles GET /api/v1/sub-categories.
func (h *SubCategoryHandler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.ListSubCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, subs)
}

// GetSubCategory handles GET /api/v1/sub-categories/{id}.
func (h *SubCategoryHandler) GetSubCategory(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.GetSubCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, sub)
}

// GetSubCategoryBySlug handles GET /api/v1/sub-categories/slug/{slug}.
func (h *SubCategoryHandler) GetSubCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.GetSubCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, sub)
}

// ListSubCategoryProducts handles GET /api/v1/sub-categories/{id}/products
// with the same pagination and filters as the main product list, scoped to a
// sub-category.
func (h *SubCategoryHandler) ListSubCategoryProducts(w http.ResponseWriter, r *http.Request) {
	filter, ok := productFilterFromQuery(w, r)
	if !ok {
		return
	}
	subCategoryID := chi.URLParam(r, "id")
	filter.SubCategoryID = &subCategoryID

	products, meta, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WritePaginated(w, products, *meta)
}

// CreateSubCategory handles POST /api/v1/sub-categories.
func (h *SubCategoryHandler) CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateSubCategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sub, err := h.service.CreateSubCategory(r.Context(), &service.CreateSubCategoryInput{
		Name:       req.Name,
		Slug:       req.Slug,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, sub)
}

// UpdateSubCategory handles PUT /api/v1/sub-categories/{id}.
func (h *SubCategoryHandler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateSubCategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sub, err := h.service.UpdateSubCategory(r.Context(), chi.URLParam(r, "id"), &service.UpdateSubCategoryInput{
		Name:       req.Name,
		Slug:       req.Slug,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, sub)
}

// DeleteSubCategory handles DELETE /api/v1/sub-categories/{id}.
func (h *SubCategoryHandler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteSubCategory(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}
