package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OishiSharmeen04/Pet-Shop/internal/domain"
	"github.com/OishiSharmeen04/Pet-Shop/internal/event"
	"github.com/OishiSharmeen04/Pet-Shop/internal/repository"
	"github.com/OishiSharmeen04/Pet-Shop/internal/service"
	apperrors "github.com/OishiSharmeen04/Pet-Shop/pkg/errors"
	pkgkafka "github.com/OishiSharmeen04/Pet-Shop/pkg/kafka"
)

// =============================================================================
// Mock ProductRepository
// =============================================================================

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepo) ListDiscounted(ctx context.Context, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) ListLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) Stats(ctx context.Context) (*domain.ProductStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductStats), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Test helpers
// =============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func productTestHandler(repo *mockProductRepo) *ProductHandler {
	svc := service.NewProductService(repo, testEventProducer(), testLogger())
	return NewProductHandler(svc, testLogger())
}

func productRouter(handler *ProductHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/v1/products", handler.ListProducts)
	r.Get("/api/v1/products/stats", handler.GetStats)
	r.Get("/api/v1/products/discounted", handler.ListDiscounted)
	r.Get("/api/v1/products/slug/{slug}", handler.GetProductBySlug)
	r.Get("/api/v1/products/{id}", handler.GetProduct)
	r.Post("/api/v1/products", handler.CreateProduct)
	r.Delete("/api/v1/products/{id}", handler.DeleteProduct)
	return r
}

// envelope mirrors the response JSON for assertions.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
	Error string `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// =============================================================================
// Tests
// =============================================================================

func TestListProducts_EnvelopeAndPagination(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	repo.On("List", mock.Anything, mock.Anything).
		Return([]domain.Product{{ID: "prod-1", Name: "Kibble", Slug: "kibble"}}, 11, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=1&limit=10", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 11, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Pages)
	repo.AssertExpectations(t)
}

func TestListProducts_MalformedPageRejectedBeforeQuery(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=banana", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "invalid page")
	repo.AssertNotCalled(t, "List")
}

func TestListProducts_MalformedMinPriceRejected(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?minPrice=cheap", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error, "invalid minPrice")
	repo.AssertNotCalled(t, "List")
}

func TestListProducts_InvalidInStockRejected(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?inStock=maybe", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, env.Error, "invalid inStock")
	repo.AssertNotCalled(t, "List")
}

func TestListProducts_InStockFalseIsUnfiltered(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	// inStock=false means "don't filter by stock", not "only out of stock".
	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.InStock == nil
	})).Return([]domain.Product{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?inStock=false", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestListProducts_FiltersForwarded(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	repo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.Search != nil && *f.Search == "kibble" &&
			f.MinPrice != nil && *f.MinPrice == 5 &&
			f.MaxPrice != nil && *f.MaxPrice == 30 &&
			f.InStock != nil && *f.InStock &&
			f.SortBy == "price" && f.SortOrder == "asc"
	})).Return([]domain.Product{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?search=kibble&minPrice=5&maxPrice=30&inStock=true&sortBy=price&sortOrder=asc", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	repo.On("GetByID", mock.Anything, "missing-id").Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/missing-id", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestGetProductBySlug_Success(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	repo.On("GetBySlug", mock.Anything, "puppy-kibble").
		Return(&domain.Product{ID: "prod-1", Name: "Puppy Kibble", Slug: "puppy-kibble"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/slug/puppy-kibble", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	var product domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, "puppy-kibble", product.Slug)
	repo.AssertExpectations(t)
}

func TestCreateProduct_Success(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Slug == "puppy-kibble-2kg"
	})).Return(nil)

	body := bytes.NewBufferString(`{
		"name": "Puppy Kibble 2kg",
		"price": 24.99,
		"stock": 40,
		"sku": "KIB-PUP-2KG",
		"categoryId": "cat-1"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	repo.AssertExpectations(t)
}

func TestCreateProduct_MissingFieldsRejected(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	body := bytes.NewBufferString(`{"description": "no name, no sku"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateProduct_DuplicateIsBadRequest(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	repo.On("Create", mock.Anything, mock.Anything).
		Return(apperrors.AlreadyExists("product", "slug or sku", "puppy-kibble-2kg"))

	body := bytes.NewBufferString(`{
		"name": "Puppy Kibble 2kg",
		"price": 24.99,
		"sku": "KIB-PUP-2KG",
		"categoryId": "cat-1"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", body)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "already exists")
	repo.AssertExpectations(t)
}

func TestDeleteProduct_MissingIs404(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	repo.On("Delete", mock.Anything, "missing-id").Return(apperrors.NotFound("product", "missing-id"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/missing-id", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestGetStats(t *testing.T) {
	repo := new(mockProductRepo)
	handler := productTestHandler(repo)

	repo.On("Stats", mock.Anything).Return(&domain.ProductStats{
		TotalProducts: 4, TotalValue: 100, AvgPrice: 25, OutOfStock: 1,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/stats", nil)
	rec := httptest.NewRecorder()
	productRouter(handler).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var stats domain.ProductStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 4, stats.TotalProducts)
	assert.Equal(t, 1, stats.OutOfStock)
	repo.AssertExpectations(t)
}
