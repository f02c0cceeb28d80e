package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OishiSharmeen04/Pet-Shop/internal/service"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/health"
	"github.com/OishiSharmeen04/Pet-Shop/pkg/middleware"
)

// Services groups the application services the router exposes.
type Services struct {
	Categories    *service.CategoryService
	SubCategories *service.SubCategoryService
	Products      *service.ProductService
	Variants      *service.VariantService
	Users         *service.UserService
	Orders        *service.OrderService
}

// ContentTypeJSON sets the JSON content type on every response of a route group.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(svcs Services, healthHandler *health.Handler, serviceName string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware. Recovery sits inside CORS so panic responses still
	// carry CORS headers.
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Operational endpoints.
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	categoryHandler := NewCategoryHandler(svcs.Categories, svcs.SubCategories, svcs.Products, logger)
	subCategoryHandler := NewSubCategoryHandler(svcs.SubCategories, svcs.Products, logger)
	productHandler := NewProductHandler(svcs.Products, logger)
	variantHandler := NewVariantHandler(svcs.Variants, logger)
	userHandler := NewUserHandler(svcs.Users, svcs.Orders, logger)
	orderHandler := NewOrderHandler(svcs.Orders, logger)

	// Catalog reads are safe to cache briefly at the edge.
	publicCache := middleware.CacheControl(60)

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(publicCache).Get("/", categoryHandler.ListCategories)
		r.With(publicCache).Get("/slug/{slug}", categoryHandler.GetCategoryBySlug)
		r.With(publicCache).Get("/{id}", categoryHandler.GetCategory)
		r.With(publicCache).Get("/{id}/sub-categories", categoryHandler.ListCategorySubCategories)
		r.With(publicCache).Get("/{id}/products", categoryHandler.ListCategoryProducts)
		r.Post("/", categoryHandler.CreateCategory)
		r.Put("/{id}", categoryHandler.UpdateCategory)
		r.Patch("/{id}", categoryHandler.UpdateCategory)
		r.Delete("/{id}", categoryHandler.DeleteCategory)
	})

	r.Route("/api/v1/sub-categories", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(publicCache).Get("/", subCategoryHandler.ListSubCategories)
		r.With(publicCache).Get("/slug/{slug}", subCategoryHandler.GetSubCategoryBySlug)
		r.With(publicCache).Get("/{id}", subCategoryHandler.GetSubCategory)
		r.With(publicCache).Get("/{id}/products", subCategoryHandler.ListSubCategoryProducts)
		r.Post("/", subCategoryHandler.CreateSubCategory)
		r.Put("/{id}", subCategoryHandler.UpdateSubCategory)
		r.Patch("/{id}", subCategoryHandler.UpdateSubCategory)
		r.Delete("/{id}", subCategoryHandler.DeleteSubCategory)
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(publicCache).Get("/", productHandler.ListProducts)
		r.Get("/stats", productHandler.GetStats)
		r.With(publicCache).Get("/discounted", productHandler.ListDiscounted)
		r.Get("/low-stock", productHandler.ListLowStock)
		r.With(publicCache).Get("/slug/{slug}", productHandler.GetProductBySlug)
		r.With(publicCache).Get("/{id}", productHandler.GetProduct)
		r.With(publicCache).Get("/{id}/variants", variantHandler.ListProductVariants)
		r.Post("/", productHandler.CreateProduct)
		r.Post("/{id}/variants", variantHandler.CreateProductVariant)
		r.Put("/{id}", productHandler.UpdateProduct)
		r.Patch("/{id}", productHandler.UpdateProduct)
		r.Delete("/{id}", productHandler.DeleteProduct)
	})

	r.Route("/api/v1/variants", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.With(publicCache).Get("/{id}", variantHandler.GetVariant)
		r.Put("/{id}", variantHandler.UpdateVariant)
		r.Patch("/{id}", variantHandler.UpdateVariant)
		r.Delete("/{id}", variantHandler.DeleteVariant)
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", userHandler.ListUsers)
		r.Get("/email/{email}", userHandler.GetUserByEmail)
		r.Get("/{id}", userHandler.GetUser)
		r.Get("/{id}/orders", userHandler.ListUserOrders)
		r.Post("/", userHandler.CreateUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Patch("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", orderHandler.ListOrders)
		r.Get("/{id}", orderHandler.GetOrder)
		r.Post("/", orderHandler.CreateOrder)
		r.Patch("/{id}/status", orderHandler.UpdateOrderStatus)
	})

	return r
}
