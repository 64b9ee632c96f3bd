package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/commerceops/backoffice/internal/analytics"
	"github.com/commerceops/backoffice/internal/auth"
	"github.com/commerceops/backoffice/internal/brand"
	"github.com/commerceops/backoffice/internal/category"
	"github.com/commerceops/backoffice/internal/customer"
	"github.com/commerceops/backoffice/internal/order"
	"github.com/commerceops/backoffice/internal/product"
	"github.com/commerceops/backoffice/internal/rbac"
	"github.com/commerceops/backoffice/internal/transport/middleware"
	"github.com/commerceops/backoffice/internal/transport/swagger"
	"github.com/commerceops/backoffice/internal/upload"
	"github.com/commerceops/backoffice/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	Authz     *auth.Authorization
	User      *user.Handler
	Product   *product.Handler
	Category  *category.Handler
	Brand     *brand.Handler
	Customer  *customer.Handler
	Order     *order.Handler
	Upload    *upload.Handler
	Analytics *analytics.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
				sr.Post("/logout", h.Auth.Logout)
			})
		}

		if h.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
				pr.Group(func(ur chi.Router) {
					ur.Use(h.Authz.Require(rbac.ManageUsers))
					ur.Get("/users", h.User.ListUsers)
				})
			}

			if h.Product != nil {
				pr.Route("/products", func(er chi.Router) {
					er.Group(func(vr chi.Router) {
						vr.Use(h.Authz.Require(rbac.ViewInventory))
						vr.Get("/", h.Product.ListProducts)
						vr.Get("/{id}", h.Product.GetProduct)
					})
					er.Group(func(mr chi.Router) {
						mr.Use(h.Authz.Require(rbac.ManageInventory))
						mr.Post("/", h.Product.CreateProduct)
						mr.Put("/{id}", h.Product.UpdateProduct)
					})
					er.Group(func(dr chi.Router) {
						dr.Use(h.Authz.Require(rbac.DeleteProducts))
						dr.Delete("/{id}", h.Product.DeleteProduct)
					})
				})
			}

			if h.Category != nil {
				pr.Route("/categories", func(er chi.Router) {
					er.Group(func(vr chi.Router) {
						vr.Use(h.Authz.Require(rbac.ViewCategories))
						vr.Get("/", h.Category.ListCategories)
						vr.Get("/{id}", h.Category.GetCategory)
					})
					er.Group(func(mr chi.Router) {
						mr.Use(h.Authz.Require(rbac.ManageCategories))
						mr.Post("/", h.Category.CreateCategory)
						mr.Put("/{id}", h.Category.UpdateCategory)
					})
					er.Group(func(dr chi.Router) {
						dr.Use(h.Authz.Require(rbac.DeleteCategories))
						dr.Delete("/{id}", h.Category.DeleteCategory)
					})
				})
			}

			if h.Brand != nil {
				pr.Route("/brands", func(er chi.Router) {
					er.Group(func(vr chi.Router) {
						vr.Use(h.Authz.Require(rbac.ViewBrands))
						vr.Get("/", h.Brand.ListBrands)
						vr.Get("/{id}", h.Brand.GetBrand)
					})
					er.Group(func(mr chi.Router) {
						mr.Use(h.Authz.Require(rbac.ManageBrands))
						mr.Post("/", h.Brand.CreateBrand)
						mr.Put("/{id}", h.Brand.UpdateBrand)
						mr.Delete("/{id}", h.Brand.DeleteBrand)
					})
				})
			}

			if h.Customer != nil {
				pr.Route("/customers", func(er chi.Router) {
					er.Group(func(vr chi.Router) {
						vr.Use(h.Authz.Require(rbac.ViewCustomers))
						vr.Get("/", h.Customer.ListCustomers)
						vr.Get("/{id}", h.Customer.GetCustomer)
					})
					er.Group(func(mr chi.Router) {
						mr.Use(h.Authz.Require(rbac.ManageCustomers))
						mr.Post("/", h.Customer.CreateCustomer)
						mr.Put("/{id}", h.Customer.UpdateCustomer)
					})
				})
			}

			if h.Order != nil {
				pr.Route("/orders", func(er chi.Router) {
					er.Group(func(vr chi.Router) {
						vr.Use(h.Authz.Require(rbac.ViewOrders))
						vr.Get("/", h.Order.ListOrders)
						vr.Get("/{id}", h.Order.GetOrder)
					})
					er.Group(func(mr chi.Router) {
						mr.Use(h.Authz.Require(rbac.ManageOrders))
						mr.Post("/", h.Order.CreateOrder)
						mr.Patch("/{id}/status", h.Order.UpdateOrderStatus)
					})
					er.Group(func(dr chi.Router) {
						dr.Use(h.Authz.Require(rbac.DeleteOrders))
						dr.Delete("/{id}", h.Order.DeleteOrder)
					})
				})
			}

			if h.Upload != nil {
				pr.Group(func(ur chi.Router) {
					ur.Use(h.Authz.Require(rbac.ManageInventory))
					ur.Post("/upload", h.Upload.UploadImage)
				})
			}

			if h.Analytics != nil {
				pr.Group(func(ar chi.Router) {
					ar.Use(h.Authz.Require(rbac.ViewAnalytics))
					ar.Get("/analytics/summary", h.Analytics.GetSummary)
				})
			}
		})
	})
}
