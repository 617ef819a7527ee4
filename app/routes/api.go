// Package routes wires the HTTP surface: public storefront endpoints,
// the admin gate, and the token-protected back-office API.
package routes

import (
	"time"

	"github.com/lspratas/atelier/app/controllers"
	"github.com/lspratas/atelier/app/repositories"
	"github.com/lspratas/atelier/app/services"
	"github.com/lspratas/atelier/pkg/middleware"
	"github.com/lspratas/atelier/pkg/notify"
	"github.com/lspratas/atelier/pkg/router"
)

// Login attempts per IP before the limiter pushes back.
const (
	loginRateMax    = 5
	loginRateWindow = time.Minute
)

// RegisterAPI mounts every named route. The notifier receives the workflow
// notices; pass notify.Discard{} in contexts with no connected admins.
func RegisterAPI(r *router.Router, notifier notify.Notifier) {
	products := repositories.NewProductRepository()
	sales := repositories.NewSaleRepository()
	users := repositories.NewUserRepository()

	catalogSvc := services.NewCatalogService(products)
	salesSvc := services.NewSalesService(products, sales, notifier)
	productSvc := services.NewProductService(products, notifier)
	adminSvc := services.NewAdminService(products, sales)
	authSvc := services.NewAuthService(users)

	catalog := controllers.NewCatalogController(catalogSvc)
	checkout := controllers.NewCheckoutController()
	auth := controllers.NewAuthController(authSvc)
	admin := controllers.NewAdminController(adminSvc)
	product := controllers.NewProductController(productSvc, salesSvc)
	ledger := controllers.NewSalesController(salesSvc)

	api := r.Group("/api")

	// Public storefront.
	api.Get("/catalog", "catalog.index", catalog.Index)
	api.Post("/checkout/whatsapp", "checkout.whatsapp", checkout.WhatsApp)

	// Admin gate.
	api.Post("/login", "auth.login", auth.Login, middleware.RateLimit(loginRateMax, loginRateWindow))
	api.Post("/logout", "auth.logout", auth.Logout, middleware.Auth)
	api.Get("/me", "auth.me", auth.Me, middleware.Auth)

	// Back-office, token required.
	back := api.Group("/admin", middleware.Auth)
	back.Get("/overview", "admin.overview", admin.Overview)
	back.Get("/products", "admin.products.index", product.Index)
	back.Post("/products", "admin.products.store", product.Store)
	back.Put("/products/{id}", "admin.products.update", product.Update)
	back.Delete("/products/{id}", "admin.products.destroy", product.Destroy)
	back.Post("/products/{id}/stock", "admin.products.stock", product.AdjustStock)
	back.Post("/products/{id}/showcase", "admin.products.showcase", product.ToggleShowcase)
	back.Post("/products/{id}/sale", "admin.products.sale", product.RegisterSale)
	back.Get("/sales", "admin.sales.index", ledger.Index)
}
