package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nmoreno/bazaar-backend/api/controllers"
	"github.com/nmoreno/bazaar-backend/api/middleware"
	"github.com/nmoreno/bazaar-backend/internal/auth"
	"github.com/nmoreno/bazaar-backend/internal/cart"
	"github.com/nmoreno/bazaar-backend/internal/catalog"
	checkoutsvc "github.com/nmoreno/bazaar-backend/internal/checkout"
	"github.com/nmoreno/bazaar-backend/internal/reviews"
	"github.com/nmoreno/bazaar-backend/pkg/auth/session"
	"github.com/nmoreno/bazaar-backend/pkg/config"
	"github.com/nmoreno/bazaar-backend/pkg/db"
	"github.com/nmoreno/bazaar-backend/pkg/logger"
	"github.com/nmoreno/bazaar-backend/pkg/metrics"
	"github.com/nmoreno/bazaar-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           redis.Pinger
	SessionChecker  session.AccessSessionChecker
	HTTPMetrics     *metrics.HTTPMetrics
	AuthService     auth.Service
	CatalogService  catalog.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	ReviewService   reviews.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register/buyer", controllers.AuthRegister(p.AuthService, auth.RoleBuyer, logg))
		r.Post("/register/vendor", controllers.AuthRegister(p.AuthService, auth.RoleVendor, logg))
		r.Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, p.SessionChecker, logg)).Post("/logout", controllers.AuthLogout(p.AuthService, logg))
	})

	// Public storefront reads need no credentials.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(p.CatalogService, logg))
		r.Get("/products/{productId}", controllers.GetProduct(p.CatalogService, logg))
		r.Get("/products/{productId}/reviews", controllers.ListReviews(p.ReviewService, logg))
		r.Get("/shops", controllers.ShopsByOwner(p.CatalogService, logg))
		r.Get("/shops/{shopId}/products", controllers.ShopProducts(p.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))

			r.Route("/vendor", func(r chi.Router) {
				r.Use(middleware.RequireVendor(logg))
				r.Get("/shops", controllers.VendorListShops(p.CatalogService, logg))
				r.Post("/shops", controllers.VendorCreateShop(p.CatalogService, logg))
				r.Patch("/shops/{shopId}", controllers.VendorUpdateShop(p.CatalogService, logg))
				r.Delete("/shops/{shopId}", controllers.VendorDeleteShop(p.CatalogService, logg))
				r.Post("/shops/{shopId}/products", controllers.VendorCreateProduct(p.CatalogService, logg))
				r.Patch("/products/{productId}", controllers.VendorUpdateProduct(p.CatalogService, logg))
				r.Delete("/products/{productId}", controllers.VendorDeleteProduct(p.CatalogService, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireBuyer(logg))
				r.Post("/cart/items", controllers.CartAddItem(p.CartService, logg))
				r.Get("/cart", controllers.CartView(p.CartService, logg))
				r.Post("/checkout", controllers.Checkout(p.CheckoutService, logg))
				r.Post("/products/{productId}/reviews", controllers.SubmitReview(p.ReviewService, logg))
			})
		})
	})

	return r
}
