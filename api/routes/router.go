package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiendasport/storefront-api/api/controllers"
	"github.com/tiendasport/storefront-api/api/middleware"
	authsvc "github.com/tiendasport/storefront-api/internal/auth"
	cartsvc "github.com/tiendasport/storefront-api/internal/cart"
	checkoutsvc "github.com/tiendasport/storefront-api/internal/checkout"
	shippingsvc "github.com/tiendasport/storefront-api/internal/shipping"
	wishlistsvc "github.com/tiendasport/storefront-api/internal/wishlist"
	"github.com/tiendasport/storefront-api/pkg/auth/session"
	"github.com/tiendasport/storefront-api/pkg/config"
	"github.com/tiendasport/storefront-api/pkg/db"
	"github.com/tiendasport/storefront-api/pkg/logger"
	"github.com/tiendasport/storefront-api/pkg/metrics"
	"github.com/tiendasport/storefront-api/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	authService authsvc.Service,
	cartService cartsvc.Service,
	shippingService shippingsvc.Service,
	checkoutService checkoutsvc.Service,
	wishlistService wishlistsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.RequirePolicy(middleware.PolicyAuthenticated, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Put("/items/{variantId}", controllers.CartUpdateQuantity(cartService, logg))
			r.Patch("/items/{variantId}", controllers.CartUpdateQuantity(cartService, logg))
			r.Delete("/items/{variantId}", controllers.CartRemoveItem(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.Route("/shipping", func(r chi.Router) {
			r.Get("/preview", controllers.ShippingPreview(shippingService, logg))
			r.Post("/quote", controllers.ShippingQuote(shippingService, logg))
			r.Get("/quote", controllers.ShippingCurrentQuote(shippingService, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(wishlistService, logg))
			r.Post("/", controllers.WishlistAdd(wishlistService, logg))
			r.Delete("/{variantId}", controllers.WishlistRemove(wishlistService, logg))
			r.Post("/{variantId}/move-to-cart", controllers.WishlistMoveToCart(wishlistService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.RequirePolicy(middleware.PolicyAdmin, logg))

		r.Route("/shipping", func(r chi.Router) {
			r.Get("/origin", controllers.AdminShippingOrigin(shippingService, logg))
			r.Get("/tariff-health", controllers.AdminTariffHealth(shippingService, logg))
		})
	})

	return r
}
