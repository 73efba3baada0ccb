package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftbasket/swiftbasket-backend/api/controllers"
	"github.com/swiftbasket/swiftbasket-backend/api/middleware"
	"github.com/swiftbasket/swiftbasket-backend/internal/address"
	"github.com/swiftbasket/swiftbasket-backend/internal/auth"
	"github.com/swiftbasket/swiftbasket-backend/internal/cart"
	"github.com/swiftbasket/swiftbasket-backend/internal/catalog"
	"github.com/swiftbasket/swiftbasket-backend/internal/checkout"
	"github.com/swiftbasket/swiftbasket-backend/internal/media"
	"github.com/swiftbasket/swiftbasket-backend/internal/orders"
	"github.com/swiftbasket/swiftbasket-backend/pkg/auth/session"
	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
	"github.com/swiftbasket/swiftbasket-backend/pkg/metrics"
	"github.com/swiftbasket/swiftbasket-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	sessions session.AccessSessionChecker,
	authService *auth.Service,
	catalogService catalog.Service,
	cartService *cart.Service,
	addressService address.Service,
	ordersService *orders.Service,
	mediaService *media.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	fees := checkout.FeesFromConfig(cfg.Checkout)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/otp/request", controllers.AuthRequestOTP(authService, logg))
		r.Post("/otp/verify", controllers.AuthVerifyOTP(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.CatalogList(catalogService, logg))
		r.Get("/products/{slug}", controllers.CatalogDetail(catalogService, logg))
		r.Get("/search", controllers.CatalogSearch(catalogService, logg))
		r.Get("/categories", controllers.CatalogCategories(catalogService, logg))
	})

	r.Route("/api/v1/media", func(r chi.Router) {
		r.Get("/{kind}/{id}", controllers.MediaImage(mediaService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, catalogService, logg))
			r.Post("/items/{slug}/decrement", controllers.CartDecrement(cartService, logg))
			r.Put("/items/{slug}", controllers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{slug}", controllers.CartRemove(cartService, logg))
			r.Get("/quote", controllers.CartQuote(cartService, fees, logg))
		})

		r.Route("/address", func(r chi.Router) {
			r.Get("/", controllers.AddressFetch(addressService, logg))
			r.Put("/", controllers.AddressSave(addressService, logg))
			r.Delete("/", controllers.AddressDelete(addressService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderPlace(ordersService, logg))
			r.Get("/", controllers.OrderList(ordersService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(ordersService, logg))
			r.Get("/{orderId}/tracking", controllers.OrderTrack(ordersService, logg))
		})
	})

	return r
}
