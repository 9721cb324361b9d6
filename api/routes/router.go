package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tontonphone/storefront-backend/api/controllers"
	"github.com/tontonphone/storefront-backend/api/middleware"
	"github.com/tontonphone/storefront-backend/internal/auth"
	"github.com/tontonphone/storefront-backend/internal/cart"
	"github.com/tontonphone/storefront-backend/internal/catalog"
	checkoutsvc "github.com/tontonphone/storefront-backend/internal/checkout"
	"github.com/tontonphone/storefront-backend/internal/orders"
	"github.com/tontonphone/storefront-backend/internal/prefs"
	"github.com/tontonphone/storefront-backend/internal/wishlist"
	"github.com/tontonphone/storefront-backend/pkg/auth/session"
	"github.com/tontonphone/storefront-backend/pkg/config"
	"github.com/tontonphone/storefront-backend/pkg/db"
	"github.com/tontonphone/storefront-backend/pkg/logger"
	"github.com/tontonphone/storefront-backend/pkg/metrics"
	"github.com/tontonphone/storefront-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	Redis           *redis.Client
	SessionManager  session.AccessSessionChecker
	Metrics         *metrics.HTTPMetrics
	MetricsRegistry prometheus.Gatherer

	AuthService     auth.Service
	RegisterService auth.RegisterService
	CatalogService  catalog.Service
	CartService     cart.Service
	WishlistService wishlist.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
	PrefsService    prefs.Service
}

// NewRouter assembles the chi router: public catalog and auth surfaces,
// the authenticated storefront surface, and the ops endpoints.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
	)

	var limiter middleware.RateLimiterStore
	var redisPinger redis.Pinger
	if p.Redis != nil {
		limiter = p.Redis
		redisPinger = p.Redis
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, redisPinger))
	})

	if p.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, limiter, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))
			r.Post("/logout", controllers.AuthLogout(p.AuthService, logg))
			r.Get("/me", controllers.AuthMe(p.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(p.CatalogService, logg))
			r.Get("/filters", controllers.ProductFilters(p.CatalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(p.CatalogService, logg))
		})
		r.Get("/search", controllers.Search(p.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionManager, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(p.CartService, logg))
				r.Post("/items", controllers.CartAddItem(p.CartService, logg))
				r.Put("/items/{productId}", controllers.CartSetQuantity(p.CartService, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(p.CartService, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(p.WishlistService, logg))
				r.Post("/toggle", controllers.WishlistToggle(p.WishlistService, logg))
			})

			r.Post("/checkout", controllers.Checkout(p.CheckoutService, logg))
			r.Get("/orders", controllers.OrderList(p.OrdersService, logg))

			r.Route("/prefs", func(r chi.Router) {
				r.Get("/", controllers.PrefsFetch(p.PrefsService, logg))
				r.Put("/", controllers.PrefsUpdate(p.PrefsService, logg))
			})
		})
	})

	return r
}
