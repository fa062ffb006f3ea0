package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/veggieshop-backend/api/controllers"
	"github.com/angelmondragon/veggieshop-backend/api/middleware"
	pkgAuth "github.com/angelmondragon/veggieshop-backend/pkg/auth"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
	"github.com/angelmondragon/veggieshop-backend/pkg/metrics"
	"github.com/angelmondragon/veggieshop-backend/pkg/redis"
)

// Infra is the optional shared infrastructure the router exposes or probes.
// Redis and Gatherer may be nil.
type Infra struct {
	DB          *db.Client
	Redis       *redis.Client
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
}

// CookieOptions derives the auth cookie settings from config.
func CookieOptions(cfg *config.Config) pkgAuth.CookieOptions {
	return pkgAuth.CookieOptions{
		Name:   cfg.Cookie.Name,
		Domain: cfg.Cookie.Domain,
		Secure: cfg.Cookie.Secure || cfg.App.IsProd(),
		MaxAge: cfg.JWT.TTL(),
	}
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svcs *Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(infra.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	authOpts := middleware.AuthOptions{JWT: cfg.JWT, CookieName: cfg.Cookie.Name}
	if svcs.Sessions != nil {
		authOpts.Revocations = svcs.Sessions
	}
	requireAuth := middleware.Auth(authOpts, logg)
	optionalAuth := middleware.OptionalAuth(authOpts, logg)
	cookie := CookieOptions(cfg)

	var rateStore middleware.RateLimitStore
	if infra.Redis != nil {
		rateStore = infra.Redis
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

	readiness := map[string]controllers.Pinger{}
	if infra.DB != nil {
		readiness["db"] = infra.DB
	}
	if infra.Redis != nil {
		readiness["redis"] = infra.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readiness, logg))
	})

	if cfg.Metrics.Enabled && infra.Gatherer != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, promhttp.HandlerFor(infra.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.FeatureFlags.InitEndpoint {
			r.Get("/init", controllers.Init(svcs.Bootstrapper, logg))
		}

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, cookie, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, cookie, logg))
			r.With(optionalAuth).Post("/logout", controllers.AuthLogout(svcs.Auth, cookie, logg))
			r.With(requireAuth).Get("/me", controllers.AuthMe(svcs.Auth, logg))
			r.With(requireAuth).Patch("/me", controllers.AuthUpdateProfile(svcs.Auth, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Products, logg))
			r.Get("/categories", controllers.ProductCategories(svcs.Products, logg))
			r.Get("/featured", controllers.ProductFeatured(svcs.Products, logg))
			r.Get("/search", controllers.ProductSearch(svcs.Products, logg))
			r.Get("/{id}", controllers.ProductGet(svcs.Products, logg))
		})

		r.Route("/countries", func(r chi.Router) {
			r.Get("/", controllers.CountryList(svcs.Countries, logg))
			r.Get("/{code}", controllers.CountryGet(svcs.Countries, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(svcs.Cart, logg))
				r.Post("/", controllers.CartAdd(svcs.Cart, logg))
				r.Delete("/", controllers.CartClear(svcs.Cart, logg))
				r.Get("/count", controllers.CartCount(svcs.Cart, logg))
				r.Put("/{productId}", controllers.CartUpdate(svcs.Cart, logg))
				r.Delete("/{productId}", controllers.CartRemove(svcs.Cart, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistGet(svcs.Wishlist, logg))
				r.Post("/", controllers.WishlistAdd(svcs.Wishlist, logg))
				r.Delete("/", controllers.WishlistClear(svcs.Wishlist, logg))
				r.Get("/{productId}", controllers.WishlistStatus(svcs.Wishlist, logg))
				r.Delete("/{productId}", controllers.WishlistRemove(svcs.Wishlist, logg))
				r.Post("/{productId}/move-to-cart", controllers.WishlistMoveToCart(svcs.Wishlist, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrderList(svcs.Orders, logg))
				r.Post("/", controllers.OrderPlace(svcs.Orders, logg))
				r.Get("/{id}", controllers.OrderGet(svcs.Orders, logg))
				r.Post("/{id}/cancel", controllers.OrderCancel(svcs.Orders, logg))
			})
		})
	})

	return r
}
