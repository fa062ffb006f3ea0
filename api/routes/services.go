package routes

import (
	"fmt"

	authsvc "github.com/angelmondragon/veggieshop-backend/internal/auth"
	"github.com/angelmondragon/veggieshop-backend/internal/cart"
	"github.com/angelmondragon/veggieshop-backend/internal/countries"
	"github.com/angelmondragon/veggieshop-backend/internal/orders"
	product "github.com/angelmondragon/veggieshop-backend/internal/products"
	"github.com/angelmondragon/veggieshop-backend/internal/seed"
	"github.com/angelmondragon/veggieshop-backend/internal/users"
	"github.com/angelmondragon/veggieshop-backend/internal/wishlist"
	"github.com/angelmondragon/veggieshop-backend/pkg/auth/session"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
	"github.com/angelmondragon/veggieshop-backend/pkg/metrics"
	"github.com/angelmondragon/veggieshop-backend/pkg/security"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Auth         authsvc.Service
	Products     product.Service
	Cart         cart.Service
	Wishlist     wishlist.Service
	Orders       orders.Service
	Countries    countries.Service
	Bootstrapper *seed.Bootstrapper
	// Sessions is nil when Redis is not configured.
	Sessions *session.Manager
}

// ServicesParams carries the shared infrastructure the services are built on.
// Sessions and ShopMetrics are optional.
type ServicesParams struct {
	Config      *config.Config
	DB          *db.Client
	Sessions    *session.Manager
	ShopMetrics *metrics.ShopMetrics
	Logger      *logger.Logger
}

// NewServices wires repositories into services.
func NewServices(params ServicesParams) (*Services, error) {
	if params.Config == nil || params.DB == nil {
		return nil, fmt.Errorf("config and db client are required")
	}
	conn := params.DB.DB()

	userRepo := users.NewRepository(conn)
	countryRepo := countries.NewRepository(conn)
	productRepo := product.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	wishlistRepo := wishlist.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	countrySvc, err := countries.NewService(countryRepo)
	if err != nil {
		return nil, fmt.Errorf("country service: %w", err)
	}
	productSvc, err := product.NewService(productRepo)
	if err != nil {
		return nil, fmt.Errorf("product service: %w", err)
	}
	cartSvc, err := cart.NewService(cartRepo, productRepo)
	if err != nil {
		return nil, fmt.Errorf("cart service: %w", err)
	}
	wishlistSvc, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		CartRepo:     cartRepo,
		ProductRepo:  productRepo,
		Tx:           params.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("wishlist service: %w", err)
	}
	orderSvc, err := orders.NewService(orders.ServiceParams{
		Repo:        orderRepo,
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Tx:          params.DB,
		Metrics:     params.ShopMetrics,
	})
	if err != nil {
		return nil, fmt.Errorf("order service: %w", err)
	}

	authParams := authsvc.ServiceParams{
		UserRepo:  userRepo,
		Countries: countrySvc,
		Hasher:    security.NewHasher(params.Config.Password),
		JWTConfig: params.Config.JWT,
	}
	if params.Sessions != nil {
		authParams.Revoker = params.Sessions
	}
	authSvc, err := authsvc.NewService(authParams)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	return &Services{
		Auth:         authSvc,
		Products:     productSvc,
		Cart:         cartSvc,
		Wishlist:     wishlistSvc,
		Orders:       orderSvc,
		Countries:    countrySvc,
		Bootstrapper: seed.NewBootstrapper(params.DB, params.Logger),
		Sessions:     params.Sessions,
	}, nil
}
