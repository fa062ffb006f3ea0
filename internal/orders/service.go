package orders

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/angelmondragon/veggieshop-backend/internal/cart"
	product "github.com/angelmondragon/veggieshop-backend/internal/products"
	"github.com/angelmondragon/veggieshop-backend/internal/repo"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"github.com/angelmondragon/veggieshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
	"github.com/angelmondragon/veggieshop-backend/pkg/metrics"
	"github.com/angelmondragon/veggieshop-backend/pkg/money"
	"gorm.io/gorm"
)

const (
	minDeliveryDays = 3
	maxDeliveryDays = 5
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the order service. Stock, Metrics,
// Now and DeliveryDays are optional.
type ServiceParams struct {
	Repo        *Repository
	CartRepo    *cart.Repository
	ProductRepo *product.Repository
	Tx          txRunner
	Stock       StockDecrementer
	Metrics     *metrics.ShopMetrics
	Now         func() time.Time
	// DeliveryDays returns the number of days until estimated delivery.
	DeliveryDays func() int
}

// Service defines the order lifecycle.
type Service interface {
	PlaceOrder(ctx context.Context, userID int64, deliveryAddress string) (*models.Order, error)
	CreateFromCart(ctx context.Context, userID int64, items []models.CartItem, deliveryAddress string) (int64, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]models.Order, error)
	CancelOrder(ctx context.Context, userID, orderID int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error
}

type service struct {
	repo         *Repository
	cartRepo     *cart.Repository
	productRepo  *product.Repository
	tx           txRunner
	stock        StockDecrementer
	metrics      *metrics.ShopMetrics
	now          func() time.Time
	deliveryDays func() int
}

// NewService builds the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orders repo is required")
	}
	if params.CartRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	svc := &service{
		repo:         params.Repo,
		cartRepo:     params.CartRepo,
		productRepo:  params.ProductRepo,
		tx:           params.Tx,
		stock:        params.Stock,
		metrics:      params.Metrics,
		now:          params.Now,
		deliveryDays: params.DeliveryDays,
	}
	if svc.stock == nil {
		svc.stock = NewProductStock(params.ProductRepo)
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.deliveryDays == nil {
		svc.deliveryDays = func() int {
			return minDeliveryDays + rand.IntN(maxDeliveryDays-minDeliveryDays+1)
		}
	}
	return svc, nil
}

// PlaceOrder checks out the user's current cart.
func (s *service) PlaceOrder(ctx context.Context, userID int64, deliveryAddress string) (*models.Order, error) {
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryAddress == "" {
		s.metrics.CheckoutFailed(metrics.ReasonMissingAddress)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Delivery address is required")
	}

	items, err := s.cartRepo.ListItems(ctx, userID)
	if err != nil {
		s.metrics.CheckoutFailed(metrics.ReasonInternal)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cart")
	}
	if len(items) == 0 {
		s.metrics.CheckoutFailed(metrics.ReasonEmptyCart)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty")
	}

	orderID, err := s.CreateFromCart(ctx, userID, items, deliveryAddress)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.FindWithItems(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
	}
	return order, nil
}

// CreateFromCart turns a cart snapshot into an order. The order header, its
// items, the stock decrements and the cart wipe commit together or not at all.
func (s *service) CreateFromCart(ctx context.Context, userID int64, items []models.CartItem, deliveryAddress string) (int64, error) {
	if len(items) == 0 {
		s.metrics.CheckoutFailed(metrics.ReasonEmptyCart)
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty")
	}
	started := time.Now()

	lines := make([]money.Line, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			s.metrics.CheckoutFailed(metrics.ReasonInternal)
			return 0, pkgerrors.Newf(pkgerrors.CodeInternal, "cart item %d has no product", item.ID)
		}
		lines = append(lines, money.Line{Quantity: item.Quantity, UnitPrice: item.Product.PricePerKg})
	}

	eta := s.now().UTC().AddDate(0, 0, s.deliveryDays())
	order := models.Order{
		UserID:            userID,
		TotalAmount:       money.Total(lines),
		Status:            enums.OrderStatusProcessing,
		DeliveryAddress:   deliveryAddress,
		EstimatedDelivery: &eta,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.repo.WithTx(tx)
		if err := orderRepo.Create(ctx, &order); err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:         order.ID,
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				PriceAtPurchase: item.Product.PricePerKg,
			})
		}
		if err := orderRepo.CreateItems(ctx, orderItems); err != nil {
			return err
		}

		for _, item := range items {
			ok, err := s.stock.Decrement(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return pkgerrors.Newf(pkgerrors.CodeStateConflict, "insufficient stock for %s", item.Product.Name)
			}
		}

		_, err := s.cartRepo.WithTx(tx).Clear(ctx, userID)
		return err
	})
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
			s.metrics.CheckoutFailed(metrics.ReasonInsufficientStock)
			return 0, err
		}
		s.metrics.CheckoutFailed(metrics.ReasonInternal)
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create order")
	}

	s.metrics.OrderCreated(time.Since(started))
	return order.ID, nil
}

// GetOrder returns the order when it belongs to userID.
func (s *service) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	if orderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid order ID")
	}
	order, err := s.repo.FindWithItems(ctx, orderID)
	if err != nil {
		return nil, mapLookupError(err)
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch orders")
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// CancelOrder puts every item's quantity back on its product and marks the
// order cancelled. Delivered and cancelled orders are refused.
func (s *service) CancelOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	if _, err := s.GetOrder(ctx, userID, orderID); err != nil {
		return nil, err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.repo.WithTx(tx)
		// The guarded update runs first so a concurrent cancel restores stock once.
		cancelled, err := orderRepo.MarkCancelled(ctx, orderID)
		if err != nil {
			return err
		}
		order, err := orderRepo.FindWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		if !cancelled {
			return pkgerrors.Newf(pkgerrors.CodeStateConflict, "order cannot be cancelled while %s", order.Status)
		}

		productRepo := s.productRepo.WithTx(tx)
		for _, item := range order.Items {
			if _, err := productRepo.IncreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to cancel order")
	}
	s.metrics.OrderCancelled()

	order, err := s.repo.FindWithItems(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
	}
	return order, nil
}

// UpdateStatus overwrites the status without checking the transition.
func (s *service) UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	if !status.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", status)
	}
	ok, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update order status")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}
	return nil
}

func mapLookupError(err error) error {
	if repo.IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to fetch order")
}
