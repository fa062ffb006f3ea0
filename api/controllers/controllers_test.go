package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/veggieshop-backend/api/middleware"
	pkgAuth "github.com/angelmondragon/veggieshop-backend/pkg/auth"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/angelmondragon/veggieshop-backend/pkg/db/models"
	"github.com/angelmondragon/veggieshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/veggieshop-backend/pkg/errors"
)

type stubInitializer struct {
	err   error
	calls int
}

func (s *stubInitializer) Initialize(ctx context.Context) error {
	s.calls++
	return s.err
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

type stubOrders struct {
	order *models.Order
	err   error
	got   struct {
		userID  int64
		orderID int64
		address string
	}
}

func (s *stubOrders) PlaceOrder(ctx context.Context, userID int64, address string) (*models.Order, error) {
	s.got.userID, s.got.address = userID, address
	return s.order, s.err
}

func (s *stubOrders) CreateFromCart(ctx context.Context, userID int64, items []models.CartItem, address string) (int64, error) {
	return 0, nil
}

func (s *stubOrders) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	s.got.userID, s.got.orderID = userID, orderID
	return s.order, s.err
}

func (s *stubOrders) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return nil, s.err
}

func (s *stubOrders) CancelOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrders) UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func withUser(r *http.Request, userID int64) *http.Request {
	claims := &pkgAuth.AccessTokenClaims{UserID: userID}
	return r.WithContext(middleware.WithAuthResult(r.Context(), pkgAuth.Authenticated(claims)))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestInitSuccess(t *testing.T) {
	boot := &stubInitializer{}
	resp := httptest.NewRecorder()
	Init(boot, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/init", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if env := decodeEnvelope(t, resp); env.Message != "Database initialized and seeded successfully" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if boot.calls != 1 {
		t.Fatalf("expected one initialize call, got %d", boot.calls)
	}
}

func TestInitFailureHidesCause(t *testing.T) {
	resp := httptest.NewRecorder()
	Init(&stubInitializer{err: errors.New("disk full")}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/init", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	env := decodeEnvelope(t, resp)
	if env.Success || env.Error != "Internal server error" {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestHealthReadyReportsFailingDependency(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	deps := map[string]Pinger{"db": stubPinger{}, "redis": stubPinger{err: errors.New("refused")}}

	resp := httptest.NewRecorder()
	HealthReady(cfg, deps, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	HealthReady(cfg, map[string]Pinger{"db": stubPinger{}}, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestOrderGetPassesCallerAndID(t *testing.T) {
	svc := &stubOrders{order: &models.Order{ID: 12, UserID: 7}}
	req := withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/api/orders/12", nil), 7), "id", "12")

	resp := httptest.NewRecorder()
	OrderGet(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.got.userID != 7 || svc.got.orderID != 12 {
		t.Fatalf("unexpected service args %+v", svc.got)
	}
}

func TestOrderGetForbidden(t *testing.T) {
	svc := &stubOrders{err: pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized")}
	req := withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/api/orders/12", nil), 8), "id", "12")

	resp := httptest.NewRecorder()
	OrderGet(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	env := decodeEnvelope(t, resp)
	if env.Error != "Unauthorized" || len(env.Data) != 0 {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestOrderPlaceTrimsAddress(t *testing.T) {
	svc := &stubOrders{order: &models.Order{ID: 1}}
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"deliveryAddress":"  12 Market St  "}`)), 3)

	resp := httptest.NewRecorder()
	OrderPlace(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.got.address != "12 Market St" {
		t.Fatalf("expected trimmed address, got %q", svc.got.address)
	}
}

func TestAuthMeWithoutUser(t *testing.T) {
	resp := httptest.NewRecorder()
	AuthMe(nil, nil).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
