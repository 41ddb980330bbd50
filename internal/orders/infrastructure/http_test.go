package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"bookameal/internal/orders/application"
	"bookameal/internal/orders/domain"
	"bookameal/pkg/clock"
	"bookameal/pkg/logger"
	"bookameal/pkg/middleware"
)

var handlerT0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const handlerWindow = 2 * time.Hour

// stubOrderRepository stores orders by value so persistence is only
// observable through Update, mirroring a real store.
type stubOrderRepository struct {
	orders map[uint]domain.Order
	nextID uint
}

func newStubOrderRepository() *stubOrderRepository {
	return &stubOrderRepository{orders: make(map[uint]domain.Order), nextID: 1}
}

func (r *stubOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	order.ID = r.nextID
	r.nextID++
	r.orders[order.ID] = *order
	return nil
}

func (r *stubOrderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotExist
	}
	return &order, nil
}

func (r *stubOrderRepository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	var result []*domain.Order
	for id := uint(1); id < r.nextID; id++ {
		if order, ok := r.orders[id]; ok {
			copied := order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *stubOrderRepository) GetByUserID(ctx context.Context, userID uint) ([]*domain.Order, error) {
	var result []*domain.Order
	for id := uint(1); id < r.nextID; id++ {
		if order, ok := r.orders[id]; ok && order.UserID == userID {
			copied := order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *stubOrderRepository) GetByDate(ctx context.Context, day time.Time) ([]*domain.Order, error) {
	start := application.StartOfDay(day)
	end := start.Add(24 * time.Hour)
	var result []*domain.Order
	for id := uint(1); id < r.nextID; id++ {
		order, ok := r.orders[id]
		if ok && !order.CreatedAt.Before(start) && order.CreatedAt.Before(end) {
			copied := order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *stubOrderRepository) GetCreatedSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	var result []*domain.Order
	for id := uint(1); id < r.nextID; id++ {
		if order, ok := r.orders[id]; ok && !order.CreatedAt.Before(since) {
			copied := order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *stubOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return domain.ErrOrderNotExist
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *stubOrderRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotExist
	}
	delete(r.orders, id)
	return nil
}

type stubCatalog struct{}

func (stubCatalog) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	if id != 1 {
		return nil, domain.ErrUserNotExist
	}
	return &domain.User{ID: 1, Name: "John Doe", Email: "john@example.com", Role: "customer"}, nil
}

func (stubCatalog) GetMeal(ctx context.Context, id uint) (*domain.Meal, error) {
	if id != 2 {
		return nil, domain.ErrMealNotExist
	}
	return &domain.Meal{ID: 2, Name: "Jollof Rice", Price: 2000}, nil
}

type handlerFixture struct {
	repo   *stubOrderRepository
	clock  *clock.Fake
	router *gin.Engine
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newStubOrderRepository()
	clk := clock.NewFake(handlerT0)
	log := logger.New("test", "error")

	useCase := application.NewOrderUseCase(
		repo, stubCatalog{}, stubCatalog{}, nil,
		domain.NewEditPolicy(handlerWindow), clk, log,
	)
	reporter := application.NewSalesReporter(repo, clk, log)

	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	api := router.Group("/api/v1")
	NewHTTPHandler(useCase, reporter).RegisterRoutes(api)

	return &handlerFixture{repo: repo, clock: clk, router: router}
}

func (f *handlerFixture) place(t *testing.T) uint {
	t.Helper()
	order, err := domain.NewOrder(1, 2, 1, 2000, f.clock.Now())
	if err != nil {
		t.Fatalf("failed to build order: %v", err)
	}
	if err := f.repo.Create(context.Background(), order); err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}
	return order.ID
}

func (f *handlerFixture) do(method, path string, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

type errorEnvelope struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Error   map[string]interface{} `json:"error"`
	Order   *OrderResponse         `json:"order"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var body errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestUpdateOrder_AfterWindow(t *testing.T) {
	f := newHandlerFixture(t)
	orderID := f.place(t)
	f.clock.Advance(handlerWindow)

	rec := f.do(http.MethodPut, "/api/v1/orders/1", `{"quantity": 3}`)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeError(t, rec)
	if body.Status != "error" {
		t.Errorf("expected error status, got %s", body.Status)
	}
	if body.Error["message"] != "You can no longer update this order" {
		t.Errorf("unexpected error detail: %v", body.Error)
	}
	if body.Order == nil {
		t.Fatal("expected the expired order echoed in the response")
	}
	if !body.Order.Expired {
		t.Error("echoed order should be marked expired")
	}
	if body.Order.Total != "2000" {
		t.Errorf("expected total %q, got %q", "2000", body.Order.Total)
	}
	if body.Order.Quantity != 1 {
		t.Errorf("expected the patch to be rejected, got quantity %d", body.Order.Quantity)
	}

	stored := f.repo.orders[orderID]
	if !stored.Expired {
		t.Error("expiry transition was not persisted")
	}
}

func TestUpdateOrder_WithinWindow(t *testing.T) {
	f := newHandlerFixture(t)
	f.place(t)
	f.clock.Advance(handlerWindow - time.Minute)

	rec := f.do(http.MethodPut, "/api/v1/orders/1", `{"quantity": "2", "total": "4000"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Message string        `json:"message"`
		Order   OrderResponse `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Message != "Successfully updated order" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Order.Quantity != 2 || body.Order.Total != "4000" {
		t.Errorf("patch not applied: quantity %d total %q", body.Order.Quantity, body.Order.Total)
	}
}

func TestUpdateOrder_NotFound(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPut, "/api/v1/orders/42", `{"quantity": 2}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error["id"] != "Order id does not exist" {
		t.Errorf("unexpected error detail: %v", body.Error)
	}
}

func TestDeleteOrder_Missing(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodDelete, "/api/v1/orders/42", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error["id"] != "Order does not exist" {
		t.Errorf("unexpected error detail: %v", body.Error)
	}
}

func TestDeleteOrder_Returns201(t *testing.T) {
	f := newHandlerFixture(t)
	orderID := f.place(t)

	rec := f.do(http.MethodDelete, "/api/v1/orders/1", "")

	// existing clients expect 201, not 200 or 204
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var body struct {
		Message string        `json:"message"`
		Order   OrderResponse `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Message != "Order successfully deleted" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Order.ID != orderID {
		t.Errorf("expected deleted order %d echoed, got %d", orderID, body.Order.ID)
	}
	if _, ok := f.repo.orders[orderID]; ok {
		t.Error("order still present after delete")
	}
}

func TestGetAllOrders_EmptyStore(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/orders", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error["message"] != "No order have been placed" {
		t.Errorf("unexpected error detail: %v", body.Error)
	}
}

func TestGetOrdersByDate_EmptyIsOK(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/orders/date/2026-03-01", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Orders []OrderResponse `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Orders == nil || len(body.Orders) != 0 {
		t.Errorf("expected empty list, got %v", body.Orders)
	}
}
