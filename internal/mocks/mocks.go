// Package mocks holds testify mocks shared by the service and handler tests.
package mocks

import (
	"context"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/catalog"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/order"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/payment"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockGateway struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockLedger struct {
	mock.Mock
}

type MockStoreRepository struct {
	mock.Mock
}

type MockBillboardRepository struct {
	mock.Mock
}

type MockProductRepository struct {
	mock.Mock
}

type MockCheckoutService struct {
	mock.Mock
}

type MockWebhookService struct {
	mock.Mock
}

type MockRevenueService struct {
	mock.Mock
}

// ---- order repository ----

func (m *MockOrderRepository) FindProducts(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]order.Product, error) {
	args := m.Called(ctx, storeID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Product), args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, orderID uuid.UUID, details order.ShippingDetails) ([]uuid.UUID, error) {
	args := m.Called(ctx, orderID, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockOrderRepository) ArchiveProducts(ctx context.Context, productIDs []uuid.UUID) error {
	args := m.Called(ctx, productIDs)
	return args.Error(0)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, storeID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListPaidLines(ctx context.Context, storeID uuid.UUID) ([]order.RevenueLine, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.RevenueLine), args.Error(1)
}

func (m *MockOrderRepository) CountPaidOrders(ctx context.Context, storeID uuid.UUID) (int, error) {
	args := m.Called(ctx, storeID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) CountStockProducts(ctx context.Context, storeID uuid.UUID) (int, error) {
	args := m.Called(ctx, storeID)
	return args.Int(0), args.Error(1)
}

// ---- payment gateway ----

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutSessionRequest) (*payment.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSession), args.Error(1)
}

func (m *MockGateway) ParseWebhook(payload []byte, signature string) (*payment.Event, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Event), args.Error(1)
}

// ---- events and ledger ----

func (m *MockPublisher) Publish(ctx context.Context, pattern string, data interface{}) error {
	args := m.Called(ctx, pattern, data)
	return args.Error(0)
}

func (m *MockPublisher) Close() {
	m.Called()
}

func (m *MockLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) Record(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// ---- catalog repositories ----

func (m *MockStoreRepository) CreateStore(ctx context.Context, s *catalog.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) GetStore(ctx context.Context, id uuid.UUID) (*catalog.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Store), args.Error(1)
}

func (m *MockStoreRepository) ListStoresByUser(ctx context.Context, userID string) ([]catalog.Store, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Store), args.Error(1)
}

func (m *MockStoreRepository) UpdateStore(ctx context.Context, s *catalog.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) DeleteStore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBillboardRepository) CreateBillboard(ctx context.Context, b *catalog.Billboard) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBillboardRepository) GetBillboard(ctx context.Context, storeID, id uuid.UUID) (*catalog.Billboard, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Billboard), args.Error(1)
}

func (m *MockBillboardRepository) ListBillboards(ctx context.Context, storeID uuid.UUID) ([]catalog.Billboard, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Billboard), args.Error(1)
}

func (m *MockBillboardRepository) UpdateBillboard(ctx context.Context, b *catalog.Billboard) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBillboardRepository) DeleteBillboard(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) GetProduct(ctx context.Context, storeID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

// ---- order services ----

func (m *MockCheckoutService) Checkout(ctx context.Context, storeID uuid.UUID, productIDs []string) (string, error) {
	args := m.Called(ctx, storeID, productIDs)
	return args.String(0), args.Error(1)
}

func (m *MockWebhookService) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	args := m.Called(ctx, payload, signature)
	return args.Error(0)
}

func (m *MockRevenueService) GraphRevenue(ctx context.Context, storeID uuid.UUID) ([]order.MonthlyRevenue, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.MonthlyRevenue), args.Error(1)
}

func (m *MockRevenueService) TotalRevenue(ctx context.Context, storeID uuid.UUID) (money.Amount, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(money.Amount), args.Error(1)
}

func (m *MockRevenueService) SalesCount(ctx context.Context, storeID uuid.UUID) (int, error) {
	args := m.Called(ctx, storeID)
	return args.Int(0), args.Error(1)
}

func (m *MockRevenueService) StockCount(ctx context.Context, storeID uuid.UUID) (int, error) {
	args := m.Called(ctx, storeID)
	return args.Int(0), args.Error(1)
}

func (m *MockRevenueService) Overview(ctx context.Context, storeID uuid.UUID) (*order.Overview, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Overview), args.Error(1)
}

func (m *MockRevenueService) ListOrders(ctx context.Context, storeID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}
