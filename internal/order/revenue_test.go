package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/mocks"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/order"
)

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestMonthlyTotals_NoSales(t *testing.T) {
	graph := order.MonthlyTotals(nil)
	require.Len(t, graph, 12)
	for i, entry := range graph {
		assert.Equal(t, monthNames[i], entry.Name)
		assert.Equal(t, money.Amount(0), entry.Total)
	}
}

func TestMonthlyTotals_BucketsAcrossYears(t *testing.T) {
	lines := []order.RevenueLine{
		{OrderCreatedAt: at(2023, time.March, 3), Price: 1000},
		{OrderCreatedAt: at(2024, time.March, 28), Price: 2550},
		{OrderCreatedAt: at(2024, time.December, 31), Price: 199},
		{OrderCreatedAt: at(2024, time.January, 1), Price: 1},
	}

	graph := order.MonthlyTotals(lines)
	require.Len(t, graph, 12)
	assert.Equal(t, money.Amount(1), graph[0].Total)
	assert.Equal(t, money.Amount(3550), graph[2].Total)
	assert.Equal(t, money.Amount(199), graph[11].Total)

	var sum money.Amount
	for _, entry := range graph {
		sum += entry.Total
	}
	assert.Equal(t, money.Amount(3750), sum)
}

func TestMonthlyTotals_UsesUTCMonth(t *testing.T) {
	tz := time.FixedZone("UTC+3", 3*60*60)
	lines := []order.RevenueLine{
		// 01:00 on Feb 1 at UTC+3 is still January in UTC.
		{OrderCreatedAt: time.Date(2024, time.February, 1, 1, 0, 0, 0, tz), Price: 500},
	}

	graph := order.MonthlyTotals(lines)
	assert.Equal(t, money.Amount(500), graph[0].Total)
	assert.Equal(t, money.Amount(0), graph[1].Total)
}

func TestRevenueService_Overview(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	service := order.NewRevenueService(repo)
	storeID := uuid.Must(uuid.NewV4())

	repo.On("ListPaidLines", mock.Anything, storeID).Return([]order.RevenueLine{
		{OrderCreatedAt: at(2024, time.May, 5), Price: 1000},
		{OrderCreatedAt: at(2024, time.May, 6), Price: 2550},
	}, nil).Once()
	repo.On("CountPaidOrders", mock.Anything, storeID).Return(1, nil).Once()
	repo.On("CountStockProducts", mock.Anything, storeID).Return(7, nil).Once()

	overview, err := service.Overview(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(3550), overview.TotalRevenue)
	assert.Equal(t, 1, overview.SalesCount)
	assert.Equal(t, 7, overview.StockCount)
	require.Len(t, overview.GraphRevenue, 12)
	assert.Equal(t, money.Amount(3550), overview.GraphRevenue[4].Total)
	repo.AssertExpectations(t)
}

func TestRevenueService_Overview_Error(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	service := order.NewRevenueService(repo)
	storeID := uuid.Must(uuid.NewV4())
	boom := errors.New("connection reset")

	repo.On("ListPaidLines", mock.Anything, storeID).Return(nil, boom).Maybe()
	repo.On("CountPaidOrders", mock.Anything, storeID).Return(0, nil).Maybe()
	repo.On("CountStockProducts", mock.Anything, storeID).Return(0, nil).Maybe()

	overview, err := service.Overview(context.Background(), storeID)
	assert.Nil(t, overview)
	assert.ErrorIs(t, err, boom)
}

func TestRevenueService_TotalsAndCounts(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	service := order.NewRevenueService(repo)
	storeID := uuid.Must(uuid.NewV4())

	repo.On("ListPaidLines", mock.Anything, storeID).Return([]order.RevenueLine{
		{OrderCreatedAt: at(2024, time.June, 1), Price: 1234},
		{OrderCreatedAt: at(2025, time.June, 1), Price: 66},
	}, nil)
	repo.On("CountPaidOrders", mock.Anything, storeID).Return(2, nil).Once()
	repo.On("CountStockProducts", mock.Anything, storeID).Return(0, nil).Once()

	total, err := service.TotalRevenue(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, "13.00", total.String())

	graph, err := service.GraphRevenue(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, money.Amount(1300), graph[5].Total)

	sales, err := service.SalesCount(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, 2, sales)

	stock, err := service.StockCount(context.Background(), storeID)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}
