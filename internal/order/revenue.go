package order

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/money"
	"golang.org/x/sync/errgroup"
)

type RevenueService interface {
	// GraphRevenue returns twelve entries, Jan through Dec, summed across all years.
	GraphRevenue(ctx context.Context, storeID uuid.UUID) ([]MonthlyRevenue, error)
	TotalRevenue(ctx context.Context, storeID uuid.UUID) (money.Amount, error)
	SalesCount(ctx context.Context, storeID uuid.UUID) (int, error)
	StockCount(ctx context.Context, storeID uuid.UUID) (int, error)
	Overview(ctx context.Context, storeID uuid.UUID) (*Overview, error)
	ListOrders(ctx context.Context, storeID uuid.UUID) ([]Order, error)
}

type revenueService struct {
	repo Repository
}

func NewRevenueService(repo Repository) RevenueService {
	return &revenueService{repo: repo}
}

// MonthlyTotals buckets paid lines by the calendar month (UTC) of their order.
func MonthlyTotals(lines []RevenueLine) []MonthlyRevenue {
	var buckets [12]money.Amount
	for _, line := range lines {
		buckets[line.OrderCreatedAt.UTC().Month()-1] += line.Price
	}

	graph := make([]MonthlyRevenue, 12)
	for i := range graph {
		graph[i] = MonthlyRevenue{
			Name:  time.Month(i + 1).String()[:3],
			Total: buckets[i],
		}
	}
	return graph
}

func sumLines(lines []RevenueLine) money.Amount {
	prices := make([]money.Amount, len(lines))
	for i, line := range lines {
		prices[i] = line.Price
	}
	return money.Sum(prices...)
}

func (s *revenueService) GraphRevenue(ctx context.Context, storeID uuid.UUID) ([]MonthlyRevenue, error) {
	lines, err := s.repo.ListPaidLines(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load paid orders: %w", err)
	}
	return MonthlyTotals(lines), nil
}

func (s *revenueService) TotalRevenue(ctx context.Context, storeID uuid.UUID) (money.Amount, error) {
	lines, err := s.repo.ListPaidLines(ctx, storeID)
	if err != nil {
		return 0, fmt.Errorf("failed to load paid orders: %w", err)
	}
	return sumLines(lines), nil
}

func (s *revenueService) SalesCount(ctx context.Context, storeID uuid.UUID) (int, error) {
	return s.repo.CountPaidOrders(ctx, storeID)
}

func (s *revenueService) StockCount(ctx context.Context, storeID uuid.UUID) (int, error) {
	return s.repo.CountStockProducts(ctx, storeID)
}

func (s *revenueService) Overview(ctx context.Context, storeID uuid.UUID) (*Overview, error) {
	var (
		lines []RevenueLine
		sales int
		stock int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lines, err = s.repo.ListPaidLines(gctx, storeID)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.repo.CountPaidOrders(gctx, storeID)
		return err
	})
	g.Go(func() error {
		var err error
		stock, err = s.repo.CountStockProducts(gctx, storeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build overview for store %s: %w", storeID, err)
	}

	return &Overview{
		TotalRevenue: sumLines(lines),
		SalesCount:   sales,
		StockCount:   stock,
		GraphRevenue: MonthlyTotals(lines),
	}, nil
}

func (s *revenueService) ListOrders(ctx context.Context, storeID uuid.UUID) ([]Order, error) {
	return s.repo.ListOrders(ctx, storeID)
}
