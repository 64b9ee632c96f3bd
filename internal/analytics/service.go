package analytics

import (
	"log/slog"

	"github.com/commerceops/backoffice/internal"
)

// Summary is the dashboard headline block.
type Summary struct {
	ProductCount  int64   `json:"product_count"`
	OrderCount    int64   `json:"order_count"`
	CustomerCount int64   `json:"customer_count"`
	Revenue       float64 `json:"revenue"`
	LowStockCount int64   `json:"low_stock_count"`
}

type RepositoryAPI interface {
	CountProducts() (int64, error)
	CountOrders() (int64, error)
	CountCustomers() (int64, error)
	RevenueSum() (float64, error)
	CountLowStock(threshold int) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Summary(lowStockThreshold int) (*Summary, error) {
	summary := &Summary{}

	var err error
	if summary.ProductCount, err = s.repo.CountProducts(); err != nil {
		return nil, s.fail("products", err)
	}
	if summary.OrderCount, err = s.repo.CountOrders(); err != nil {
		return nil, s.fail("orders", err)
	}
	if summary.CustomerCount, err = s.repo.CountCustomers(); err != nil {
		return nil, s.fail("customers", err)
	}
	if summary.Revenue, err = s.repo.RevenueSum(); err != nil {
		return nil, s.fail("revenue", err)
	}
	if summary.LowStockCount, err = s.repo.CountLowStock(lowStockThreshold); err != nil {
		return nil, s.fail("low stock", err)
	}

	return summary, nil
}

func (s *Service) fail(part string, err error) error {
	s.logger.Error("failed to build analytics summary", "part", part, "error", err)
	return internal.NewInternalError("failed to build analytics summary", err)
}
