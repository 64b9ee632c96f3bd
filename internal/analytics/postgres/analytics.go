package postgres

import (
	"github.com/commerceops/backoffice/internal/analytics"
	customerDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/customer"
	orderDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/order"
	productDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/product"
	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) analytics.RepositoryAPI {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) CountProducts() (int64, error) {
	var count int64
	err := r.db.Model(&productDatamodel.Product{}).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepository) CountOrders() (int64, error) {
	var count int64
	err := r.db.Model(&orderDatamodel.Order{}).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepository) CountCustomers() (int64, error) {
	var count int64
	err := r.db.Model(&customerDatamodel.Customer{}).Count(&count).Error
	return count, err
}

// RevenueSum totals every order that reached a paid state. Cancelled and
// still-pending orders do not count as revenue.
func (r *AnalyticsRepository) RevenueSum() (float64, error) {
	var sum float64
	err := r.db.Model(&orderDatamodel.Order{}).
		Where("status IN ?", []orderDatamodel.Status{
			orderDatamodel.StatusPaid,
			orderDatamodel.StatusShipped,
			orderDatamodel.StatusDelivered,
		}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *AnalyticsRepository) CountLowStock(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&productDatamodel.Product{}).
		Where("stock < ?", threshold).
		Count(&count).Error
	return count, err
}
