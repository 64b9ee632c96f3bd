package postgres

import (
	orderDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/order"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/order"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.RepositoryAPI {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(query pagination.PageQuery) ([]*orderDatamodel.Order, int64, error) {
	scope := r.db.Model(&orderDatamodel.Order{})
	if query.HasSearch() {
		pattern := "%" + query.SearchPattern() + "%"
		scope = scope.
			Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
			Where("LOWER(orders.number) LIKE ? OR LOWER(customers.name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*orderDatamodel.Order
	err := scope.Order("orders.number ASC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) GetByID(id int64) (*orderDatamodel.Order, []*orderDatamodel.OrderItem, error) {
	var o orderDatamodel.Order
	if err := r.db.Where("id = ?", id).First(&o).Error; err != nil {
		return nil, nil, err
	}

	var items []*orderDatamodel.OrderItem
	if err := r.db.Where("order_id = ?", id).Order("id ASC").Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &o, items, nil
}

func (r *OrderRepository) Create(o *orderDatamodel.Order, items []*orderDatamodel.OrderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = o.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OrderRepository) UpdateStatus(id int64, status orderDatamodel.Status) (int64, error) {
	res := r.db.Model(&orderDatamodel.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) Delete(id int64) (int64, error) {
	var rows int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&orderDatamodel.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&orderDatamodel.Order{})
		rows = res.RowsAffected
		return res.Error
	})
	return rows, err
}
