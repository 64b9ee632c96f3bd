package postgres

import (
	customerDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/customer"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/customer"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) customer.RepositoryAPI {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) List(query pagination.PageQuery) ([]*customerDatamodel.Customer, int64, error) {
	scope := r.db.Model(&customerDatamodel.Customer{})
	if query.HasSearch() {
		pattern := "%" + query.SearchPattern() + "%"
		scope = scope.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []*customerDatamodel.Customer
	err := scope.Order("name ASC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&customers).Error
	return customers, total, err
}

func (r *CustomerRepository) GetByID(id int64) (*customerDatamodel.Customer, error) {
	var c customerDatamodel.Customer
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(c *customerDatamodel.Customer) error {
	return r.db.Create(c).Error
}

func (r *CustomerRepository) Update(c *customerDatamodel.Customer) error {
	return r.db.Save(c).Error
}
