package postgres

import (
	productDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/product"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"github.com/commerceops/backoffice/internal/product"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) product.RepositoryAPI {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(query pagination.PageQuery) ([]*productDatamodel.Product, int64, error) {
	scope := r.db.Model(&productDatamodel.Product{})
	if query.HasSearch() {
		pattern := "%" + query.SearchPattern() + "%"
		scope = scope.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*productDatamodel.Product
	err := scope.Order("name ASC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&products).Error
	return products, total, err
}

func (r *ProductRepository) GetByID(id int64) (*productDatamodel.Product, error) {
	var p productDatamodel.Product
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(p *productDatamodel.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Update(p *productDatamodel.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&productDatamodel.Product{})
	return res.RowsAffected, res.Error
}

func (r *ProductRepository) CountLowStock(threshold int) (int64, error) {
	var count int64
	err := r.db.Model(&productDatamodel.Product{}).
		Where("stock < ?", threshold).
		Count(&count).Error
	return count, err
}
