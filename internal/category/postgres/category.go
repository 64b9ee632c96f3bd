package postgres

import (
	"github.com/commerceops/backoffice/internal/category"
	categoryDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/category"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(query pagination.PageQuery) ([]*categoryDatamodel.Category, int64, error) {
	scope := r.db.Model(&categoryDatamodel.Category{})
	if query.HasSearch() {
		scope = scope.Where("LOWER(name) LIKE ?", "%"+query.SearchPattern()+"%")
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*categoryDatamodel.Category
	err := scope.Order("name ASC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&categories).Error
	return categories, total, err
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	var c categoryDatamodel.Category
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(c *categoryDatamodel.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) Update(c *categoryDatamodel.Category) error {
	return r.db.Save(c).Error
}

func (r *CategoryRepository) Delete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&categoryDatamodel.Category{})
	return res.RowsAffected, res.Error
}
