package postgres

import (
	"github.com/commerceops/backoffice/internal/brand"
	brandDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/brand"
	"github.com/commerceops/backoffice/internal/core/pagination"
	"gorm.io/gorm"
)

type BrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) brand.RepositoryAPI {
	return &BrandRepository{db: db}
}

func (r *BrandRepository) List(query pagination.PageQuery) ([]*brandDatamodel.Brand, int64, error) {
	scope := r.db.Model(&brandDatamodel.Brand{})
	if query.HasSearch() {
		scope = scope.Where("LOWER(name) LIKE ?", "%"+query.SearchPattern()+"%")
	}

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var brands []*brandDatamodel.Brand
	err := scope.Order("name ASC").
		Offset(query.Offset()).
		Limit(query.PageSize).
		Find(&brands).Error
	return brands, total, err
}

func (r *BrandRepository) GetByID(id int64) (*brandDatamodel.Brand, error) {
	var b brandDatamodel.Brand
	if err := r.db.Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepository) Create(b *brandDatamodel.Brand) error {
	return r.db.Create(b).Error
}

func (r *BrandRepository) Update(b *brandDatamodel.Brand) error {
	return r.db.Save(b).Error
}

func (r *BrandRepository) Delete(id int64) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&brandDatamodel.Brand{})
	return res.RowsAffected, res.Error
}
