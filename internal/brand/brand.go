package brand

import (
	"time"

	brandDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/brand"
)

type Brand struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBrand(name string) *Brand {
	now := time.Now()
	return &Brand{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *Brand) ToResponse() BrandResponse {
	return BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func ToDataModel(b *Brand) *brandDatamodel.Brand {
	return &brandDatamodel.Brand{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func FromDataModel(b *brandDatamodel.Brand) *Brand {
	return &Brand{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
