package product

import "time"

// Product is the persisted shape of an inventory item.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	SKU         string    `json:"sku" gorm:"column:sku;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"column:description"`
	Price       float64   `json:"price" gorm:"column:price;not null"`
	Stock       int       `json:"stock" gorm:"column:stock;not null"`
	ImageURL    *string   `json:"image_url,omitempty" gorm:"column:image_url"`
	CategoryID  int64     `json:"category_id" gorm:"column:category_id;not null"`
	BrandID     int64     `json:"brand_id" gorm:"column:brand_id;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// Stock level boundaries for the dashboard status badges.
const LowStockThreshold = 10

type StockStatus string

const (
	StockStatusIn  StockStatus = "in_stock"
	StockStatusLow StockStatus = "low_stock"
	StockStatusOut StockStatus = "out_of_stock"
)

// Status derives the stock badge from the on-hand count.
func (p *Product) Status() StockStatus {
	switch {
	case p.Stock <= 0:
		return StockStatusOut
	case p.Stock < LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}
