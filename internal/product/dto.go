package product

import "time"

type ProductRequest struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"image_url,omitempty"`
	CategoryID  int64   `json:"category_id"`
	BrandID     int64   `json:"brand_id"`
}

type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	StockStatus string    `json:"stock_status"`
	ImageURL    *string   `json:"image_url,omitempty"`
	CategoryID  int64     `json:"category_id"`
	BrandID     int64     `json:"brand_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
