package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions lists the legal next states per status. Terminal states map
// to an empty set.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a customer purchase.
type Order struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	Number     string    `json:"number" gorm:"column:number;uniqueIndex;not null"`
	CustomerID int64     `json:"customer_id" gorm:"column:customer_id;not null"`
	Status     Status    `json:"status" gorm:"column:status;default:pending"`
	Total      float64   `json:"total" gorm:"column:total;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line inside an order. The product reference is
// what blocks deleting a product still present on an order.
type OrderItem struct {
	ID        int64   `json:"id" gorm:"primaryKey"`
	OrderID   int64   `json:"order_id" gorm:"column:order_id;not null"`
	ProductID int64   `json:"product_id" gorm:"column:product_id;not null"`
	Quantity  int     `json:"quantity" gorm:"column:quantity;not null"`
	UnitPrice float64 `json:"unit_price" gorm:"column:unit_price;not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
