package order

import (
	"fmt"
	"strings"
	"time"

	orderDatamodel "github.com/commerceops/backoffice/internal/core/datamodel/order"
	"github.com/google/uuid"
)

type Order struct {
	ID         int64
	Number     string
	CustomerID int64
	Status     orderDatamodel.Status
	Total      float64
	Items      []Item
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Item struct {
	ID        int64
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// NewOrderNumber builds a human-readable unique order reference.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s", suffix)
}

func (o *Order) ToResponse() OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  float64(item.Quantity) * item.UnitPrice,
		})
	}
	return OrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		Total:      o.Total,
		Items:      items,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func FromDataModel(o *orderDatamodel.Order, items []*orderDatamodel.OrderItem) *Order {
	domainItems := make([]Item, 0, len(items))
	for _, item := range items {
		domainItems = append(domainItems, Item{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return &Order{
		ID:         o.ID,
		Number:     o.Number,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Total,
		Items:      domainItems,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
