package events

import (
	"time"

	"github.com/google/uuid"
)

// Change-notification event types, one per managed collection. Services
// publish after every successful mutation; list screens subscribe to keep
// reference lists current.
const (
	ProductChanged  = "product.changed"
	CategoryChanged = "category.changed"
	BrandChanged    = "brand.changed"
	OrderChanged    = "order.changed"
	CustomerChanged = "customer.changed"
)

// ChangeAction names what happened to the entity.
type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionUpdated ChangeAction = "updated"
	ActionDeleted ChangeAction = "deleted"
)

// NewEntityChanged builds a change notification for one entity.
func NewEntityChanged(eventType string, action ChangeAction, entityID int64, name string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"action": string(action),
			"id":     entityID,
			"name":   name,
		},
	}
}
