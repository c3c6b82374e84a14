package delivery

import (
	"context"
	"time"

	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
)

// Key identifies one meal item of one subscription on one calendar day. At
// most one delivery exists per key.
type Key struct {
	SubscriptionID uint
	Date           time.Time
	Day            menuvo.Weekday
	Meal           menuvo.MealType
	ItemName       string
}

// Repository persists deliveries. FindByKey returns (nil, nil) when nothing
// matches. Create fails with ErrDuplicateDelivery when the key is taken and
// Update with ErrConcurrentUpdate on a stale version.
type Repository interface {
	Create(ctx context.Context, delivery *Delivery) error
	Update(ctx context.Context, delivery *Delivery) error
	FindByKey(ctx context.Context, key Key) (*Delivery, error)
	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*Delivery, error)
}
