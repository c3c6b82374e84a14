package delivery

import (
	"time"

	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
)

const EventMarkedDelivered = "delivery.marked_delivered"

type MarkedDeliveredEvent struct {
	events.BaseEvent
	SubscriptionSID string
	SubscriberID    uint
	ChefID          uint
	ContactEmail    string
	DeliveryDate    time.Time
	DayOfWeek       string
	MealType        string
	ItemName        string
	Quantity        int
}

// NewMarkedDeliveredEvent is keyed by the subscription so that notifications
// group with the other subscription events.
func NewMarkedDeliveredEvent(d *Delivery, contactEmail string) MarkedDeliveredEvent {
	return MarkedDeliveredEvent{
		BaseEvent:       events.NewBaseEvent(d.SubscriptionSID(), EventMarkedDelivered),
		SubscriptionSID: d.SubscriptionSID(),
		SubscriberID:    d.SubscriberID(),
		ChefID:          d.ChefID(),
		ContactEmail:    contactEmail,
		DeliveryDate:    d.DeliveryDate(),
		DayOfWeek:       d.DayOfWeek().String(),
		MealType:        d.MealType().String(),
		ItemName:        d.ItemName(),
		Quantity:        d.Quantity(),
	}
}
