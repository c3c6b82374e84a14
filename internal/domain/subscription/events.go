package subscription

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
)

const (
	EventStatusChanged = "subscription.status_changed"
	EventRenewed       = "subscription.renewed"
)

type StatusChangedEvent struct {
	events.BaseEvent
	SubscriberID uint
	ChefID       uint
	ContactEmail string
	OldStatus    string
	NewStatus    string
	ChangedBy    uint
}

func NewStatusChangedEvent(s *Subscription, oldStatus string, changedBy uint) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent:    events.NewBaseEvent(s.SID(), EventStatusChanged),
		SubscriberID: s.SubscriberID(),
		ChefID:       s.ChefID(),
		ContactEmail: s.ContactEmail(),
		OldStatus:    oldStatus,
		NewStatus:    s.Status().String(),
		ChangedBy:    changedBy,
	}
}

type RenewedEvent struct {
	events.BaseEvent
	SubscriberID uint
	ChefID       uint
	ContactEmail string
	NewEndDate   time.Time
	TotalPrice   decimal.Decimal
}

func NewRenewedEvent(s *Subscription) RenewedEvent {
	return RenewedEvent{
		BaseEvent:    events.NewBaseEvent(s.SID(), EventRenewed),
		SubscriberID: s.SubscriberID(),
		ChefID:       s.ChefID(),
		ContactEmail: s.ContactEmail(),
		NewEndDate:   s.EndDate(),
		TotalPrice:   s.TotalPrice(),
	}
}
