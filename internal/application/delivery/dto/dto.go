package dto

import (
	"time"

	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

type DeliveryDTO struct {
	ID             uint       `json:"id"`
	SubscriptionID string     `json:"subscription_id"`
	ChefID         uint       `json:"chef_id"`
	SubscriberID   uint       `json:"subscriber_id"`
	DeliveryDate   string     `json:"delivery_date"`
	DayOfWeek      string     `json:"day_of_week"`
	MealType       string     `json:"meal_type"`
	ItemName       string     `json:"item_name"`
	Quantity       int        `json:"quantity"`
	Status         string     `json:"status"`
	DeliveredBy    uint       `json:"delivered_by,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// MarkDeliveredResult tells a caller whether the call changed anything.
type MarkDeliveredResult struct {
	Delivery         *DeliveryDTO `json:"delivery"`
	AlreadyDelivered bool         `json:"already_delivered"`
}

func ToDeliveryDTO(d *delivery.Delivery) *DeliveryDTO {
	if d == nil {
		return nil
	}
	return &DeliveryDTO{
		ID:             d.ID(),
		SubscriptionID: d.SubscriptionSID(),
		ChefID:         d.ChefID(),
		SubscriberID:   d.SubscriberID(),
		DeliveryDate:   biztime.FormatDate(d.DeliveryDate()),
		DayOfWeek:      d.DayOfWeek().String(),
		MealType:       d.MealType().String(),
		ItemName:       d.ItemName(),
		Quantity:       d.Quantity(),
		Status:         d.Status().String(),
		DeliveredBy:    d.DeliveredBy(),
		DeliveredAt:    d.DeliveredAt(),
		Notes:          d.Notes(),
		CreatedAt:      d.CreatedAt(),
		UpdatedAt:      d.UpdatedAt(),
	}
}

func ToDeliveryDTOs(deliveries []*delivery.Delivery) []*DeliveryDTO {
	out := make([]*DeliveryDTO, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, ToDeliveryDTO(d))
	}
	return out
}
