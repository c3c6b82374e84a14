package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/shared/constants"
)

// DeliveryModel is one meal item handed over for a subscription. The unique
// index carries the one-record-per-meal rule.
type DeliveryModel struct {
	ID              uint      `gorm:"primarykey"`
	SubscriptionID  uint      `gorm:"not null;uniqueIndex:idx_delivery_meal,priority:1"`
	SubscriptionSID string    `gorm:"column:subscription_sid;not null;size:50"`
	ChefID          uint      `gorm:"not null;index:idx_delivery_chef"`
	SubscriberID    uint      `gorm:"not null;index:idx_delivery_subscriber"`
	DeliveryDate    time.Time `gorm:"not null;uniqueIndex:idx_delivery_meal,priority:2"`
	DayOfWeek       string    `gorm:"not null;size:10;uniqueIndex:idx_delivery_meal,priority:3"`
	MealType        string    `gorm:"not null;size:10;uniqueIndex:idx_delivery_meal,priority:4"`
	ItemName        string    `gorm:"not null;size:200;uniqueIndex:idx_delivery_meal,priority:5"`
	Quantity        int       `gorm:"not null;default:1"`
	Status          string    `gorm:"not null;size:20;index:idx_delivery_status"`
	DeliveredBy     uint      `gorm:"not null;default:0"`
	DeliveredAt     *time.Time
	Notes           string `gorm:"size:500"`
	Version         int    `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (DeliveryModel) TableName() string {
	return constants.TableDeliveries
}

func (d *DeliveryModel) BeforeCreate(tx *gorm.DB) error {
	if d.Version == 0 {
		d.Version = 1
	}
	return nil
}
