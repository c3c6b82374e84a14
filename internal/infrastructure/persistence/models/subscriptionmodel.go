package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
type SubscriptionModel struct {
	ID               uint            `gorm:"primarykey"`
	SID              string          `gorm:"column:sid;uniqueIndex;not null;size:50;comment:sub_xxx"`
	SubscriberID     uint            `gorm:"not null;index:idx_subscription_subscriber"`
	ChefID           uint            `gorm:"not null;index:idx_subscription_chef"`
	MenuID           uint            `gorm:"not null;index:idx_subscription_menu"`
	MenuSID          string          `gorm:"column:menu_sid;not null;size:50"`
	Selection        datatypes.JSON  `gorm:"not null"`
	SubscriptionType string          `gorm:"not null;size:20"`
	StartDate        time.Time       `gorm:"not null"`
	EndDate          time.Time       `gorm:"not null;index:idx_subscription_end_date"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status           string          `gorm:"not null;size:20;index:idx_subscription_status"`
	AutoRenew        bool            `gorm:"not null;default:false"`
	ContactEmail     string          `gorm:"size:255"`
	Version          int             `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SelectionDayRecord is one element of SubscriptionModel.Selection.
type SelectionDayRecord struct {
	Day       string   `json:"day"`
	MealTypes []string `json:"meal_types"`
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
