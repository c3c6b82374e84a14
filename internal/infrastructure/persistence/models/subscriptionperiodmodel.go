package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/shared/constants"
)

// SubscriptionPeriodModel is an append-only billed period record.
type SubscriptionPeriodModel struct {
	ID             uint            `gorm:"primarykey"`
	SubscriptionID uint            `gorm:"not null;index:idx_period_subscription"`
	Kind           string          `gorm:"not null;size:20"`
	BilledFrom     time.Time       `gorm:"not null"`
	BilledThrough  time.Time       `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
}

func (SubscriptionPeriodModel) TableName() string {
	return constants.TableSubscriptionPeriods
}
