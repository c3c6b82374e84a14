package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

// SelectionDayInput is one selected day as supplied by a subscriber.
type SelectionDayInput struct {
	Day       string
	MealTypes []string
}

type SelectionDayDTO struct {
	Day       string   `json:"day"`
	MealTypes []string `json:"meal_types"`
}

type SubscriptionDTO struct {
	ID               string            `json:"id"`
	SubscriberID     uint              `json:"subscriber_id"`
	ChefID           uint              `json:"chef_id"`
	MenuID           string            `json:"menu_id"`
	Selection        []SelectionDayDTO `json:"selection"`
	SubscriptionType string            `json:"subscription_type"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	TotalPrice       decimal.Decimal   `json:"total_price"`
	AmountMinor      int64             `json:"amount_minor"`
	Status           string            `json:"status"`
	AutoRenew        bool              `json:"auto_renew"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type PeriodDTO struct {
	Kind          string          `json:"kind"`
	BilledFrom    string          `json:"billed_from"`
	BilledThrough string          `json:"billed_through"`
	Price         decimal.Decimal `json:"price"`
}

// SubscriptionDetailDTO adds the billed period history to a subscription.
type SubscriptionDetailDTO struct {
	SubscriptionDTO
	Periods     []PeriodDTO     `json:"periods"`
	TotalBilled decimal.Decimal `json:"total_billed"`
}

// QuoteDTO previews the first period of a subscription before payment.
type QuoteDTO struct {
	MenuID           string          `json:"menu_id"`
	SubscriptionType string          `json:"subscription_type"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	AmountMinor      int64           `json:"amount_minor"`
	Currency         string          `json:"currency"`
}

func ToSelectionDTO(selection vo.Selection) []SelectionDayDTO {
	days := selection.Days()
	out := make([]SelectionDayDTO, 0, len(days))
	for _, d := range days {
		meals := make([]string, 0, len(d.MealTypes))
		for _, m := range d.MealTypes {
			meals = append(meals, m.String())
		}
		out = append(out, SelectionDayDTO{Day: d.Day.String(), MealTypes: meals})
	}
	return out
}

func ToSubscriptionDTO(s *subscription.Subscription) *SubscriptionDTO {
	if s == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:               s.SID(),
		SubscriberID:     s.SubscriberID(),
		ChefID:           s.ChefID(),
		MenuID:           s.MenuSID(),
		Selection:        ToSelectionDTO(s.Selection()),
		SubscriptionType: s.SubscriptionType().String(),
		StartDate:        biztime.FormatDate(s.StartDate()),
		EndDate:          biztime.FormatDate(s.EndDate()),
		TotalPrice:       s.TotalPrice(),
		AmountMinor:      subscription.ToMinorUnits(s.TotalPrice()),
		Status:           s.Status().String(),
		AutoRenew:        s.AutoRenew(),
		CreatedAt:        s.CreatedAt(),
		UpdatedAt:        s.UpdatedAt(),
	}
}

func ToSubscriptionDTOList(subs []*subscription.Subscription) []*SubscriptionDTO {
	out := make([]*SubscriptionDTO, 0, len(subs))
	for _, s := range subs {
		out = append(out, ToSubscriptionDTO(s))
	}
	return out
}

func ToSubscriptionDetailDTO(s *subscription.Subscription, periods []*subscription.Period) *SubscriptionDetailDTO {
	detail := &SubscriptionDetailDTO{
		SubscriptionDTO: *ToSubscriptionDTO(s),
		Periods:         make([]PeriodDTO, 0, len(periods)),
		TotalBilled:     subscription.SumPrices(periods),
	}
	for _, p := range periods {
		detail.Periods = append(detail.Periods, PeriodDTO{
			Kind:          string(p.Kind()),
			BilledFrom:    biztime.FormatDate(p.BilledFrom()),
			BilledThrough: biztime.FormatDate(p.BilledThrough()),
			Price:         p.Price(),
		})
	}
	return detail
}
