package subscription

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

type PeriodKind string

const (
	PeriodKindCreated PeriodKind = "created"
	PeriodKindRenewed PeriodKind = "renewed"
)

// Period is an immutable record of one billed period. The subscription only
// holds the current period's price; the sum of its periods is what was billed
// over its lifetime.
type Period struct {
	id             uint
	subscriptionID uint
	kind           PeriodKind
	billedFrom     time.Time
	billedThrough  time.Time
	price          decimal.Decimal
	createdAt      time.Time
}

// NewPeriod records a period covering billedFrom through billedThrough
// inclusive. subscriptionID may be zero for a subscription not yet stored;
// use NewInitialPeriod after it has been.
func NewPeriod(subscriptionID uint, kind PeriodKind, billedFrom, billedThrough time.Time, price decimal.Decimal) (*Period, error) {
	if kind != PeriodKindCreated && kind != PeriodKindRenewed {
		return nil, fmt.Errorf("invalid period kind: %q", kind)
	}
	if billedThrough.Before(billedFrom) {
		return nil, fmt.Errorf("period ends before it starts: %s > %s",
			biztime.FormatDate(billedFrom), biztime.FormatDate(billedThrough))
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("period price cannot be negative: %s", price)
	}

	return &Period{
		subscriptionID: subscriptionID,
		kind:           kind,
		billedFrom:     biztime.Truncate(billedFrom),
		billedThrough:  biztime.Truncate(billedThrough),
		price:          price,
		createdAt:      time.Now().UTC(),
	}, nil
}

// NewInitialPeriod records the first period of a stored subscription.
func NewInitialPeriod(s *Subscription) (*Period, error) {
	if s.ID() == 0 {
		return nil, fmt.Errorf("subscription must be persisted before recording its first period")
	}
	return NewPeriod(s.ID(), PeriodKindCreated, s.StartDate(), biztime.AddDays(s.EndDate(), -1), s.TotalPrice())
}

func ReconstructPeriod(
	id, subscriptionID uint,
	kind PeriodKind,
	billedFrom, billedThrough time.Time,
	price decimal.Decimal,
	createdAt time.Time,
) *Period {
	return &Period{
		id:             id,
		subscriptionID: subscriptionID,
		kind:           kind,
		billedFrom:     biztime.Truncate(billedFrom),
		billedThrough:  biztime.Truncate(billedThrough),
		price:          price,
		createdAt:      createdAt,
	}
}

func (p *Period) ID() uint                 { return p.id }
func (p *Period) SubscriptionID() uint     { return p.subscriptionID }
func (p *Period) Kind() PeriodKind         { return p.kind }
func (p *Period) BilledFrom() time.Time    { return p.billedFrom }
func (p *Period) BilledThrough() time.Time { return p.billedThrough }
func (p *Period) Price() decimal.Decimal   { return p.price }
func (p *Period) CreatedAt() time.Time     { return p.createdAt }

// SetID sets the period ID (only for persistence layer use)
func (p *Period) SetID(id uint) {
	p.id = id
}

// SumPrices totals the prices of periods.
func SumPrices(periods []*Period) decimal.Decimal {
	total := decimal.Zero
	for _, p := range periods {
		total = total.Add(p.price)
	}
	return total
}
