package subscription

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

type priceKey struct {
	day  menuvo.Weekday
	meal menuvo.MealType
}

// PriceLookup maps (day, meal type) to a price. It is built per call and
// never shared.
type PriceLookup map[priceKey]decimal.Decimal

// BuildPriceLookup indexes a schedule. When a (day, meal type) repeats the
// later item wins. Any item with a missing or negative price makes the whole
// menu unusable for pricing.
func BuildPriceLookup(schedule []menu.ScheduleItem) (PriceLookup, error) {
	lookup := make(PriceLookup, len(schedule))
	for idx, item := range schedule {
		if !item.Price.Valid {
			return nil, fmt.Errorf("%w: item %d (%s %s) has no price", ErrInvalidMenuData, idx, item.Day, item.MealType)
		}
		if item.Price.Decimal.IsNegative() {
			return nil, fmt.Errorf("%w: item %d (%s %s) has negative price %s",
				ErrInvalidMenuData, idx, item.Day, item.MealType, item.Price.Decimal)
		}
		lookup[priceKey{day: item.Day, meal: item.MealType}] = item.Price.Decimal
	}
	return lookup, nil
}

// Price returns the price of a meal, zero when the menu does not offer it.
func (l PriceLookup) Price(day menuvo.Weekday, meal menuvo.MealType) decimal.Decimal {
	return l[priceKey{day: day, meal: meal}]
}

// DailyCosts returns the cost of one occurrence of each selected weekday.
func DailyCosts(lookup PriceLookup, selection vo.Selection) map[menuvo.Weekday]decimal.Decimal {
	costs := make(map[menuvo.Weekday]decimal.Decimal)
	for _, d := range selection.Days() {
		total := costs[d.Day]
		for _, meal := range d.MealTypes {
			total = total.Add(lookup.Price(d.Day, meal))
		}
		costs[d.Day] = total
	}
	return costs
}

// ComputePrice prices one billing period. Weekly is a single pass over the
// selection. Monthly walks every calendar day from periodStart through
// periodEnd, both inclusive, adding the daily cost of each selected weekday.
// No rounding is applied.
func ComputePrice(
	schedule []menu.ScheduleItem,
	selection vo.Selection,
	subscriptionType vo.SubscriptionType,
	periodStart, periodEnd time.Time,
) (decimal.Decimal, error) {
	lookup, err := BuildPriceLookup(schedule)
	if err != nil {
		return decimal.Zero, err
	}
	return priceWithLookup(lookup, selection, subscriptionType, periodStart, periodEnd)
}

func priceWithLookup(
	lookup PriceLookup,
	selection vo.Selection,
	subscriptionType vo.SubscriptionType,
	periodStart, periodEnd time.Time,
) (decimal.Decimal, error) {
	costs := DailyCosts(lookup, selection)

	switch subscriptionType {
	case vo.TypeWeekly:
		total := decimal.Zero
		for _, c := range costs {
			total = total.Add(c)
		}
		return total, nil
	case vo.TypeMonthly:
		total := decimal.Zero
		end := biztime.Truncate(periodEnd)
		for day := biztime.Truncate(periodStart); !day.After(end); day = biztime.AddDays(day, 1) {
			if c, ok := costs[menuvo.WeekdayOf(day)]; ok {
				total = total.Add(c)
			}
		}
		return total, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown subscription type %q", ErrInvalidSubscription, subscriptionType)
	}
}

// FirstPeriod returns the end date and price of a subscription starting on
// start. The period ends seven days or one calendar month later and is priced
// over [start, end).
func FirstPeriod(
	schedule []menu.ScheduleItem,
	selection vo.Selection,
	subscriptionType vo.SubscriptionType,
	start time.Time,
) (time.Time, decimal.Decimal, error) {
	if !subscriptionType.IsValid() {
		return time.Time{}, decimal.Zero, fmt.Errorf("%w: invalid subscription type %q", ErrInvalidSubscription, subscriptionType)
	}
	start = biztime.Truncate(start)
	end := subscriptionType.NextEnd(start)
	price, err := ComputePrice(schedule, selection, subscriptionType, start, biztime.AddDays(end, -1))
	if err != nil {
		return time.Time{}, decimal.Zero, err
	}
	return end, price, nil
}

// ToMinorUnits rounds a price to the currency's minor unit (cents) for
// external consumers such as payment intents.
func ToMinorUnits(price decimal.Decimal) int64 {
	return price.Round(2).Shift(2).IntPart()
}
