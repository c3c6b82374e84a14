package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
)

func TestComputePrice_EmptySelectionIsZero(t *testing.T) {
	for _, typ := range []vo.SubscriptionType{vo.TypeWeekly, vo.TypeMonthly} {
		price, err := ComputePrice(mondaySchedule(), vo.Selection{}, typ, day(2026, 3, 2), day(2026, 4, 1))
		require.NoError(t, err)
		assert.True(t, price.IsZero(), typ)
	}
}

func TestComputePrice_WeeklyExample(t *testing.T) {
	price, err := ComputePrice(mondaySchedule(), mondaySelection(t), vo.TypeWeekly, day(2026, 2, 2), day(2026, 2, 8))
	require.NoError(t, err)
	assertDecimal(t, 250, price)
}

func TestComputePrice_UnofferedMealsContributeZero(t *testing.T) {
	sel, err := vo.NewSelection([]vo.SelectionDay{
		{Day: menuvo.Monday, MealTypes: []menuvo.MealType{menuvo.Lunch, menuvo.Dinner}},
		{Day: menuvo.Sunday, MealTypes: []menuvo.MealType{menuvo.Breakfast}},
	})
	require.NoError(t, err)

	price, err := ComputePrice(mondaySchedule(), sel, vo.TypeWeekly, day(2026, 2, 2), day(2026, 2, 8))
	require.NoError(t, err)
	assertDecimal(t, 150, price)
}

func TestComputePrice_WeeklyIndependentOfOrder(t *testing.T) {
	schedule := append(mondaySchedule(),
		item(menuvo.Wednesday, menuvo.Dinner, 220),
		item(menuvo.Friday, menuvo.Lunch, 90),
	)
	days := []vo.SelectionDay{
		{Day: menuvo.Monday, MealTypes: []menuvo.MealType{menuvo.Breakfast, menuvo.Lunch}},
		{Day: menuvo.Wednesday, MealTypes: []menuvo.MealType{menuvo.Dinner}},
		{Day: menuvo.Friday, MealTypes: []menuvo.MealType{menuvo.Lunch}},
	}
	reversed := []vo.SelectionDay{
		{Day: menuvo.Friday, MealTypes: []menuvo.MealType{menuvo.Lunch}},
		{Day: menuvo.Wednesday, MealTypes: []menuvo.MealType{menuvo.Dinner}},
		{Day: menuvo.Monday, MealTypes: []menuvo.MealType{menuvo.Lunch, menuvo.Breakfast}},
	}

	a, err := vo.NewSelection(days)
	require.NoError(t, err)
	b, err := vo.NewSelection(reversed)
	require.NoError(t, err)

	pa, err := ComputePrice(schedule, a, vo.TypeWeekly, day(2026, 2, 2), day(2026, 2, 8))
	require.NoError(t, err)
	pb, err := ComputePrice(schedule, b, vo.TypeWeekly, day(2026, 2, 2), day(2026, 2, 8))
	require.NoError(t, err)

	assertDecimal(t, 560, pa)
	assert.True(t, pa.Equal(pb))
}

func TestComputePrice_DuplicateScheduleKeysLastWins(t *testing.T) {
	schedule := append(mondaySchedule(), item(menuvo.Monday, menuvo.Lunch, 200))

	price, err := ComputePrice(schedule, mondaySelection(t), vo.TypeWeekly, day(2026, 2, 2), day(2026, 2, 8))
	require.NoError(t, err)
	assertDecimal(t, 300, price)
}

func TestComputePrice_MonthlyCalendarWalk(t *testing.T) {
	weekly, err := ComputePrice(mondaySchedule(), mondaySelection(t), vo.TypeWeekly, day(2026, 3, 2), day(2026, 3, 8))
	require.NoError(t, err)
	weeklyTimesFour := weekly.Mul(decimal.NewFromInt(4))

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int64
	}{
		// Feb 2 - Mar 1 2026 holds Mondays 2, 9, 16, 23
		{"four mondays", day(2026, time.February, 2), day(2026, time.March, 1), 1000},
		// Mar 2 - Apr 1 2026 holds Mondays 2, 9, 16, 23, 30
		{"five mondays", day(2026, time.March, 2), day(2026, time.April, 1), 1250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := ComputePrice(mondaySchedule(), mondaySelection(t), vo.TypeMonthly, tt.from, tt.to)
			require.NoError(t, err)
			assertDecimal(t, tt.want, price)
		})
	}

	fiveMondays, err := ComputePrice(mondaySchedule(), mondaySelection(t), vo.TypeMonthly, day(2026, 3, 2), day(2026, 4, 1))
	require.NoError(t, err)
	assert.False(t, fiveMondays.Equal(weeklyTimesFour))
}

func TestComputePrice_MonthlyBoundsAreInclusive(t *testing.T) {
	price, err := ComputePrice(mondaySchedule(), mondaySelection(t), vo.TypeMonthly, day(2026, 2, 2), day(2026, 2, 2))
	require.NoError(t, err)
	assertDecimal(t, 250, price)

	price, err = ComputePrice(mondaySchedule(), mondaySelection(t), vo.TypeMonthly, day(2026, 2, 3), day(2026, 2, 8))
	require.NoError(t, err)
	assert.True(t, price.IsZero())
}

func TestComputePrice_InvalidMenuData(t *testing.T) {
	missing := mondaySchedule()
	missing[0].Price = decimal.NullDecimal{}

	negative := mondaySchedule()
	negative[1].Price = decimal.NewNullDecimal(decimal.NewFromInt(-5))

	for name, schedule := range map[string][]menu.ScheduleItem{"missing price": missing, "negative price": negative} {
		t.Run(name, func(t *testing.T) {
			_, err := ComputePrice(schedule, mondaySelection(t), vo.TypeWeekly, day(2026, 2, 2), day(2026, 2, 8))
			assert.ErrorIs(t, err, ErrInvalidMenuData)
		})
	}
}

func TestComputePrice_KeepsFractions(t *testing.T) {
	schedule := []menu.ScheduleItem{
		menu.NewScheduleItem(menuvo.Monday, menuvo.Lunch, "Thali", "", decimal.RequireFromString("99.995")),
	}
	sel, err := vo.NewSelection([]vo.SelectionDay{{Day: menuvo.Monday, MealTypes: []menuvo.MealType{menuvo.Lunch}}})
	require.NoError(t, err)

	price, err := ComputePrice(schedule, sel, vo.TypeMonthly, day(2026, 3, 2), day(2026, 3, 9))
	require.NoError(t, err)
	assert.Equal(t, "199.99", price.String())
	assert.Equal(t, int64(19999), ToMinorUnits(price))
}

func TestDailyCosts(t *testing.T) {
	lookup, err := BuildPriceLookup(mondaySchedule())
	require.NoError(t, err)

	costs := DailyCosts(lookup, mondaySelection(t))
	require.Len(t, costs, 1)
	assertDecimal(t, 250, costs[menuvo.Monday])
}

func TestFirstPeriod(t *testing.T) {
	end, price, err := FirstPeriod(mondaySchedule(), mondaySelection(t), vo.TypeMonthly, day(2026, time.March, 2))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.April, 2), end)
	assertDecimal(t, 1250, price)

	end, price, err = FirstPeriod(mondaySchedule(), mondaySelection(t), vo.TypeWeekly, day(2026, time.March, 4))
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.March, 11), end)
	assertDecimal(t, 250, price)

	_, _, err = FirstPeriod(mondaySchedule(), mondaySelection(t), "yearly", day(2026, time.March, 4))
	assert.ErrorIs(t, err, ErrInvalidSubscription)
}
