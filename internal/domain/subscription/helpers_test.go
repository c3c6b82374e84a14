package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
)

const (
	testMenuID       uint = 1
	testChefID       uint = 2
	testSubscriberID uint = 3
	testStrangerID   uint = 4
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func item(d menuvo.Weekday, meal menuvo.MealType, price int64) menu.ScheduleItem {
	return menu.NewScheduleItem(d, meal, string(d)+" "+string(meal), "", decimal.NewFromInt(price))
}

// mondaySchedule is {Monday-Breakfast: 100, Monday-Lunch: 150}.
func mondaySchedule() []menu.ScheduleItem {
	return []menu.ScheduleItem{
		item(menuvo.Monday, menuvo.Breakfast, 100),
		item(menuvo.Monday, menuvo.Lunch, 150),
	}
}

func mondaySelection(t *testing.T) vo.Selection {
	t.Helper()
	sel, err := vo.NewSelection([]vo.SelectionDay{
		{Day: menuvo.Monday, MealTypes: []menuvo.MealType{menuvo.Breakfast, menuvo.Lunch}},
	})
	require.NoError(t, err)
	return sel
}

func newTestMenu(t *testing.T, schedule []menu.ScheduleItem) *menu.Menu {
	t.Helper()
	m, err := menu.ReconstructMenu(testMenuID, "menu_test", testChefID, "Test menu", "", schedule, 1, time.Now(), time.Now())
	require.NoError(t, err)
	return m
}

// newStoredSubscription creates a subscription on the Monday menu and gives
// it an ID as the repository would.
func newStoredSubscription(t *testing.T, typ vo.SubscriptionType, start time.Time) *Subscription {
	t.Helper()
	s, err := NewSubscription(testSubscriberID, newTestMenu(t, mondaySchedule()), mondaySelection(t), typ, start, false)
	require.NoError(t, err)
	require.NoError(t, s.SetID(10))
	return s
}

func withStatus(t *testing.T, s *Subscription, status vo.SubscriptionStatus) *Subscription {
	t.Helper()
	out, err := ReconstructSubscription(
		s.ID(), s.SID(), s.SubscriberID(), s.ChefID(), s.MenuID(), s.MenuSID(),
		s.Selection(), s.SubscriptionType(), s.StartDate(), s.EndDate(),
		s.TotalPrice(), status, s.AutoRenew(), s.ContactEmail(), s.Version(), s.CreatedAt(), s.UpdatedAt(),
	)
	require.NoError(t, err)
	return out
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}
