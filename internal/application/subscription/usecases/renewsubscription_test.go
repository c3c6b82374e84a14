package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

func TestRenewSubscription_Weekly(t *testing.T) {
	f := newFixture(t)
	created := f.subscribe(t, "weekly", "2026-02-02", false)
	f.activate(t, created.ID)
	f.publisher.Events = nil

	out, err := f.renewUseCase().Execute(context.Background(), RenewSubscriptionCommand{
		SubscriptionSID: created.ID,
		RequesterID:     subscriberID,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-02-02", out.StartDate)
	assert.Equal(t, "2026-02-16", out.EndDate)
	assert.Equal(t, "active", out.Status)
	requireDecimal(t, 250, out.TotalPrice)
	assert.Equal(t, []string{subscription.EventRenewed}, f.publisher.Types())

	stored := f.stored(t, created.ID)
	periods, err := f.periods.ListBySubscription(context.Background(), stored.ID())
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, subscription.PeriodKindRenewed, periods[1].Kind())
	assert.Equal(t, date(2026, 2, 10), periods[1].BilledFrom())
	assert.Equal(t, date(2026, 2, 16), periods[1].BilledThrough())
	requireDecimal(t, 500, subscription.SumPrices(periods))
}

func TestRenewSubscription_RepricesAgainstCurrentMenu(t *testing.T) {
	f := newFixture(t)
	created := f.subscribe(t, "monthly", "2026-02-02", false)
	f.activate(t, created.ID)

	m, err := f.menus.GetByID(context.Background(), f.menu.ID())
	require.NoError(t, err)
	require.NoError(t, m.ReplaceSchedule([]menu.ScheduleItem{
		menu.NewScheduleItem(menuvo.Monday, menuvo.Breakfast, "Poha", "", decimal.NewFromInt(120)),
		menu.NewScheduleItem(menuvo.Monday, menuvo.Lunch, "Thali", "", decimal.NewFromInt(180)),
	}))
	require.NoError(t, f.menus.Update(context.Background(), m))

	out, err := f.renewUseCase().Execute(context.Background(), RenewSubscriptionCommand{
		SubscriptionSID: created.ID,
		RequesterID:     subscriberID,
	})
	require.NoError(t, err)

	// Mar 3 - Apr 2 holds Mondays 9, 16, 23, 30
	assert.Equal(t, "2026-04-02", out.EndDate)
	requireDecimal(t, 1200, out.TotalPrice)
}

func TestRenewSubscription_Refusals(t *testing.T) {
	tests := []struct {
		name      string
		status    vo.SubscriptionStatus
		requester uint
		arrange   func(t *testing.T, f *fixture)
		wantType  errors.ErrorType
	}{
		{name: "chef", status: vo.StatusActive, requester: chefID, wantType: errors.ErrorTypeForbidden},
		{name: "stranger", status: vo.StatusActive, requester: strangerID, wantType: errors.ErrorTypeForbidden},
		{name: "pending", status: vo.StatusPending, requester: subscriberID, wantType: errors.ErrorTypeNotRenewable},
		{name: "paused", status: vo.StatusPaused, requester: subscriberID, wantType: errors.ErrorTypeNotRenewable},
		{name: "cancelled", status: vo.StatusCancelled, requester: subscriberID, wantType: errors.ErrorTypeNotRenewable},
		{
			name: "menu deleted", status: vo.StatusActive, requester: subscriberID,
			arrange: func(t *testing.T, f *fixture) {
				require.NoError(t, f.menus.Delete(context.Background(), f.menu.ID()))
			},
			wantType: errors.ErrorTypeNotFound,
		},
		{
			name: "menu without price", status: vo.StatusActive, requester: subscriberID,
			arrange: func(t *testing.T, f *fixture) {
				broken, err := menu.ReconstructMenu(f.menu.ID(), f.menu.SID(), chefID, "Broken", "",
					[]menu.ScheduleItem{{Day: menuvo.Monday, MealType: menuvo.Lunch, Name: "Thali"}},
					f.menu.Version(), f.menu.CreatedAt(), f.menu.UpdatedAt())
				require.NoError(t, err)
				require.NoError(t, f.menus.Update(context.Background(), broken))
			},
			wantType: errors.ErrorTypeInvalidMenuData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			created := f.subscribe(t, "weekly", "2026-02-02", false)
			f.setStatus(t, created.ID, tt.status)
			if tt.arrange != nil {
				tt.arrange(t, f)
			}
			before := f.stored(t, created.ID)

			_, err := f.renewUseCase().Execute(context.Background(), RenewSubscriptionCommand{
				SubscriptionSID: created.ID,
				RequesterID:     tt.requester,
			})
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)

			after := f.stored(t, created.ID)
			assert.Equal(t, before.EndDate(), after.EndDate())
			assert.True(t, before.TotalPrice().Equal(after.TotalPrice()))
			assert.Equal(t, before.Version(), after.Version())

			periods, err := f.periods.ListBySubscription(context.Background(), after.ID())
			require.NoError(t, err)
			assert.Len(t, periods, 1)
			assert.Empty(t, f.publisher.Types())
		})
	}
}
