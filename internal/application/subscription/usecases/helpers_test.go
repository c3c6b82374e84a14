package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/application/testutil"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
)

const (
	chefID       uint = 2
	subscriberID uint = 3
	strangerID   uint = 4
)

type fixture struct {
	menus     *testutil.MockMenuRepository
	subs      *testutil.MockSubscriptionRepository
	periods   *testutil.MockPeriodRepository
	tx        *testutil.MockTransactor
	publisher *testutil.RecordingPublisher
	menu      *menu.Menu
}

// newFixture stores a chef menu priced Monday breakfast 100, lunch 150.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		menus:     testutil.NewMockMenuRepository(),
		subs:      testutil.NewMockSubscriptionRepository(),
		periods:   testutil.NewMockPeriodRepository(),
		tx:        &testutil.MockTransactor{},
		publisher: &testutil.RecordingPublisher{},
	}
	m, err := menu.NewMenu(chefID, "Weekday lunches", "", []menu.ScheduleItem{
		menu.NewScheduleItem(menuvo.Monday, menuvo.Breakfast, "Poha", "", decimal.NewFromInt(100)),
		menu.NewScheduleItem(menuvo.Monday, menuvo.Lunch, "Thali", "", decimal.NewFromInt(150)),
	})
	require.NoError(t, err)
	require.NoError(t, f.menus.Create(context.Background(), m))
	f.menu = m
	return f
}

func mondayInput() []dto.SelectionDayInput {
	return []dto.SelectionDayInput{{Day: "Monday", MealTypes: []string{"breakfast", "lunch"}}}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) createUseCase() *CreateSubscriptionUseCase {
	return NewCreateSubscriptionUseCase(f.subs, f.periods, f.menus, f.tx, testutil.NewMockLogger())
}

func (f *fixture) renewUseCase() *RenewSubscriptionUseCase {
	return NewRenewSubscriptionUseCase(f.subs, f.periods, f.menus, f.tx, f.publisher, testutil.NewMockLogger())
}

func (f *fixture) statusUseCase() *UpdateStatusUseCase {
	return NewUpdateStatusUseCase(f.subs, f.tx, f.publisher, testutil.NewMockLogger())
}

// subscribe creates a subscription through the create use case.
func (f *fixture) subscribe(t *testing.T, subType, start string, autoRenew bool) *dto.SubscriptionDTO {
	t.Helper()
	out, err := f.createUseCase().Execute(context.Background(), CreateSubscriptionCommand{
		SubscriberID:     subscriberID,
		SubscriberEmail:  "sub@example.com",
		MenuSID:          f.menu.SID(),
		Selection:        mondayInput(),
		SubscriptionType: subType,
		StartDate:        start,
		AutoRenew:        autoRenew,
	})
	require.NoError(t, err)
	return out
}

// activate moves a stored subscription to active as the chef.
func (f *fixture) activate(t *testing.T, sid string) {
	t.Helper()
	_, err := f.statusUseCase().Execute(context.Background(), UpdateStatusCommand{
		SubscriptionSID: sid,
		RequesterID:     chefID,
		Status:          "active",
	})
	require.NoError(t, err)
}

func (f *fixture) stored(t *testing.T, sid string) *subscription.Subscription {
	t.Helper()
	s, err := f.subs.GetBySID(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func (f *fixture) setStatus(t *testing.T, sid string, status vo.SubscriptionStatus) {
	t.Helper()
	s := f.stored(t, sid)
	out, err := subscription.ReconstructSubscription(
		s.ID(), s.SID(), s.SubscriberID(), s.ChefID(), s.MenuID(), s.MenuSID(),
		s.Selection(), s.SubscriptionType(), s.StartDate(), s.EndDate(),
		s.TotalPrice(), status, s.AutoRenew(), s.ContactEmail(), s.Version(), s.CreatedAt(), s.UpdatedAt(),
	)
	require.NoError(t, err)
	f.subs.Put(out)
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}

func subscriptionFilterAll() subscription.Filter {
	return subscription.Filter{}
}
