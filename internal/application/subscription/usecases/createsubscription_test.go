package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

func TestCreateSubscription_Weekly(t *testing.T) {
	f := newFixture(t)

	out := f.subscribe(t, "weekly", "2026-02-02", false)

	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "2026-02-02", out.StartDate)
	assert.Equal(t, "2026-02-09", out.EndDate)
	requireDecimal(t, 250, out.TotalPrice)
	assert.Equal(t, int64(25000), out.AmountMinor)
	assert.Equal(t, chefID, out.ChefID)
	assert.Equal(t, f.menu.SID(), out.MenuID)
	assert.Equal(t, 1, f.tx.Calls)

	stored := f.stored(t, out.ID)
	assert.Equal(t, "sub@example.com", stored.ContactEmail())

	periods, err := f.periods.ListBySubscription(context.Background(), stored.ID())
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, subscription.PeriodKindCreated, periods[0].Kind())
	assert.Equal(t, date(2026, 2, 2), periods[0].BilledFrom())
	assert.Equal(t, date(2026, 2, 8), periods[0].BilledThrough())
	requireDecimal(t, 250, periods[0].Price())
}

func TestCreateSubscription_Monthly(t *testing.T) {
	f := newFixture(t)

	out := f.subscribe(t, "Monthly", "2026-02-02", true)

	// Feb 2 - Mar 1 holds Mondays 2, 9, 16, 23
	assert.Equal(t, "2026-03-02", out.EndDate)
	requireDecimal(t, 1000, out.TotalPrice)
	assert.True(t, out.AutoRenew)
}

func TestCreateSubscription_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cmd *CreateSubscriptionCommand)
		wantType errors.ErrorType
	}{
		{"unknown type", func(c *CreateSubscriptionCommand) { c.SubscriptionType = "daily" }, errors.ErrorTypeValidation},
		{"missing start date", func(c *CreateSubscriptionCommand) { c.StartDate = "" }, errors.ErrorTypeValidation},
		{"bad start date", func(c *CreateSubscriptionCommand) { c.StartDate = "02/02/2026" }, errors.ErrorTypeValidation},
		{"empty selection", func(c *CreateSubscriptionCommand) { c.Selection = nil }, errors.ErrorTypeValidation},
		{"unknown day", func(c *CreateSubscriptionCommand) {
			c.Selection = []dto.SelectionDayInput{{Day: "Funday", MealTypes: []string{"lunch"}}}
		}, errors.ErrorTypeValidation},
		{"duplicate day", func(c *CreateSubscriptionCommand) {
			c.Selection = append(mondayInput(), mondayInput()...)
		}, errors.ErrorTypeValidation},
		{"unknown menu", func(c *CreateSubscriptionCommand) { c.MenuSID = "menu_missing" }, errors.ErrorTypeNotFound},
		{"anonymous", func(c *CreateSubscriptionCommand) { c.SubscriberID = 0 }, errors.ErrorTypeUnauthorized},
		{"unpriced selection", func(c *CreateSubscriptionCommand) {
			c.Selection = []dto.SelectionDayInput{{Day: "Tuesday", MealTypes: []string{"dinner"}}}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cmd := CreateSubscriptionCommand{
				SubscriberID:     subscriberID,
				MenuSID:          f.menu.SID(),
				Selection:        mondayInput(),
				SubscriptionType: "weekly",
				StartDate:        "2026-02-02",
			}
			tt.mutate(&cmd)

			out, err := f.createUseCase().Execute(context.Background(), cmd)
			if tt.wantType == "" {
				// meals the menu does not offer cost nothing
				require.NoError(t, err)
				requireDecimal(t, 0, out.TotalPrice)
				return
			}
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
			assert.Equal(t, 0, f.tx.Calls)
		})
	}
}
