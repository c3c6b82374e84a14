package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/application/testutil"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

func TestQuoteSubscription(t *testing.T) {
	f := newFixture(t)
	uc := NewQuoteSubscriptionUseCase(f.menus, "USD", testutil.NewMockLogger())

	quote, err := uc.Execute(context.Background(), QuoteSubscriptionCommand{
		MenuSID:          f.menu.SID(),
		Selection:        mondayInput(),
		SubscriptionType: "monthly",
		StartDate:        "2026-02-02",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", quote.EndDate)
	requireDecimal(t, 1000, quote.TotalPrice)
	assert.Equal(t, int64(100000), quote.AmountMinor)
	assert.Equal(t, "USD", quote.Currency)

	// quoting stores nothing
	_, total, err := f.subs.List(context.Background(), subscriptionFilterAll())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestQuoteSubscription_MatchesCreatedPrice(t *testing.T) {
	f := newFixture(t)
	uc := NewQuoteSubscriptionUseCase(f.menus, "USD", testutil.NewMockLogger())

	for _, start := range []string{"2026-01-31", "2026-02-02", "2026-10-29"} {
		quote, err := uc.Execute(context.Background(), QuoteSubscriptionCommand{
			MenuSID:          f.menu.SID(),
			Selection:        mondayInput(),
			SubscriptionType: "monthly",
			StartDate:        start,
		})
		require.NoError(t, err)

		created := f.subscribe(t, "monthly", start, false)
		assert.True(t, quote.TotalPrice.Equal(created.TotalPrice), "start %s", start)
		assert.Equal(t, quote.EndDate, created.EndDate)
	}
}

func TestQuoteSubscription_UnknownMenu(t *testing.T) {
	f := newFixture(t)
	uc := NewQuoteSubscriptionUseCase(f.menus, "USD", testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), QuoteSubscriptionCommand{
		MenuSID:          "menu_missing",
		Selection:        mondayInput(),
		SubscriptionType: "weekly",
		StartDate:        "2026-02-02",
	})
	assert.True(t, errors.IsNotFoundError(err))
}
