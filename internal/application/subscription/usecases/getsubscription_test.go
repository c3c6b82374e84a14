package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/application/testutil"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

func TestGetSubscription_PartiesSeeHistory(t *testing.T) {
	f := newFixture(t)
	created := f.subscribe(t, "weekly", "2026-02-02", false)
	f.activate(t, created.ID)
	_, err := f.renewUseCase().Execute(context.Background(), RenewSubscriptionCommand{
		SubscriptionSID: created.ID,
		RequesterID:     subscriberID,
	})
	require.NoError(t, err)

	uc := NewGetSubscriptionUseCase(f.subs, f.periods, testutil.NewMockLogger())
	for _, requester := range []uint{subscriberID, chefID} {
		detail, err := uc.Execute(context.Background(), GetSubscriptionQuery{
			SubscriptionSID: created.ID,
			RequesterID:     requester,
		})
		require.NoError(t, err)

		assert.Equal(t, "2026-02-16", detail.EndDate)
		require.Len(t, detail.Periods, 2)
		assert.Equal(t, "created", detail.Periods[0].Kind)
		assert.Equal(t, "2026-02-02", detail.Periods[0].BilledFrom)
		assert.Equal(t, "2026-02-08", detail.Periods[0].BilledThrough)
		assert.Equal(t, "renewed", detail.Periods[1].Kind)
		requireDecimal(t, 500, detail.TotalBilled)
	}
}

func TestGetSubscription_Stranger(t *testing.T) {
	f := newFixture(t)
	created := f.subscribe(t, "weekly", "2026-02-02", false)
	uc := NewGetSubscriptionUseCase(f.subs, f.periods, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), GetSubscriptionQuery{SubscriptionSID: created.ID, RequesterID: strangerID})
	assert.True(t, errors.IsType(err, errors.ErrorTypeForbidden))

	_, err = uc.Execute(context.Background(), GetSubscriptionQuery{SubscriptionSID: "sub_missing", RequesterID: chefID})
	assert.True(t, errors.IsNotFoundError(err))
}
