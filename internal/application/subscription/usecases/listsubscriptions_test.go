package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/application/testutil"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

func TestListSubscriptions(t *testing.T) {
	f := newFixture(t)
	first := f.subscribe(t, "weekly", "2026-02-02", false)
	f.subscribe(t, "monthly", "2026-02-02", false)
	f.activate(t, first.ID)

	uc := NewListSubscriptionsUseCase(f.subs, testutil.NewMockLogger())

	tests := []struct {
		name      string
		query     ListSubscriptionsQuery
		wantTotal int64
	}{
		{"subscriber sees own", ListSubscriptionsQuery{RequesterID: subscriberID}, 2},
		{"chef sees incoming", ListSubscriptionsQuery{RequesterID: chefID, AsChef: true}, 2},
		{"chef is not a subscriber", ListSubscriptionsQuery{RequesterID: chefID}, 0},
		{"status filter", ListSubscriptionsQuery{RequesterID: chefID, AsChef: true, Status: "pending"}, 1},
		{"type filter", ListSubscriptionsQuery{RequesterID: subscriberID, SubscriptionType: "weekly"}, 1},
		{"stranger", ListSubscriptionsQuery{RequesterID: strangerID}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Execute(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Len(t, result.Subscriptions, int(tt.wantTotal))
			assert.Equal(t, 1, result.Page)
			assert.Equal(t, 20, result.PageSize)
		})
	}
}

func TestListSubscriptions_InvalidFilters(t *testing.T) {
	f := newFixture(t)
	uc := NewListSubscriptionsUseCase(f.subs, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ListSubscriptionsQuery{RequesterID: subscriberID, Status: "archived"})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ListSubscriptionsQuery{RequesterID: subscriberID, SubscriptionType: "daily"})
	assert.True(t, errors.IsValidationError(err))
}
