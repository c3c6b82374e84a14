package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	dvo "github.com/tiffin-inc/tiffin/internal/domain/delivery/valueobjects"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

func TestDeliveryRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	subRepo := NewSubscriptionRepository(db, logger.NewNop())
	sub := createTestSubscription(t, subRepo, createTestMenu(t, NewMenuRepository(db, logger.NewNop())),
		vo.TypeWeekly, day(2026, time.February, 2), false)
	repo := NewDeliveryRepository(db, logger.NewNop())

	newLunch := func(date time.Time) *delivery.Delivery {
		d, err := delivery.NewDelivery(sub, date, menuvo.Monday, menuvo.Lunch, "Thali", 2, "ring twice")
		require.NoError(t, err)
		return d
	}

	d := newLunch(day(2026, time.February, 2))
	require.NoError(t, repo.Create(ctx, d))
	require.NotZero(t, d.ID())

	t.Run("find by key", func(t *testing.T) {
		found, err := repo.FindByKey(ctx, d.Key())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, d.ID(), found.ID())
		assert.Equal(t, sub.SID(), found.SubscriptionSID())
		assert.Equal(t, 2, found.Quantity())
		assert.Equal(t, "ring twice", found.Notes())
		assert.Equal(t, dvo.StatusPending, found.Status())
		assert.Nil(t, found.DeliveredAt())
	})

	t.Run("other item is not found", func(t *testing.T) {
		key := d.Key()
		key.ItemName = "Biryani"
		found, err := repo.FindByKey(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("same meal twice is a duplicate", func(t *testing.T) {
		err := repo.Create(ctx, newLunch(day(2026, time.February, 2)))
		assert.ErrorIs(t, err, delivery.ErrDuplicateDelivery)
	})

	t.Run("mark delivered persists", func(t *testing.T) {
		loaded, err := repo.FindByKey(ctx, d.Key())
		require.NoError(t, err)
		at := time.Date(2026, time.February, 2, 13, 0, 0, 0, time.UTC)
		changed, err := loaded.MarkDelivered(testChefID, at)
		require.NoError(t, err)
		require.True(t, changed)
		require.NoError(t, repo.Update(ctx, loaded))

		reloaded, err := repo.FindByKey(ctx, d.Key())
		require.NoError(t, err)
		assert.Equal(t, dvo.StatusDelivered, reloaded.Status())
		assert.Equal(t, testChefID, reloaded.DeliveredBy())
		require.NotNil(t, reloaded.DeliveredAt())
		assert.True(t, at.Equal(*reloaded.DeliveredAt()))
		assert.Equal(t, 2, reloaded.Version())
	})

	t.Run("stale update is rejected", func(t *testing.T) {
		stale, err := delivery.ReconstructDelivery(d.ID(), sub.ID(), sub.SID(), testChefID, testSubscriberID,
			d.DeliveryDate(), menuvo.Monday, menuvo.Lunch, "Thali", 2, dvo.StatusPending, 0, nil, "", 1,
			d.CreatedAt(), d.UpdatedAt())
		require.NoError(t, err)
		_, err = stale.MarkDelivered(testChefID, time.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Update(ctx, stale), delivery.ErrConcurrentUpdate)
	})

	t.Run("list orders by day", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newLunch(day(2026, time.February, 9))))
		earlier := newLunch(day(2026, time.January, 26))
		require.NoError(t, repo.Create(ctx, earlier))

		list, err := repo.ListBySubscription(ctx, sub.ID())
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, day(2026, time.January, 26), list[0].DeliveryDate())
		assert.Equal(t, day(2026, time.February, 2), list[1].DeliveryDate())
		assert.Equal(t, day(2026, time.February, 9), list[2].DeliveryDate())

		none, err := repo.ListBySubscription(ctx, sub.ID()+100)
		require.NoError(t, err)
		assert.Empty(t, none)
	})
}
