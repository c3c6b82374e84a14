package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiffin-inc/tiffin/internal/application/testutil"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
)

func TestRenewDueSubscriptions(t *testing.T) {
	f := newFixture(t)
	due := f.subscribe(t, "weekly", "2026-02-02", true)       // ends Feb 9
	later := f.subscribe(t, "weekly", "2026-02-05", true)     // ends Feb 12
	manual := f.subscribe(t, "weekly", "2026-02-02", false)   // no auto-renew
	pausedSub := f.subscribe(t, "weekly", "2026-02-02", true) // paused
	for _, sid := range []string{due.ID, later.ID, manual.ID} {
		f.setStatus(t, sid, vo.StatusActive)
	}
	f.setStatus(t, pausedSub.ID, vo.StatusPaused)

	uc := NewRenewDueSubscriptionsUseCase(f.subs, f.renewUseCase(), 1, testutil.NewMockLogger())
	uc.SetClock(func() time.Time { return time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC) })

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), f.stored(t, due.ID).EndDate())
	assert.Equal(t, time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC), f.stored(t, later.ID).EndDate())
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), f.stored(t, manual.ID).EndDate())
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), f.stored(t, pausedSub.ID).EndDate())

	// a second run finds nothing new
	result, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Processed)
}

func TestRenewDueSubscriptions_MenuGone(t *testing.T) {
	f := newFixture(t)
	due := f.subscribe(t, "weekly", "2026-02-02", true)
	f.setStatus(t, due.ID, vo.StatusActive)
	require.NoError(t, f.menus.Delete(context.Background(), f.menu.ID()))

	uc := NewRenewDueSubscriptionsUseCase(f.subs, f.renewUseCase(), 0, testutil.NewMockLogger())
	uc.SetClock(func() time.Time { return time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC) })

	result, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), f.stored(t, due.ID).EndDate())
}
