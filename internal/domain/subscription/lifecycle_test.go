package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
)

func TestChangeStatus(t *testing.T) {
	tests := []struct {
		name      string
		from      vo.SubscriptionStatus
		requester uint
		to        vo.SubscriptionStatus
		wantErr   error
	}{
		{"chef approves pending", vo.StatusPending, testChefID, vo.StatusActive, nil},
		{"chef rejects pending", vo.StatusPending, testChefID, vo.StatusRejected, nil},
		{"subscriber cannot approve", vo.StatusPending, testSubscriberID, vo.StatusActive, ErrIllegalTransition},
		{"stranger cannot approve", vo.StatusPending, testStrangerID, vo.StatusActive, ErrForbidden},
		{"stranger cannot cancel", vo.StatusActive, testStrangerID, vo.StatusCancelled, ErrForbidden},
		{"subscriber pauses", vo.StatusActive, testSubscriberID, vo.StatusPaused, nil},
		{"subscriber resumes", vo.StatusPaused, testSubscriberID, vo.StatusActive, nil},
		{"chef cannot pause", vo.StatusActive, testChefID, vo.StatusPaused, ErrIllegalTransition},
		{"chef cannot resume", vo.StatusPaused, testChefID, vo.StatusActive, ErrIllegalTransition},
		{"subscriber cancels pending", vo.StatusPending, testSubscriberID, vo.StatusCancelled, nil},
		{"subscriber cancels paused", vo.StatusPaused, testSubscriberID, vo.StatusCancelled, nil},
		{"chef cannot cancel", vo.StatusActive, testChefID, vo.StatusCancelled, ErrIllegalTransition},
		{"active to active is not a transition", vo.StatusActive, testSubscriberID, vo.StatusActive, ErrIllegalTransition},
		{"chef cannot reject active", vo.StatusActive, testChefID, vo.StatusRejected, ErrIllegalTransition},
		{"cancelled is terminal", vo.StatusCancelled, testSubscriberID, vo.StatusActive, ErrIllegalTransition},
		{"cancelled cannot be cancelled", vo.StatusCancelled, testSubscriberID, vo.StatusCancelled, ErrIllegalTransition},
		{"rejected is terminal", vo.StatusRejected, testChefID, vo.StatusActive, ErrIllegalTransition},
		{"expired is terminal", vo.StatusExpired, testSubscriberID, vo.StatusCancelled, ErrIllegalTransition},
		{"expiry is not requestable", vo.StatusActive, testSubscriberID, vo.StatusExpired, ErrIllegalTransition},
		{"unknown status", vo.StatusActive, testSubscriberID, "archived", ErrIllegalTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := withStatus(t, newStoredSubscription(t, vo.TypeWeekly, day(2026, time.February, 2)), tt.from)
			before := *s

			err := s.ChangeStatus(tt.requester, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before.status, s.Status())
				assert.Equal(t, before.version, s.Version())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, s.Status())
			assert.Equal(t, before.version+1, s.Version())
			assert.Equal(t, before.startDate, s.StartDate())
			assert.Equal(t, before.endDate, s.EndDate())
			assert.True(t, before.totalPrice.Equal(s.TotalPrice()))
		})
	}
}

func TestChangeStatus_UserWhoIsBothParties(t *testing.T) {
	m := newTestMenu(t, mondaySchedule())
	s, err := NewSubscription(testChefID, m, mondaySelection(t), vo.TypeWeekly, day(2026, time.February, 2), false)
	require.NoError(t, err)

	assert.ElementsMatch(t, []vo.Actor{vo.ActorSubscriber, vo.ActorChef}, s.ActorsFor(testChefID))
	require.NoError(t, s.ChangeStatus(testChefID, vo.StatusActive))
	require.NoError(t, s.ChangeStatus(testChefID, vo.StatusPaused))
}

func TestChangeStatus_ZeroRequesterIsForbidden(t *testing.T) {
	s := newStoredSubscription(t, vo.TypeWeekly, day(2026, time.February, 2))
	assert.ErrorIs(t, s.ChangeStatus(0, vo.StatusCancelled), ErrForbidden)
	assert.False(t, s.IsParty(0))
	assert.True(t, s.IsParty(testChefID))
	assert.True(t, s.IsParty(testSubscriberID))
}

func TestMarkExpired(t *testing.T) {
	base := newStoredSubscription(t, vo.TypeWeekly, day(2026, time.February, 2)) // ends Feb 9

	active := withStatus(t, base, vo.StatusActive)
	assert.ErrorIs(t, active.MarkExpired(time.Date(2026, time.February, 9, 12, 0, 0, 0, time.UTC)), ErrIllegalTransition)
	require.NoError(t, active.MarkExpired(time.Date(2026, time.February, 10, 0, 0, 1, 0, time.UTC)))
	assert.Equal(t, vo.StatusExpired, active.Status())

	paused := withStatus(t, base, vo.StatusPaused)
	require.NoError(t, paused.MarkExpired(day(2026, time.March, 1)))

	pending := withStatus(t, base, vo.StatusPending)
	assert.ErrorIs(t, pending.MarkExpired(day(2026, time.March, 1)), ErrIllegalTransition)
}
