package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct {
		from  SubscriptionStatus
		to    SubscriptionStatus
		actor Actor
	}{
		{StatusPending, StatusActive, ActorChef},
		{StatusPending, StatusRejected, ActorChef},
		{StatusPaused, StatusActive, ActorSubscriber},
		{StatusActive, StatusPaused, ActorSubscriber},
		{StatusPending, StatusCancelled, ActorSubscriber},
		{StatusActive, StatusCancelled, ActorSubscriber},
		{StatusPaused, StatusCancelled, ActorSubscriber},
	}

	isAllowed := func(from, to SubscriptionStatus, actor Actor) bool {
		for _, a := range allowed {
			if a.from == from && a.to == to && a.actor == actor {
				return true
			}
		}
		return false
	}

	// every combination outside the table must be refused
	for from := range ValidStatuses {
		for to := range ValidStatuses {
			for _, actor := range []Actor{ActorChef, ActorSubscriber, Actor("stranger")} {
				want := isAllowed(from, to, actor)
				assert.Equal(t, want, from.CanTransitionTo(to, actor), "%s -> %s by %s", from, to, actor)
			}
		}
	}
}

func TestSubscriptionStatus_Terminal(t *testing.T) {
	assert.True(t, StatusExpired.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
	assert.False(t, StatusPaused.IsTerminal())
}

func TestSubscriptionStatus_CanRenewAndExpire(t *testing.T) {
	for status := range ValidStatuses {
		assert.Equal(t, status == StatusActive, status.CanRenew(), status)
		assert.Equal(t, status == StatusActive || status == StatusPaused, status.CanExpire(), status)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("paused")
	assert.NoError(t, err)
	assert.Equal(t, StatusPaused, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)
}
