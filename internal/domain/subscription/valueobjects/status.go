package valueobjects

import "fmt"

type SubscriptionStatus string

const (
	StatusPending   SubscriptionStatus = "pending"
	StatusActive    SubscriptionStatus = "active"
	StatusPaused    SubscriptionStatus = "paused"
	StatusExpired   SubscriptionStatus = "expired"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusRejected  SubscriptionStatus = "rejected"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusPending:   true,
	StatusActive:    true,
	StatusPaused:    true,
	StatusExpired:   true,
	StatusCancelled: true,
	StatusRejected:  true,
}

func ParseStatus(s string) (SubscriptionStatus, error) {
	status := SubscriptionStatus(s)
	if !ValidStatuses[status] {
		return "", fmt.Errorf("invalid subscription status: %q", s)
	}
	return status, nil
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no transition can leave s.
func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled || s == StatusRejected
}

// CanRenew reports whether a subscription in s may be extended.
func (s SubscriptionStatus) CanRenew() bool {
	return s == StatusActive
}

// CanExpire reports whether the expiry job may move s to expired.
func (s SubscriptionStatus) CanExpire() bool {
	return s == StatusActive || s == StatusPaused
}

// CanTransitionTo reports whether actor may move a subscription from s to
// target. Expiry is not listed; it is a system transition.
func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus, actor Actor) bool {
	if s.IsTerminal() {
		return false
	}

	switch actor {
	case ActorChef:
		return s == StatusPending && (target == StatusActive || target == StatusRejected)
	case ActorSubscriber:
		switch target {
		case StatusActive:
			return s == StatusPaused
		case StatusPaused:
			return s == StatusActive
		case StatusCancelled:
			return true
		}
	}
	return false
}
