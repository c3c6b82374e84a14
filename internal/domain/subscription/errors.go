package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrForbidden            = errors.New("caller is not a party to this subscription")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrNotRenewable         = errors.New("subscription is not renewable")
	ErrMenuGone             = errors.New("subscription menu no longer exists")
	ErrInvalidMenuData      = errors.New("menu contains invalid price data")
	ErrInvalidSubscription  = errors.New("invalid subscription")
	ErrConcurrentUpdate     = errors.New("subscription was modified concurrently")
)

func illegalTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrIllegalTransition, from, to)
}
