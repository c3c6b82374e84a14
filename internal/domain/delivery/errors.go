package delivery

import (
	"errors"
	"fmt"
)

var (
	ErrDeliveryNotFound  = errors.New("delivery not found")
	ErrInvalidDelivery   = errors.New("invalid delivery")
	ErrIllegalTransition = errors.New("illegal delivery status transition")
	ErrNotInSelection    = errors.New("meal is not part of the subscription selection")
	ErrDuplicateDelivery = errors.New("delivery already recorded for this meal")
	ErrConcurrentUpdate  = errors.New("delivery was modified concurrently")
)

func illegalTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrIllegalTransition, from, to)
}
