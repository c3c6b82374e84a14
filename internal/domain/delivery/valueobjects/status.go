package valueobjects

import "fmt"

type DeliveryStatus string

const (
	StatusPending        DeliveryStatus = "pending"
	StatusPrepared       DeliveryStatus = "prepared"
	StatusOutForDelivery DeliveryStatus = "out_for_delivery"
	StatusDelivered      DeliveryStatus = "delivered"
	StatusCancelled      DeliveryStatus = "cancelled"
	StatusFailed         DeliveryStatus = "failed"
)

var ValidStatuses = map[DeliveryStatus]bool{
	StatusPending:        true,
	StatusPrepared:       true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
	StatusCancelled:      true,
	StatusFailed:         true,
}

var transitions = map[DeliveryStatus][]DeliveryStatus{
	StatusPending:        {StatusPrepared, StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusFailed},
	StatusPrepared:       {StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusFailed},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled, StatusFailed},
	StatusFailed:         {StatusPending, StatusDelivered},
}

func ParseStatus(s string) (DeliveryStatus, error) {
	status := DeliveryStatus(s)
	if !ValidStatuses[status] {
		return "", fmt.Errorf("invalid delivery status: %q", s)
	}
	return status, nil
}

func (s DeliveryStatus) String() string {
	return string(s)
}

// IsTerminal reports whether s is delivered or cancelled.
func (s DeliveryStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether a delivery may move from s to target. A
// failed delivery can be retried or confirmed late.
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
