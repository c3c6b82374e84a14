package delivery

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/tiffin-inc/tiffin/internal/domain/delivery/valueobjects"
	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

const maxItemNameLength = 200

// Delivery records the hand-over of one meal item of a subscription on one
// calendar day.
type Delivery struct {
	id              uint
	subscriptionID  uint
	subscriptionSID string
	chefID          uint
	subscriberID    uint
	deliveryDate    time.Time
	dayOfWeek       menuvo.Weekday
	mealType        menuvo.MealType
	itemName        string
	quantity        int
	status          vo.DeliveryStatus
	deliveredBy     uint
	deliveredAt     *time.Time
	notes           string
	version         int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewDelivery creates a pending delivery for the given meal of sub. The
// (day, meal) pair must be part of the subscription's selection. A zero
// quantity means one.
func NewDelivery(
	sub *subscription.Subscription,
	date time.Time,
	day menuvo.Weekday,
	meal menuvo.MealType,
	itemName string,
	quantity int,
	notes string,
) (*Delivery, error) {
	if sub == nil || sub.ID() == 0 {
		return nil, fmt.Errorf("%w: subscription is required", ErrInvalidDelivery)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: delivery date is required", ErrInvalidDelivery)
	}
	if !day.IsValid() || !meal.IsValid() {
		return nil, fmt.Errorf("%w: invalid day %q or meal type %q", ErrInvalidDelivery, day, meal)
	}
	if !sub.Selection().Includes(day, meal) {
		return nil, fmt.Errorf("%w: %s %s", ErrNotInSelection, day, meal)
	}

	itemName = strings.TrimSpace(itemName)
	if itemName == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidDelivery)
	}
	if len(itemName) > maxItemNameLength {
		return nil, fmt.Errorf("%w: item name exceeds %d characters", ErrInvalidDelivery, maxItemNameLength)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidDelivery)
	}
	if quantity == 0 {
		quantity = 1
	}

	now := time.Now().UTC()
	return &Delivery{
		subscriptionID:  sub.ID(),
		subscriptionSID: sub.SID(),
		chefID:          sub.ChefID(),
		subscriberID:    sub.SubscriberID(),
		deliveryDate:    biztime.Truncate(date),
		dayOfWeek:       day,
		mealType:        meal,
		itemName:        itemName,
		quantity:        quantity,
		status:          vo.StatusPending,
		notes:           strings.TrimSpace(notes),
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructDelivery rebuilds a delivery from persistence.
func ReconstructDelivery(
	id uint,
	subscriptionID uint,
	subscriptionSID string,
	chefID, subscriberID uint,
	deliveryDate time.Time,
	dayOfWeek menuvo.Weekday,
	mealType menuvo.MealType,
	itemName string,
	quantity int,
	status vo.DeliveryStatus,
	deliveredBy uint,
	deliveredAt *time.Time,
	notes string,
	version int,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	if id == 0 {
		return nil, fmt.Errorf("delivery ID cannot be zero")
	}
	if subscriptionID == 0 {
		return nil, fmt.Errorf("delivery %d has no subscription", id)
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid delivery status: %s", status)
	}

	return &Delivery{
		id:              id,
		subscriptionID:  subscriptionID,
		subscriptionSID: subscriptionSID,
		chefID:          chefID,
		subscriberID:    subscriberID,
		deliveryDate:    biztime.Truncate(deliveryDate),
		dayOfWeek:       dayOfWeek,
		mealType:        mealType,
		itemName:        itemName,
		quantity:        quantity,
		status:          status,
		deliveredBy:     deliveredBy,
		deliveredAt:     deliveredAt,
		notes:           notes,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (d *Delivery) ID() uint {
	return d.id
}

func (d *Delivery) SubscriptionID() uint {
	return d.subscriptionID
}

func (d *Delivery) SubscriptionSID() string {
	return d.subscriptionSID
}

func (d *Delivery) ChefID() uint {
	return d.chefID
}

func (d *Delivery) SubscriberID() uint {
	return d.subscriberID
}

func (d *Delivery) DeliveryDate() time.Time {
	return d.deliveryDate
}

func (d *Delivery) DayOfWeek() menuvo.Weekday {
	return d.dayOfWeek
}

func (d *Delivery) MealType() menuvo.MealType {
	return d.mealType
}

func (d *Delivery) ItemName() string {
	return d.itemName
}

func (d *Delivery) Quantity() int {
	return d.quantity
}

func (d *Delivery) Status() vo.DeliveryStatus {
	return d.status
}

// DeliveredBy is the user who confirmed the hand-over, zero until delivered.
func (d *Delivery) DeliveredBy() uint {
	return d.deliveredBy
}

func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

func (d *Delivery) Notes() string {
	return d.notes
}

func (d *Delivery) Version() int {
	return d.version
}

func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// Key returns the identity a delivery is unique by.
func (d *Delivery) Key() Key {
	return Key{
		SubscriptionID: d.subscriptionID,
		Date:           d.deliveryDate,
		Day:            d.dayOfWeek,
		Meal:           d.mealType,
		ItemName:       d.itemName,
	}
}

func (d *Delivery) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("delivery ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("delivery ID cannot be zero")
	}
	d.id = id
	return nil
}

// MarkDelivered records the hand-over by the given user. It reports false
// and leaves the delivery untouched when it is already delivered.
func (d *Delivery) MarkDelivered(by uint, at time.Time) (bool, error) {
	if d.status == vo.StatusDelivered {
		return false, nil
	}
	if !d.status.CanTransitionTo(vo.StatusDelivered) {
		return false, illegalTransition(d.status.String(), vo.StatusDelivered.String())
	}

	delivered := at.UTC()
	d.status = vo.StatusDelivered
	d.deliveredBy = by
	d.deliveredAt = &delivered
	d.touch()
	return true, nil
}

func (d *Delivery) touch() {
	d.version++
	d.updatedAt = time.Now().UTC()
}
