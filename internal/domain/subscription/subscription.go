package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/id"
)

// Subscription is the aggregate root of the subscription engine. Its
// selection, type and start date are fixed at creation; status, end date and
// total price change only through ChangeStatus, Renew and MarkExpired.
type Subscription struct {
	id               uint
	sid              string
	subscriberID     uint
	chefID           uint
	menuID           uint
	menuSID          string
	selection        vo.Selection
	subscriptionType vo.SubscriptionType
	startDate        time.Time
	endDate          time.Time
	totalPrice       decimal.Decimal
	status           vo.SubscriptionStatus
	autoRenew        bool
	contactEmail     string
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewSubscription creates a pending subscription on m for subscriberID. The
// first period ends seven days (weekly) or one calendar month (monthly) after
// startDate and is priced over [startDate, endDate).
func NewSubscription(
	subscriberID uint,
	m *menu.Menu,
	selection vo.Selection,
	subscriptionType vo.SubscriptionType,
	startDate time.Time,
	autoRenew bool,
) (*Subscription, error) {
	if subscriberID == 0 {
		return nil, fmt.Errorf("%w: subscriber ID is required", ErrInvalidSubscription)
	}
	if m == nil || m.ID() == 0 {
		return nil, fmt.Errorf("%w: menu is required", ErrInvalidSubscription)
	}
	if selection.IsEmpty() {
		return nil, fmt.Errorf("%w: selection is required", ErrInvalidSubscription)
	}
	if !subscriptionType.IsValid() {
		return nil, fmt.Errorf("%w: invalid subscription type %q", ErrInvalidSubscription, subscriptionType)
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidSubscription)
	}

	start := biztime.Truncate(startDate)
	end, price, err := FirstPeriod(m.Schedule(), selection, subscriptionType, start)
	if err != nil {
		return nil, err
	}

	sid, err := id.NewSubscriptionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subscription ID: %w", err)
	}

	now := time.Now().UTC()
	return &Subscription{
		sid:              sid,
		subscriberID:     subscriberID,
		chefID:           m.ChefID(),
		menuID:           m.ID(),
		menuSID:          m.SID(),
		selection:        selection,
		subscriptionType: subscriptionType,
		startDate:        start,
		endDate:          end,
		totalPrice:       price,
		status:           vo.StatusPending,
		autoRenew:        autoRenew,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(
	id uint,
	sid string,
	subscriberID, chefID, menuID uint,
	menuSID string,
	selection vo.Selection,
	subscriptionType vo.SubscriptionType,
	startDate, endDate time.Time,
	totalPrice decimal.Decimal,
	status vo.SubscriptionStatus,
	autoRenew bool,
	contactEmail string,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if subscriberID == 0 || chefID == 0 || menuID == 0 {
		return nil, fmt.Errorf("subscription %d is missing a subscriber, chef or menu reference", id)
	}
	if !vo.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	if !subscriptionType.IsValid() {
		return nil, fmt.Errorf("invalid subscription type: %s", subscriptionType)
	}

	return &Subscription{
		id:               id,
		sid:              sid,
		subscriberID:     subscriberID,
		chefID:           chefID,
		menuID:           menuID,
		menuSID:          menuSID,
		selection:        selection,
		subscriptionType: subscriptionType,
		startDate:        biztime.Truncate(startDate),
		endDate:          biztime.Truncate(endDate),
		totalPrice:       totalPrice,
		status:           status,
		autoRenew:        autoRenew,
		contactEmail:     contactEmail,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) SID() string {
	return s.sid
}

func (s *Subscription) SubscriberID() uint {
	return s.subscriberID
}

func (s *Subscription) ChefID() uint {
	return s.chefID
}

func (s *Subscription) MenuID() uint {
	return s.menuID
}

func (s *Subscription) MenuSID() string {
	return s.menuSID
}

func (s *Subscription) Selection() vo.Selection {
	return s.selection
}

func (s *Subscription) SubscriptionType() vo.SubscriptionType {
	return s.subscriptionType
}

func (s *Subscription) StartDate() time.Time {
	return s.startDate
}

func (s *Subscription) EndDate() time.Time {
	return s.endDate
}

// TotalPrice is the price of the current period.
func (s *Subscription) TotalPrice() decimal.Decimal {
	return s.totalPrice
}

func (s *Subscription) Status() vo.SubscriptionStatus {
	return s.status
}

func (s *Subscription) AutoRenew() bool {
	return s.autoRenew
}

// ContactEmail is where the subscriber wants notifications; it may be empty.
func (s *Subscription) ContactEmail() string {
	return s.contactEmail
}

// SetContactEmail records the subscriber's notification address before the
// subscription is first stored.
func (s *Subscription) SetContactEmail(email string) {
	s.contactEmail = strings.TrimSpace(email)
}

// Version returns the aggregate version for optimistic locking
func (s *Subscription) Version() int {
	return s.version
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsParty reports whether userID is the subscriber or the chef.
func (s *Subscription) IsParty(userID uint) bool {
	return userID != 0 && (userID == s.subscriberID || userID == s.chefID)
}

// IsDueForRenewal reports whether the auto-renew job should renew s on
// today, given how many days ahead of the end date renewal may happen.
func (s *Subscription) IsDueForRenewal(today time.Time, leadDays int) bool {
	if !s.autoRenew || !s.status.CanRenew() {
		return false
	}
	return !s.endDate.After(biztime.AddDays(biztime.Truncate(today), leadDays))
}

func (s *Subscription) touch() {
	s.version++
	s.updatedAt = time.Now().UTC()
}
