package subscription

import (
	"context"
	"time"

	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
)

// Repository persists subscriptions. Getters return (nil, nil) when nothing
// matches. Update fails with ErrConcurrentUpdate when the stored version is
// no longer the one the aggregate was loaded at.
type Repository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	Update(ctx context.Context, subscription *Subscription) error

	List(ctx context.Context, filter Filter) ([]*Subscription, int64, error)
	FindExpired(ctx context.Context, today time.Time) ([]*Subscription, error)
	FindDueForRenewal(ctx context.Context, endingOnOrBefore time.Time) ([]*Subscription, error)
}

type Filter struct {
	SubscriberID     *uint
	ChefID           *uint
	Status           *vo.SubscriptionStatus
	SubscriptionType *vo.SubscriptionType
	Page             int
	PageSize         int
}

// PeriodRepository stores the billed period history.
type PeriodRepository interface {
	Append(ctx context.Context, period *Period) error
	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*Period, error)
}
