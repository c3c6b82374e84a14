package subscription

import (
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

// Renew extends s into its next period priced against currentMenu, which may
// have changed since the last period. currentMenu is nil when the menu has
// been deleted. Nothing is mutated unless the whole renewal succeeds.
//
// The new period runs from the day after the current end date through the
// new end date inclusive.
func (s *Subscription) Renew(currentMenu *menu.Menu, requesterID uint) (*Period, error) {
	if requesterID == 0 || requesterID != s.subscriberID {
		return nil, ErrForbidden
	}
	if !s.status.CanRenew() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotRenewable, s.status)
	}
	if currentMenu == nil {
		return nil, ErrMenuGone
	}
	if currentMenu.ID() != s.menuID {
		return nil, fmt.Errorf("%w: menu %d does not belong to subscription %s", ErrInvalidSubscription, currentMenu.ID(), s.sid)
	}

	lookup, err := BuildPriceLookup(currentMenu.Schedule())
	if err != nil {
		return nil, err
	}

	billedFrom := biztime.AddDays(s.endDate, 1)
	newEnd := s.subscriptionType.NextEnd(s.endDate)
	price, err := priceWithLookup(lookup, s.selection, s.subscriptionType, billedFrom, newEnd)
	if err != nil {
		return nil, err
	}

	period, err := NewPeriod(s.id, PeriodKindRenewed, billedFrom, newEnd, price)
	if err != nil {
		return nil, err
	}

	s.endDate = newEnd
	s.totalPrice = price
	s.status = vo.StatusActive
	s.touch()

	return period, nil
}
