package subscription

import (
	"fmt"
	"time"

	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
)

// ActorsFor returns the parts userID plays on s. A user who subscribed to
// their own menu is both subscriber and chef.
func (s *Subscription) ActorsFor(userID uint) []vo.Actor {
	var actors []vo.Actor
	if userID == 0 {
		return actors
	}
	if userID == s.subscriberID {
		actors = append(actors, vo.ActorSubscriber)
	}
	if userID == s.chefID {
		actors = append(actors, vo.ActorChef)
	}
	return actors
}

// ChangeStatus applies a status change requested by requesterID. Only the
// status changes; dates and price are untouched.
func (s *Subscription) ChangeStatus(requesterID uint, target vo.SubscriptionStatus) error {
	actors := s.ActorsFor(requesterID)
	if len(actors) == 0 {
		return ErrForbidden
	}
	if !vo.ValidStatuses[target] {
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, target)
	}

	for _, actor := range actors {
		if s.status.CanTransitionTo(target, actor) {
			s.status = target
			s.touch()
			return nil
		}
	}
	return illegalTransition(s.status.String(), target.String())
}

// MarkExpired moves an active or paused subscription whose end date has
// passed to expired. It is driven by the system, not by a party.
func (s *Subscription) MarkExpired(now time.Time) error {
	if !s.status.CanExpire() {
		return illegalTransition(s.status.String(), vo.StatusExpired.String())
	}
	if !s.endDate.Before(biztime.DateOf(now)) {
		return fmt.Errorf("%w: subscription ends on %s", ErrIllegalTransition, biztime.FormatDate(s.endDate))
	}
	s.status = vo.StatusExpired
	s.touch()
	return nil
}
