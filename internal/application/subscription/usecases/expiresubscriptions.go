package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// BatchResult summarises one run of a background subscription job.
type BatchResult struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ExpireSubscriptionsUseCase moves active and paused subscriptions whose end
// date has passed to expired.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	txManager        db.Transactor
	publisher        events.Publisher
	logger           logger.Interface
	now              func() time.Time
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	txManager db.Transactor,
	publisher events.Publisher,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		publisher:        publisher,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetClock overrides the time source. Intended for tests.
func (uc *ExpireSubscriptionsUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (*BatchResult, error) {
	now := uc.now()
	today := biztime.DateOf(now)

	candidates, err := uc.subscriptionRepo.FindExpired(ctx, today)
	if err != nil {
		uc.logger.Errorw("failed to find expired subscriptions", "today", biztime.FormatDate(today), "error", err)
		return nil, toAppError(err)
	}

	result := &BatchResult{Processed: len(candidates)}
	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var (
			sub       *subscription.Subscription
			oldStatus vo.SubscriptionStatus
		)
		err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			// reload so a change made since the scan is not overwritten
			sub, err = loadSubscription(txCtx, uc.subscriptionRepo, candidate.SID())
			if err != nil {
				return err
			}
			oldStatus = sub.Status()
			if err := sub.MarkExpired(now); err != nil {
				return err
			}
			return uc.subscriptionRepo.Update(txCtx, sub)
		})

		switch {
		case err == nil:
			result.Succeeded++
			publish(uc.publisher, uc.logger, subscription.NewStatusChangedEvent(sub, oldStatus.String(), 0))
		case stderrors.Is(err, subscription.ErrIllegalTransition),
			stderrors.Is(err, subscription.ErrConcurrentUpdate),
			stderrors.Is(err, subscription.ErrSubscriptionNotFound):
			result.Skipped++
			uc.logger.Debugw("skipped expiring subscription", "subscription_id", candidate.SID(), "reason", err)
		default:
			result.Failed++
			uc.logger.Errorw("failed to expire subscription", "subscription_id", candidate.SID(), "error", err)
		}
	}

	if result.Processed > 0 {
		uc.logger.Infow("subscription expiry run completed",
			"processed", result.Processed,
			"expired", result.Succeeded,
			"skipped", result.Skipped,
			"failed", result.Failed,
		)
	}
	return result, nil
}
