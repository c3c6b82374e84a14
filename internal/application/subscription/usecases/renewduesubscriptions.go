package usecases

import (
	"context"
	"time"

	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// RenewDueSubscriptionsUseCase renews auto-renewing active subscriptions that
// end within leadDays of today. Each renewal runs on behalf of the
// subscriber through RenewSubscriptionUseCase.
type RenewDueSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	renewUC          *RenewSubscriptionUseCase
	leadDays         int
	logger           logger.Interface
	now              func() time.Time
}

func NewRenewDueSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	renewUC *RenewSubscriptionUseCase,
	leadDays int,
	logger logger.Interface,
) *RenewDueSubscriptionsUseCase {
	if leadDays < 0 {
		leadDays = 0
	}
	return &RenewDueSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		renewUC:          renewUC,
		leadDays:         leadDays,
		logger:           logger,
		now:              biztime.NowUTC,
	}
}

// SetClock overrides the time source. Intended for tests.
func (uc *RenewDueSubscriptionsUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *RenewDueSubscriptionsUseCase) Execute(ctx context.Context) (*BatchResult, error) {
	today := biztime.DateOf(uc.now())
	horizon := biztime.AddDays(today, uc.leadDays)

	due, err := uc.subscriptionRepo.FindDueForRenewal(ctx, horizon)
	if err != nil {
		uc.logger.Errorw("failed to find subscriptions due for renewal", "horizon", biztime.FormatDate(horizon), "error", err)
		return nil, toAppError(err)
	}

	result := &BatchResult{Processed: len(due)}
	for _, sub := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !sub.IsDueForRenewal(today, uc.leadDays) {
			result.Skipped++
			continue
		}

		_, err := uc.renewUC.Execute(ctx, RenewSubscriptionCommand{
			SubscriptionSID: sub.SID(),
			RequesterID:     sub.SubscriberID(),
		})
		switch {
		case err == nil:
			result.Succeeded++
		case errors.IsType(err, errors.ErrorTypeNotRenewable), errors.IsConflictError(err):
			result.Skipped++
		default:
			// menu gone or invalid price data; the subscription stays as it
			// is and runs out at its end date
			result.Failed++
			uc.logger.Warnw("auto-renewal failed", "subscription_id", sub.SID(), "error", err)
		}
	}

	if result.Processed > 0 {
		uc.logger.Infow("auto-renewal run completed",
			"processed", result.Processed,
			"renewed", result.Succeeded,
			"skipped", result.Skipped,
			"failed", result.Failed,
		)
	}
	return result, nil
}
