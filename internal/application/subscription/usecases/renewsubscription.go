package usecases

import (
	"context"
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type RenewSubscriptionCommand struct {
	SubscriptionSID string
	RequesterID     uint
}

// RenewSubscriptionUseCase extends a subscription into its next period
// against the menu as it is now.
type RenewSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	periodRepo       subscription.PeriodRepository
	menuRepo         menu.Repository
	txManager        db.Transactor
	publisher        events.Publisher
	logger           logger.Interface
}

func NewRenewSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	periodRepo subscription.PeriodRepository,
	menuRepo menu.Repository,
	txManager db.Transactor,
	publisher events.Publisher,
	logger logger.Interface,
) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		periodRepo:       periodRepo,
		menuRepo:         menuRepo,
		txManager:        txManager,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, cmd RenewSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	var sub *subscription.Subscription

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = loadSubscription(txCtx, uc.subscriptionRepo, cmd.SubscriptionSID)
		if err != nil {
			return err
		}

		// nil when the menu was deleted; Renew reports that after the
		// ownership and status checks
		currentMenu, err := uc.menuRepo.GetByID(txCtx, sub.MenuID())
		if err != nil {
			return fmt.Errorf("failed to get menu: %w", err)
		}

		period, err := sub.Renew(currentMenu, cmd.RequesterID)
		if err != nil {
			return err
		}
		if err := uc.subscriptionRepo.Update(txCtx, sub); err != nil {
			return err
		}
		if err := uc.periodRepo.Append(txCtx, period); err != nil {
			return fmt.Errorf("failed to record renewed period: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warnw("renewal failed",
			"subscription_id", cmd.SubscriptionSID,
			"requester_id", cmd.RequesterID,
			"error", err,
		)
		return nil, toAppError(err)
	}

	uc.logger.Infow("subscription renewed",
		"subscription_id", sub.SID(),
		"new_end_date", biztime.FormatDate(sub.EndDate()),
		"total_price", sub.TotalPrice().String(),
	)

	publish(uc.publisher, uc.logger, subscription.NewRenewedEvent(sub))

	return dto.ToSubscriptionDTO(sub), nil
}
