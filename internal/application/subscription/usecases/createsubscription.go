package usecases

import (
	"context"
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// CreateSubscriptionCommand is issued after the subscriber's payment has
// been confirmed by the payment collaborator.
type CreateSubscriptionCommand struct {
	SubscriberID     uint
	SubscriberEmail  string
	MenuSID          string
	Selection        []dto.SelectionDayInput
	SubscriptionType string
	StartDate        string
	AutoRenew        bool
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	periodRepo       subscription.PeriodRepository
	menuRepo         menu.Repository
	txManager        db.Transactor
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	periodRepo subscription.PeriodRepository,
	menuRepo menu.Repository,
	txManager db.Transactor,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		periodRepo:       periodRepo,
		menuRepo:         menuRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*dto.SubscriptionDTO, error) {
	if cmd.SubscriberID == 0 {
		return nil, errors.NewUnauthorizedError("subscriber identity is required")
	}
	selection, err := parseSelection(cmd.Selection)
	if err != nil {
		return nil, err
	}
	subType, err := parseSubscriptionType(cmd.SubscriptionType)
	if err != nil {
		return nil, err
	}
	start, err := parseStartDate(cmd.StartDate)
	if err != nil {
		return nil, err
	}

	m, err := uc.menuRepo.GetBySID(ctx, cmd.MenuSID)
	if err != nil {
		uc.logger.Errorw("failed to get menu", "menu_id", cmd.MenuSID, "error", err)
		return nil, toAppError(err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError("menu not found")
	}

	sub, err := subscription.NewSubscription(cmd.SubscriberID, m, selection, subType, start, cmd.AutoRenew)
	if err != nil {
		uc.logger.Warnw("failed to create subscription", "menu_id", cmd.MenuSID, "subscriber_id", cmd.SubscriberID, "error", err)
		return nil, toAppError(err)
	}
	sub.SetContactEmail(cmd.SubscriberEmail)

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}
		period, err := subscription.NewInitialPeriod(sub)
		if err != nil {
			return err
		}
		if err := uc.periodRepo.Append(txCtx, period); err != nil {
			return fmt.Errorf("failed to record first period: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to persist subscription", "menu_id", cmd.MenuSID, "subscriber_id", cmd.SubscriberID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.SID(),
		"subscriber_id", sub.SubscriberID(),
		"chef_id", sub.ChefID(),
		"type", sub.SubscriptionType(),
		"total_price", sub.TotalPrice().String(),
	)

	return dto.ToSubscriptionDTO(sub), nil
}
