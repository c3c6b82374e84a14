package usecases

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	SubscriptionSID string
	RequesterID     uint
}

// GetSubscriptionUseCase returns a subscription with its billed periods to
// the subscriber or the chef.
type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	periodRepo       subscription.PeriodRepository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	periodRepo subscription.PeriodRepository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		periodRepo:       periodRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*dto.SubscriptionDetailDTO, error) {
	sub, err := loadSubscription(ctx, uc.subscriptionRepo, query.SubscriptionSID)
	if err != nil {
		uc.logger.Warnw("failed to load subscription", "subscription_id", query.SubscriptionSID, "error", err)
		return nil, toAppError(err)
	}
	if !sub.IsParty(query.RequesterID) {
		return nil, toAppError(subscription.ErrForbidden)
	}

	periods, err := uc.periodRepo.ListBySubscription(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to list subscription periods", "subscription_id", sub.SID(), "error", err)
		return nil, toAppError(err)
	}

	return dto.ToSubscriptionDetailDTO(sub, periods), nil
}
