package usecases

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/application/delivery/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type ListDeliveriesQuery struct {
	SubscriptionSID string
	RequesterID     uint
}

// ListDeliveriesUseCase returns the delivery log of a subscription to its
// subscriber or chef, oldest day first.
type ListDeliveriesUseCase struct {
	subscriptionRepo subscription.Repository
	deliveryRepo     delivery.Repository
	logger           logger.Interface
}

func NewListDeliveriesUseCase(
	subscriptionRepo subscription.Repository,
	deliveryRepo delivery.Repository,
	logger logger.Interface,
) *ListDeliveriesUseCase {
	return &ListDeliveriesUseCase{
		subscriptionRepo: subscriptionRepo,
		deliveryRepo:     deliveryRepo,
		logger:           logger,
	}
}

func (uc *ListDeliveriesUseCase) Execute(ctx context.Context, query ListDeliveriesQuery) ([]*dto.DeliveryDTO, error) {
	sub, err := loadSubscription(ctx, uc.subscriptionRepo, query.SubscriptionSID)
	if err != nil {
		return nil, toAppError(err)
	}
	if !sub.IsParty(query.RequesterID) {
		return nil, errors.NewForbiddenError("you are not allowed to view deliveries of this subscription")
	}

	deliveries, err := uc.deliveryRepo.ListBySubscription(ctx, sub.ID())
	if err != nil {
		uc.logger.Errorw("failed to list deliveries", "subscription_id", sub.SID(), "error", err)
		return nil, toAppError(err)
	}
	return dto.ToDeliveryDTOs(deliveries), nil
}
