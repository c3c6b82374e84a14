package usecases

import (
	"context"
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type UpdateStatusCommand struct {
	SubscriptionSID string
	RequesterID     uint
	Status          string
}

type UpdateStatusUseCase struct {
	subscriptionRepo subscription.Repository
	txManager        db.Transactor
	publisher        events.Publisher
	logger           logger.Interface
}

func NewUpdateStatusUseCase(
	subscriptionRepo subscription.Repository,
	txManager db.Transactor,
	publisher events.Publisher,
	logger logger.Interface,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		publisher:        publisher,
		logger:           logger,
	}
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, cmd UpdateStatusCommand) (*dto.SubscriptionDTO, error) {
	target, err := vo.ParseStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError("unknown subscription status", err.Error())
	}

	var (
		sub       *subscription.Subscription
		oldStatus vo.SubscriptionStatus
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err = loadSubscription(txCtx, uc.subscriptionRepo, cmd.SubscriptionSID)
		if err != nil {
			return err
		}
		oldStatus = sub.Status()

		if err := sub.ChangeStatus(cmd.RequesterID, target); err != nil {
			return err
		}
		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		uc.logger.Warnw("status change refused",
			"subscription_id", cmd.SubscriptionSID,
			"requester_id", cmd.RequesterID,
			"requested_status", target,
			"error", err,
		)
		return nil, toAppError(err)
	}

	uc.logger.Infow("subscription status changed",
		"subscription_id", sub.SID(),
		"from", oldStatus,
		"to", sub.Status(),
		"requester_id", cmd.RequesterID,
	)

	publish(uc.publisher, uc.logger, subscription.NewStatusChangedEvent(sub, oldStatus.String(), cmd.RequesterID))

	return dto.ToSubscriptionDTO(sub), nil
}

func loadSubscription(ctx context.Context, repo subscription.Repository, sid string) (*subscription.Subscription, error) {
	sub, err := repo.GetBySID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return sub, nil
}

// publish hands an event to the publisher after commit. Failures are logged
// and never undo the operation.
func publish(p events.Publisher, log logger.Interface, event events.DomainEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(event); err != nil {
		log.Warnw("failed to publish event", "event_type", event.EventType(), "aggregate_id", event.AggregateID(), "error", err)
	}
}
