package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/domain/delivery"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

func toAppError(err error) error {
	if err == nil || errors.IsAppError(err) {
		return err
	}

	switch {
	case stderrors.Is(err, subscription.ErrSubscriptionNotFound):
		return errors.Wrap(errors.ErrorTypeNotFound, "subscription not found", err)
	case stderrors.Is(err, subscription.ErrForbidden):
		return errors.Wrap(errors.ErrorTypeForbidden, "only the chef of this subscription can record deliveries", err)
	case stderrors.Is(err, delivery.ErrNotInSelection):
		return errors.Wrap(errors.ErrorTypeValidation, "meal is not part of the subscription selection", err)
	case stderrors.Is(err, delivery.ErrInvalidDelivery):
		return errors.Wrap(errors.ErrorTypeValidation, "invalid delivery request", err)
	case stderrors.Is(err, delivery.ErrIllegalTransition):
		return errors.Wrap(errors.ErrorTypeIllegalTransition, "delivery cannot be marked delivered in its current status", err)
	case stderrors.Is(err, delivery.ErrDuplicateDelivery),
		stderrors.Is(err, delivery.ErrConcurrentUpdate):
		return errors.Wrap(errors.ErrorTypeConflict, "delivery was changed by another request, retry", err)
	default:
		return errors.NewInternalError("delivery operation failed")
	}
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
