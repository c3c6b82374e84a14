package usecases

import (
	stderrors "errors"

	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

// toAppError translates subscription domain errors into the application
// error taxonomy. AppErrors pass through unchanged.
func toAppError(err error) error {
	if err == nil || errors.IsAppError(err) {
		return err
	}

	switch {
	case stderrors.Is(err, subscription.ErrSubscriptionNotFound):
		return errors.Wrap(errors.ErrorTypeNotFound, "subscription not found", err)
	case stderrors.Is(err, subscription.ErrForbidden):
		return errors.Wrap(errors.ErrorTypeForbidden, "you are not allowed to act on this subscription", err)
	case stderrors.Is(err, subscription.ErrIllegalTransition):
		return errors.Wrap(errors.ErrorTypeIllegalTransition, "status change is not permitted", err)
	case stderrors.Is(err, subscription.ErrNotRenewable):
		return errors.Wrap(errors.ErrorTypeNotRenewable, "subscription cannot be renewed in its current status", err)
	case stderrors.Is(err, subscription.ErrMenuGone):
		return errors.Wrap(errors.ErrorTypeNotFound, "the menu of this subscription no longer exists", err)
	case stderrors.Is(err, subscription.ErrInvalidMenuData):
		return errors.Wrap(errors.ErrorTypeInvalidMenuData, "menu has invalid price data", err)
	case stderrors.Is(err, subscription.ErrConcurrentUpdate):
		return errors.Wrap(errors.ErrorTypeConflict, "subscription was changed by another request, retry", err)
	case stderrors.Is(err, subscription.ErrInvalidSubscription),
		stderrors.Is(err, vo.ErrEmptySelection),
		stderrors.Is(err, vo.ErrDuplicateSelectionDay),
		stderrors.Is(err, vo.ErrInvalidSelectionDay):
		return errors.Wrap(errors.ErrorTypeValidation, "invalid subscription request", err)
	default:
		return errors.NewInternalError("subscription operation failed")
	}
}
