package usecases

import (
	stderrors "errors"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
)

// toAppError translates menu domain errors for the transport layer. Errors
// that are already AppErrors pass through.
func toAppError(err error) error {
	if err == nil || errors.IsAppError(err) {
		return err
	}

	switch {
	case stderrors.Is(err, menu.ErrMenuNotFound):
		return errors.Wrap(errors.ErrorTypeNotFound, "menu not found", err)
	case stderrors.Is(err, menu.ErrNotMenuOwner):
		return errors.Wrap(errors.ErrorTypeForbidden, "you can only manage your own menus", err)
	case stderrors.Is(err, menu.ErrInvalidMenu), stderrors.Is(err, menu.ErrInvalidScheduleItem):
		return errors.Wrap(errors.ErrorTypeValidation, "invalid menu", err)
	default:
		return errors.NewInternalError("menu operation failed")
	}
}
