package usecases

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type DeleteMenuCommand struct {
	MenuSID string
	ChefID  uint
}

// DeleteMenuUseCase removes a menu. Subscriptions that reference it keep
// their history but can no longer be renewed.
type DeleteMenuUseCase struct {
	menuRepo menu.Repository
	logger   logger.Interface
}

func NewDeleteMenuUseCase(menuRepo menu.Repository, logger logger.Interface) *DeleteMenuUseCase {
	return &DeleteMenuUseCase{
		menuRepo: menuRepo,
		logger:   logger,
	}
}

func (uc *DeleteMenuUseCase) Execute(ctx context.Context, cmd DeleteMenuCommand) error {
	m, err := loadOwnedMenu(ctx, uc.menuRepo, cmd.MenuSID, cmd.ChefID)
	if err != nil {
		return err
	}

	if err := uc.menuRepo.Delete(ctx, m.ID()); err != nil {
		uc.logger.Errorw("failed to delete menu", "menu_id", cmd.MenuSID, "error", err)
		return toAppError(err)
	}

	uc.logger.Infow("menu deleted", "menu_id", cmd.MenuSID, "chef_id", cmd.ChefID)
	return nil
}
