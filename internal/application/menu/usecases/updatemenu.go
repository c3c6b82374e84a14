package usecases

import (
	"context"
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/services/markdown"
)

// UpdateMenuCommand updates a menu. Empty title or description keep the
// current value; a nil Schedule keeps the current schedule.
type UpdateMenuCommand struct {
	MenuSID     string
	ChefID      uint
	Title       string
	Description string
	Schedule    []dto.ScheduleItemInput
}

type UpdateMenuUseCase struct {
	menuRepo menu.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewUpdateMenuUseCase(menuRepo menu.Repository, renderer markdown.Renderer, logger logger.Interface) *UpdateMenuUseCase {
	return &UpdateMenuUseCase{
		menuRepo: menuRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *UpdateMenuUseCase) Execute(ctx context.Context, cmd UpdateMenuCommand) (*dto.MenuDTO, error) {
	m, err := loadOwnedMenu(ctx, uc.menuRepo, cmd.MenuSID, cmd.ChefID)
	if err != nil {
		return nil, err
	}

	m.UpdateDetails(cmd.Title, cmd.Description)

	if cmd.Schedule != nil {
		schedule, err := toScheduleItems(cmd.Schedule)
		if err != nil {
			return nil, err
		}
		if err := m.ReplaceSchedule(schedule); err != nil {
			return nil, toAppError(err)
		}
	}

	if err := uc.menuRepo.Update(ctx, m); err != nil {
		uc.logger.Errorw("failed to update menu", "menu_id", cmd.MenuSID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("menu updated", "menu_id", cmd.MenuSID, "schedule_replaced", cmd.Schedule != nil)

	return renderMenu(m, uc.renderer, uc.logger), nil
}

func loadOwnedMenu(ctx context.Context, repo menu.Repository, sid string, chefID uint) (*menu.Menu, error) {
	m, err := repo.GetBySID(ctx, sid)
	if err != nil {
		return nil, toAppError(fmt.Errorf("failed to get menu: %w", err))
	}
	if m == nil {
		return nil, toAppError(menu.ErrMenuNotFound)
	}
	if !m.IsOwnedBy(chefID) {
		return nil, toAppError(menu.ErrNotMenuOwner)
	}
	return m, nil
}
