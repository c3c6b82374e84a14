package usecases

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/services/markdown"
)

type GetMenuUseCase struct {
	menuRepo menu.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewGetMenuUseCase(menuRepo menu.Repository, renderer markdown.Renderer, logger logger.Interface) *GetMenuUseCase {
	return &GetMenuUseCase{
		menuRepo: menuRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *GetMenuUseCase) Execute(ctx context.Context, sid string) (*dto.MenuDTO, error) {
	m, err := uc.menuRepo.GetBySID(ctx, sid)
	if err != nil {
		uc.logger.Errorw("failed to get menu", "menu_id", sid, "error", err)
		return nil, toAppError(err)
	}
	if m == nil {
		return nil, toAppError(menu.ErrMenuNotFound)
	}
	return renderMenu(m, uc.renderer, uc.logger), nil
}
