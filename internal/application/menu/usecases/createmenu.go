package usecases

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/services/markdown"
)

type CreateMenuCommand struct {
	ChefID      uint
	Role        string
	Title       string
	Description string
	Schedule    []dto.ScheduleItemInput
}

type CreateMenuUseCase struct {
	menuRepo menu.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewCreateMenuUseCase(menuRepo menu.Repository, renderer markdown.Renderer, logger logger.Interface) *CreateMenuUseCase {
	return &CreateMenuUseCase{
		menuRepo: menuRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *CreateMenuUseCase) Execute(ctx context.Context, cmd CreateMenuCommand) (*dto.MenuDTO, error) {
	if cmd.Role != constants.RoleChef {
		return nil, errors.NewForbiddenError("only chefs can create menus")
	}

	schedule, err := toScheduleItems(cmd.Schedule)
	if err != nil {
		return nil, err
	}

	m, err := menu.NewMenu(cmd.ChefID, cmd.Title, cmd.Description, schedule)
	if err != nil {
		uc.logger.Warnw("invalid menu", "chef_id", cmd.ChefID, "error", err)
		return nil, toAppError(err)
	}

	if err := uc.menuRepo.Create(ctx, m); err != nil {
		uc.logger.Errorw("failed to create menu", "chef_id", cmd.ChefID, "error", err)
		return nil, toAppError(err)
	}

	uc.logger.Infow("menu created", "menu_id", m.SID(), "chef_id", cmd.ChefID, "items", len(schedule))

	return renderMenu(m, uc.renderer, uc.logger), nil
}

// renderMenu builds the DTO. A description that fails to render is returned
// without HTML.
func renderMenu(m *menu.Menu, renderer markdown.Renderer, log logger.Interface) *dto.MenuDTO {
	html, err := renderer.Render(m.Description())
	if err != nil {
		log.Warnw("failed to render menu description", "menu_id", m.SID(), "error", err)
		html = ""
	}
	return dto.ToMenuDTO(m, html)
}
