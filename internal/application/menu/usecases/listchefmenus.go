package usecases

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/services/markdown"
)

type ListChefMenusQuery struct {
	ChefID   uint
	Page     int
	PageSize int
}

type ListChefMenusResult struct {
	Menus    []*dto.MenuDTO
	Total    int64
	Page     int
	PageSize int
}

type ListChefMenusUseCase struct {
	menuRepo menu.Repository
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewListChefMenusUseCase(menuRepo menu.Repository, renderer markdown.Renderer, logger logger.Interface) *ListChefMenusUseCase {
	return &ListChefMenusUseCase{
		menuRepo: menuRepo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *ListChefMenusUseCase) Execute(ctx context.Context, query ListChefMenusQuery) (*ListChefMenusResult, error) {
	page, pageSize := query.Page, query.PageSize
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	menus, total, err := uc.menuRepo.ListByChef(ctx, query.ChefID, page, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list chef menus", "chef_id", query.ChefID, "error", err)
		return nil, toAppError(err)
	}

	out := make([]*dto.MenuDTO, 0, len(menus))
	for _, m := range menus {
		out = append(out, renderMenu(m, uc.renderer, uc.logger))
	}

	return &ListChefMenusResult{
		Menus:    out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
