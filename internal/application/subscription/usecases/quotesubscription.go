package usecases

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/menu"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

type QuoteSubscriptionCommand struct {
	MenuSID          string
	Selection        []dto.SelectionDayInput
	SubscriptionType string
	StartDate        string
}

// QuoteSubscriptionUseCase prices a prospective subscription exactly as
// creation would, so the caller can collect payment first.
type QuoteSubscriptionUseCase struct {
	menuRepo menu.Repository
	currency string
	logger   logger.Interface
}

func NewQuoteSubscriptionUseCase(menuRepo menu.Repository, currency string, logger logger.Interface) *QuoteSubscriptionUseCase {
	return &QuoteSubscriptionUseCase{
		menuRepo: menuRepo,
		currency: currency,
		logger:   logger,
	}
}

func (uc *QuoteSubscriptionUseCase) Execute(ctx context.Context, cmd QuoteSubscriptionCommand) (*dto.QuoteDTO, error) {
	selection, err := parseSelection(cmd.Selection)
	if err != nil {
		return nil, err
	}
	subType, err := parseSubscriptionType(cmd.SubscriptionType)
	if err != nil {
		return nil, err
	}
	start, err := parseStartDate(cmd.StartDate)
	if err != nil {
		return nil, err
	}

	m, err := uc.menuRepo.GetBySID(ctx, cmd.MenuSID)
	if err != nil {
		uc.logger.Errorw("failed to get menu", "menu_id", cmd.MenuSID, "error", err)
		return nil, toAppError(err)
	}
	if m == nil {
		return nil, errors.NewNotFoundError("menu not found")
	}

	end, price, err := subscription.FirstPeriod(m.Schedule(), selection, subType, start)
	if err != nil {
		uc.logger.Warnw("failed to price subscription", "menu_id", cmd.MenuSID, "error", err)
		return nil, toAppError(err)
	}

	return &dto.QuoteDTO{
		MenuID:           m.SID(),
		SubscriptionType: subType.String(),
		StartDate:        biztime.FormatDate(start),
		EndDate:          biztime.FormatDate(end),
		TotalPrice:       price,
		AmountMinor:      subscription.ToMinorUnits(price),
		Currency:         uc.currency,
	}, nil
}
