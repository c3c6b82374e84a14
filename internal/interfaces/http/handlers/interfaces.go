package handlers

import (
	"context"

	deliverydto "github.com/tiffin-inc/tiffin/internal/application/delivery/dto"
	deliveryUsecases "github.com/tiffin-inc/tiffin/internal/application/delivery/usecases"
	menudto "github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	menuUsecases "github.com/tiffin-inc/tiffin/internal/application/menu/usecases"
	subdto "github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/application/subscription/usecases"
)

// Use case interfaces for MenuHandler

type createMenuUseCase interface {
	Execute(ctx context.Context, cmd menuUsecases.CreateMenuCommand) (*menudto.MenuDTO, error)
}

type updateMenuUseCase interface {
	Execute(ctx context.Context, cmd menuUsecases.UpdateMenuCommand) (*menudto.MenuDTO, error)
}

type getMenuUseCase interface {
	Execute(ctx context.Context, sid string) (*menudto.MenuDTO, error)
}

type listChefMenusUseCase interface {
	Execute(ctx context.Context, query menuUsecases.ListChefMenusQuery) (*menuUsecases.ListChefMenusResult, error)
}

type deleteMenuUseCase interface {
	Execute(ctx context.Context, cmd menuUsecases.DeleteMenuCommand) error
}

// Use case interfaces for SubscriptionHandler

type quoteSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.QuoteSubscriptionCommand) (*subdto.QuoteDTO, error)
}

type createSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

type getSubscriptionUseCase interface {
	Execute(ctx context.Context, query usecases.GetSubscriptionQuery) (*subdto.SubscriptionDetailDTO, error)
}

type listSubscriptionsUseCase interface {
	Execute(ctx context.Context, query usecases.ListSubscriptionsQuery) (*usecases.ListSubscriptionsResult, error)
}

type updateStatusUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateStatusCommand) (*subdto.SubscriptionDTO, error)
}

type renewSubscriptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.RenewSubscriptionCommand) (*subdto.SubscriptionDTO, error)
}

// Use case interfaces for DeliveryHandler

type markDeliveredUseCase interface {
	Execute(ctx context.Context, cmd deliveryUsecases.MarkDeliveredCommand) (*deliverydto.MarkDeliveredResult, error)
}

type listDeliveriesUseCase interface {
	Execute(ctx context.Context, query deliveryUsecases.ListDeliveriesQuery) ([]*deliverydto.DeliveryDTO, error)
}
