package http

import (
	deliveryUsecases "github.com/tiffin-inc/tiffin/internal/application/delivery/usecases"
	menuUsecases "github.com/tiffin-inc/tiffin/internal/application/menu/usecases"
	subscriptionUsecases "github.com/tiffin-inc/tiffin/internal/application/subscription/usecases"
	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/shared/db"
	"github.com/tiffin-inc/tiffin/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Menu
	createMenuUC    *menuUsecases.CreateMenuUseCase
	updateMenuUC    *menuUsecases.UpdateMenuUseCase
	getMenuUC       *menuUsecases.GetMenuUseCase
	listChefMenusUC *menuUsecases.ListChefMenusUseCase
	deleteMenuUC    *menuUsecases.DeleteMenuUseCase

	// Subscription
	quoteSubscriptionUC  *subscriptionUsecases.QuoteSubscriptionUseCase
	createSubscriptionUC *subscriptionUsecases.CreateSubscriptionUseCase
	getSubscriptionUC    *subscriptionUsecases.GetSubscriptionUseCase
	listSubscriptionsUC  *subscriptionUsecases.ListSubscriptionsUseCase
	updateStatusUC       *subscriptionUsecases.UpdateStatusUseCase
	renewSubscriptionUC  *subscriptionUsecases.RenewSubscriptionUseCase

	// Delivery
	markDeliveredUC  *deliveryUsecases.MarkDeliveredUseCase
	listDeliveriesUC *deliveryUsecases.ListDeliveriesUseCase

	// Background jobs
	expireSubscriptionsUC   *subscriptionUsecases.ExpireSubscriptionsUseCase
	renewDueSubscriptionsUC *subscriptionUsecases.RenewDueSubscriptionsUseCase
}

func (c *Container) initUseCases(txManager db.Transactor, publisher events.Publisher) {
	log := c.log
	repos := c.repos
	renderer := markdown.NewRenderer()

	ucs := &allUseCases{
		createMenuUC:    menuUsecases.NewCreateMenuUseCase(repos.menuRepo, renderer, log),
		updateMenuUC:    menuUsecases.NewUpdateMenuUseCase(repos.menuRepo, renderer, log),
		getMenuUC:       menuUsecases.NewGetMenuUseCase(repos.menuRepo, renderer, log),
		listChefMenusUC: menuUsecases.NewListChefMenusUseCase(repos.menuRepo, renderer, log),
		deleteMenuUC:    menuUsecases.NewDeleteMenuUseCase(repos.menuRepo, log),

		quoteSubscriptionUC: subscriptionUsecases.NewQuoteSubscriptionUseCase(repos.menuRepo, c.cfg.Subscription.Currency, log),
		createSubscriptionUC: subscriptionUsecases.NewCreateSubscriptionUseCase(
			repos.subscriptionRepo, repos.periodRepo, repos.menuRepo, txManager, log,
		),
		getSubscriptionUC:   subscriptionUsecases.NewGetSubscriptionUseCase(repos.subscriptionRepo, repos.periodRepo, log),
		listSubscriptionsUC: subscriptionUsecases.NewListSubscriptionsUseCase(repos.subscriptionRepo, log),
		updateStatusUC:      subscriptionUsecases.NewUpdateStatusUseCase(repos.subscriptionRepo, txManager, publisher, log),
		renewSubscriptionUC: subscriptionUsecases.NewRenewSubscriptionUseCase(
			repos.subscriptionRepo, repos.periodRepo, repos.menuRepo, txManager, publisher, log,
		),
		expireSubscriptionsUC: subscriptionUsecases.NewExpireSubscriptionsUseCase(repos.subscriptionRepo, txManager, publisher, log),

		markDeliveredUC: deliveryUsecases.NewMarkDeliveredUseCase(
			repos.subscriptionRepo, repos.deliveryRepo, txManager, publisher, log,
		),
		listDeliveriesUC: deliveryUsecases.NewListDeliveriesUseCase(repos.subscriptionRepo, repos.deliveryRepo, log),
	}
	ucs.renewDueSubscriptionsUC = subscriptionUsecases.NewRenewDueSubscriptionsUseCase(
		repos.subscriptionRepo, ucs.renewSubscriptionUC, c.cfg.Subscription.AutoRenewLeadDays, log,
	)

	c.ucs = ucs
}
