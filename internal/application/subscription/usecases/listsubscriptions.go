package usecases

import (
	"context"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/domain/subscription"
	vo "github.com/tiffin-inc/tiffin/internal/domain/subscription/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// ListSubscriptionsQuery lists the requester's subscriptions from one side:
// AsChef selects subscriptions to the requester's menus, otherwise the ones
// the requester holds.
type ListSubscriptionsQuery struct {
	RequesterID      uint
	AsChef           bool
	Status           string
	SubscriptionType string
	Page             int
	PageSize         int
}

type ListSubscriptionsResult struct {
	Subscriptions []*dto.SubscriptionDTO `json:"subscriptions"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewListSubscriptionsUseCase(subscriptionRepo subscription.Repository, logger logger.Interface) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, query ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	if query.Page < 1 {
		query.Page = constants.DefaultPage
	}
	if query.PageSize < 1 {
		query.PageSize = constants.DefaultPageSize
	}
	if query.PageSize > constants.MaxPageSize {
		query.PageSize = constants.MaxPageSize
	}

	filter := subscription.Filter{Page: query.Page, PageSize: query.PageSize}
	requester := query.RequesterID
	if query.AsChef {
		filter.ChefID = &requester
	} else {
		filter.SubscriberID = &requester
	}

	if query.Status != "" {
		status, err := vo.ParseStatus(query.Status)
		if err != nil {
			return nil, errors.NewValidationError("unknown subscription status", err.Error())
		}
		filter.Status = &status
	}
	if query.SubscriptionType != "" {
		subType, err := parseSubscriptionType(query.SubscriptionType)
		if err != nil {
			return nil, err
		}
		filter.SubscriptionType = &subType
	}

	subs, total, err := uc.subscriptionRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list subscriptions", "requester_id", query.RequesterID, "as_chef", query.AsChef, "error", err)
		return nil, toAppError(err)
	}

	return &ListSubscriptionsResult{
		Subscriptions: dto.ToSubscriptionDTOList(subs),
		Total:         total,
		Page:          query.Page,
		PageSize:      query.PageSize,
	}, nil
}
