package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "github.com/tiffin-inc/tiffin/internal/application/subscription/dto"
	"github.com/tiffin-inc/tiffin/internal/application/subscription/usecases"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/utils"
)

// SubscriptionHandler serves the subscriber and chef side of meal
// subscriptions.
type SubscriptionHandler struct {
	quoteUseCase  quoteSubscriptionUseCase
	createUseCase createSubscriptionUseCase
	getUseCase    getSubscriptionUseCase
	listUseCase   listSubscriptionsUseCase
	statusUseCase updateStatusUseCase
	renewUseCase  renewSubscriptionUseCase
	logger        logger.Interface
}

func NewSubscriptionHandler(
	quoteUC quoteSubscriptionUseCase,
	createUC createSubscriptionUseCase,
	getUC getSubscriptionUseCase,
	listUC listSubscriptionsUseCase,
	statusUC updateStatusUseCase,
	renewUC renewSubscriptionUseCase,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		quoteUseCase:  quoteUC,
		createUseCase: createUC,
		getUseCase:    getUC,
		listUseCase:   listUC,
		statusUseCase: statusUC,
		renewUseCase:  renewUC,
		logger:        logger,
	}
}

type SelectionDayRequest struct {
	Day       string   `json:"day" binding:"required,weekday"`
	MealTypes []string `json:"meal_types" binding:"required,min=1,dive,mealtype"`
}

// QuoteSubscriptionRequest prices a selection without creating anything.
type QuoteSubscriptionRequest struct {
	MenuID           string                `json:"menu_id" binding:"required"`
	Selection        []SelectionDayRequest `json:"selection" binding:"required,min=1,dive"`
	SubscriptionType string                `json:"subscription_type" binding:"required"`
	StartDate        string                `json:"start_date" binding:"required"`
}

type CreateSubscriptionRequest struct {
	MenuID           string                `json:"menu_id" binding:"required"`
	Selection        []SelectionDayRequest `json:"selection" binding:"required,min=1,dive"`
	SubscriptionType string                `json:"subscription_type" binding:"required"`
	StartDate        string                `json:"start_date" binding:"required"`
	AutoRenew        bool                  `json:"auto_renew"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func toSelectionInputs(days []SelectionDayRequest) []subdto.SelectionDayInput {
	out := make([]subdto.SelectionDayInput, 0, len(days))
	for _, d := range days {
		out = append(out, subdto.SelectionDayInput{Day: d.Day, MealTypes: d.MealTypes})
	}
	return out
}

// QuoteSubscription prices a selection without storing anything
// @Summary Quote subscription
// @Description Price the first period of a selection on a menu
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body QuoteSubscriptionRequest true "Selection to price"
// @Success 200 {object} utils.APIResponse{data=subdto.QuoteDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /subscriptions/quote [post]
func (h *SubscriptionHandler) QuoteSubscription(c *gin.Context) {
	var req QuoteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for quote subscription", "error", err)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.quoteUseCase.Execute(c.Request.Context(), usecases.QuoteSubscriptionCommand{
		MenuSID:          req.MenuID,
		Selection:        toSelectionInputs(req.Selection),
		SubscriptionType: req.SubscriptionType,
		StartDate:        req.StartDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// @Summary Create subscription
// @Description Subscribe to a menu. The subscription starts pending until the chef accepts it.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} utils.APIResponse{data=subdto.SubscriptionDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		SubscriberID:     userID,
		SubscriberEmail:  c.GetString(constants.ContextKeyUserEmail),
		MenuSID:          req.MenuID,
		Selection:        toSelectionInputs(req.Selection),
		SubscriptionType: req.SubscriptionType,
		StartDate:        req.StartDate,
		AutoRenew:        req.AutoRenew,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription created successfully")
}

// GetSubscription returns a subscription with its billed periods
// @Summary Get subscription
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID (sub_xxx)"
// @Success 200 {object} utils.APIResponse{data=subdto.SubscriptionDetailDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{
		SubscriptionSID: c.Param("id"),
		RequesterID:     userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMySubscriptions lists subscriptions the caller subscribed to.
// @Summary List my subscriptions
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param subscription_type query string false "weekly or monthly"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]subdto.SubscriptionDTO}}
// @Router /subscriptions/mine [get]
func (h *SubscriptionHandler) ListMySubscriptions(c *gin.Context) {
	h.list(c, false)
}

// ListChefSubscriptions lists subscriptions to the caller's menus.
// @Summary List incoming subscriptions
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param subscription_type query string false "weekly or monthly"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]subdto.SubscriptionDTO}}
// @Failure 403 {object} utils.APIResponse
// @Router /subscriptions/chef [get]
func (h *SubscriptionHandler) ListChefSubscriptions(c *gin.Context) {
	h.list(c, true)
}

func (h *SubscriptionHandler) list(c *gin.Context, asChef bool) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListSubscriptionsQuery{
		RequesterID:      userID,
		AsChef:           asChef,
		Status:           c.Query("status"),
		SubscriptionType: c.Query("subscription_type"),
		Page:             p.Page,
		PageSize:         p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Subscriptions, result.Total, result.Page, result.PageSize)
}

// @Summary Change subscription status
// @Description The chef accepts or rejects a pending subscription. The subscriber pauses, resumes or cancels it.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID (sub_xxx)"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} utils.APIResponse{data=subdto.SubscriptionDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /subscriptions/{id}/status [patch]
func (h *SubscriptionHandler) UpdateStatus(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.statusUseCase.Execute(c.Request.Context(), usecases.UpdateStatusCommand{
		SubscriptionSID: c.Param("id"),
		RequesterID:     userID,
		Status:          req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription status updated", result)
}

// RenewSubscription extends an active subscription by one period
// @Summary Renew subscription
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID (sub_xxx)"
// @Success 200 {object} utils.APIResponse{data=subdto.SubscriptionDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /subscriptions/{id}/renew [post]
func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.renewUseCase.Execute(c.Request.Context(), usecases.RenewSubscriptionCommand{
		SubscriptionSID: c.Param("id"),
		RequesterID:     userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription renewed", result)
}
