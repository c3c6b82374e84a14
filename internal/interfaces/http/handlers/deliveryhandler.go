package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tiffin-inc/tiffin/internal/application/delivery/usecases"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/utils"
)

type DeliveryHandler struct {
	markUseCase markDeliveredUseCase
	listUseCase listDeliveriesUseCase
	logger      logger.Interface
}

func NewDeliveryHandler(markUC markDeliveredUseCase, listUC listDeliveriesUseCase, logger logger.Interface) *DeliveryHandler {
	return &DeliveryHandler{
		markUseCase: markUC,
		listUseCase: listUC,
		logger:      logger,
	}
}

// MarkDeliveredRequest names one meal item of a subscription on one day.
// DeliveryDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
type MarkDeliveredRequest struct {
	SubscriptionID string `json:"subscription_id" binding:"required"`
	DeliveryDate   string `json:"delivery_date" binding:"required"`
	DayOfWeek      string `json:"day_of_week" binding:"required,weekday"`
	MealType       string `json:"meal_type" binding:"required,mealtype"`
	ItemName       string `json:"item_name" binding:"required,max=200"`
	Quantity       int    `json:"quantity" binding:"omitempty,min=1"`
	Notes          string `json:"notes" binding:"max=500"`
}

// MarkDelivered confirms a meal hand-over
// @Summary Mark a meal as delivered
// @Description Record that the chef handed over one meal of a subscription. Repeating the call for the same meal returns the existing record.
// @Tags Deliveries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MarkDeliveredRequest true "Delivered meal"
// @Success 200 {object} utils.APIResponse{data=dto.MarkDeliveredResult}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /deliveries/mark-delivered [post]
func (h *DeliveryHandler) MarkDelivered(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req MarkDeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for mark delivered", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.markUseCase.Execute(c.Request.Context(), usecases.MarkDeliveredCommand{
		SubscriptionSID: req.SubscriptionID,
		RequesterID:     userID,
		DeliveryDate:    req.DeliveryDate,
		DayOfWeek:       req.DayOfWeek,
		MealType:        req.MealType,
		ItemName:        req.ItemName,
		Quantity:        req.Quantity,
		Notes:           req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Meal marked as delivered"
	if result.AlreadyDelivered {
		message = "Meal already marked as delivered"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// ListDeliveries returns the delivery log of a subscription
// @Summary List subscription deliveries
// @Description List the recorded deliveries of a subscription, oldest day first. Only its subscriber or chef may read them.
// @Tags Deliveries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID (sub_xxx)"
// @Success 200 {object} utils.APIResponse{data=[]dto.DeliveryDTO}
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /subscriptions/{id}/deliveries [get]
func (h *DeliveryHandler) ListDeliveries(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListDeliveriesQuery{
		SubscriptionSID: c.Param("id"),
		RequesterID:     userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
