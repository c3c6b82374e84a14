package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	menudto "github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	menuUsecases "github.com/tiffin-inc/tiffin/internal/application/menu/usecases"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
	"github.com/tiffin-inc/tiffin/internal/shared/utils"
)

type MenuHandler struct {
	createUseCase createMenuUseCase
	updateUseCase updateMenuUseCase
	getUseCase    getMenuUseCase
	listUseCase   listChefMenusUseCase
	deleteUseCase deleteMenuUseCase
	logger        logger.Interface
}

func NewMenuHandler(
	createUC createMenuUseCase,
	updateUC updateMenuUseCase,
	getUC getMenuUseCase,
	listUC listChefMenusUseCase,
	deleteUC deleteMenuUseCase,
	logger logger.Interface,
) *MenuHandler {
	return &MenuHandler{
		createUseCase: createUC,
		updateUseCase: updateUC,
		getUseCase:    getUC,
		listUseCase:   listUC,
		deleteUseCase: deleteUC,
		logger:        logger,
	}
}

// ScheduleItemRequest is one dish offered on a weekday for a meal.
type ScheduleItemRequest struct {
	Day         string           `json:"day" binding:"required,weekday"`
	MealType    string           `json:"meal_type" binding:"required,mealtype"`
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Price       *decimal.Decimal `json:"price"`
}

type CreateMenuRequest struct {
	Title       string                `json:"title" binding:"required,max=200"`
	Description string                `json:"description" binding:"max=10000"`
	Schedule    []ScheduleItemRequest `json:"schedule" binding:"required,min=1,dive"`
}

// UpdateMenuRequest replaces only the fields that are present.
type UpdateMenuRequest struct {
	Title       string                `json:"title" binding:"max=200"`
	Description string                `json:"description" binding:"max=10000"`
	Schedule    []ScheduleItemRequest `json:"schedule" binding:"omitempty,dive"`
}

func toScheduleInputs(items []ScheduleItemRequest) []menudto.ScheduleItemInput {
	if items == nil {
		return nil
	}
	out := make([]menudto.ScheduleItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, menudto.ScheduleItemInput{
			Day:         item.Day,
			MealType:    item.MealType,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
		})
	}
	return out
}

// CreateMenu publishes a new weekly menu for the calling chef
// @Summary Create menu
// @Description Publish a weekly menu. Each schedule item is one dish for a weekday and meal type.
// @Tags Menus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMenuRequest true "Menu"
// @Success 201 {object} utils.APIResponse{data=menudto.MenuDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /menus [post]
func (h *MenuHandler) CreateMenu(c *gin.Context) {
	userID, role, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create menu", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), menuUsecases.CreateMenuCommand{
		ChefID:      userID,
		Role:        role,
		Title:       req.Title,
		Description: req.Description,
		Schedule:    toScheduleInputs(req.Schedule),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Menu created successfully")
}

// UpdateMenu changes a menu owned by the caller
// @Summary Update menu
// @Description Replace the title, description or schedule of a menu. Omitted fields are kept.
// @Tags Menus
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Menu ID (menu_xxx)"
// @Param request body UpdateMenuRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=menudto.MenuDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /menus/{id} [put]
func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update menu", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, utils.BindError(err))
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), menuUsecases.UpdateMenuCommand{
		MenuSID:     c.Param("id"),
		ChefID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Schedule:    toScheduleInputs(req.Schedule),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Menu updated successfully", result)
}

// @Summary Get menu
// @Description Get a published menu with its rendered description
// @Tags Menus
// @Produce json
// @Param id path string true "Menu ID (menu_xxx)"
// @Success 200 {object} utils.APIResponse{data=menudto.MenuDTO}
// @Failure 404 {object} utils.APIResponse
// @Router /menus/{id} [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// @Summary List chef menus
// @Description List the menus of one chef, oldest first
// @Tags Menus
// @Produce json
// @Param chef_id path int true "Chef user ID"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]menudto.MenuDTO}}
// @Failure 400 {object} utils.APIResponse
// @Router /chefs/{chef_id}/menus [get]
func (h *MenuHandler) ListChefMenus(c *gin.Context) {
	chefID, err := strconv.ParseUint(c.Param("chef_id"), 10, 64)
	if err != nil || chefID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid chef ID")
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUseCase.Execute(c.Request.Context(), menuUsecases.ListChefMenusQuery{
		ChefID:   uint(chefID),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Menus, result.Total, result.Page, result.PageSize)
}

// @Summary Delete menu
// @Description Delete a menu owned by the caller
// @Tags Menus
// @Security BearerAuth
// @Param id path string true "Menu ID (menu_xxx)"
// @Success 204
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /menus/{id} [delete]
func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), menuUsecases.DeleteMenuCommand{
		MenuSID: c.Param("id"),
		ChefID:  userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
