package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	menuvo "github.com/tiffin-inc/tiffin/internal/domain/menu/valueobjects"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/utils"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the weekday and mealtype binding tags on gin's
// validator. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		v.RegisterTagNameFunc(utils.JSONTagName)

		if err := v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			_, err := menuvo.ParseWeekday(fl.Field().String())
			return err == nil
		}); err != nil {
			registerErr = err
			return
		}

		registerErr = v.RegisterValidation("mealtype", func(fl validator.FieldLevel) bool {
			_, err := menuvo.ParseMealType(fl.Field().String())
			return err == nil
		})
	})
	return registerErr
}

// currentUser returns the identity set by the auth middleware.
func currentUser(c *gin.Context) (uint, string, bool) {
	raw, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, "", false
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return 0, "", false
	}
	return userID, c.GetString(constants.ContextKeyUserRole), true
}
