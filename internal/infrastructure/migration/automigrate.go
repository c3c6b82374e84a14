package migration

import (
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models owned by the subscription engine.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.MenuModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionPeriodModel{},
		&models.DeliveryModel{},
	}
}
