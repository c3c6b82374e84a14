package migration

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/models"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	db := openDB(t)

	strategy, err := NewGooseStrategy("sqlite", logger.NewNop())
	require.NoError(t, err)

	manager := NewManagerWithStrategy(strategy, logger.NewNop())
	require.NoError(t, manager.Migrate(db))

	for _, table := range []string{"menus", "subscriptions", "subscription_periods", "deliveries"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	version, err := strategy.GetVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)

	// the scripts agree with the gorm models
	now := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	sub := &models.SubscriptionModel{
		SID:              "sub_test",
		SubscriberID:     3,
		ChefID:           2,
		MenuID:           1,
		MenuSID:          "menu_test",
		Selection:        datatypes.JSON(`[]`),
		SubscriptionType: "weekly",
		StartDate:        now,
		EndDate:          now.AddDate(0, 0, 7),
		TotalPrice:       decimal.RequireFromString("250.50"),
		Status:           "pending",
	}
	require.NoError(t, db.Create(sub).Error)

	var loaded models.SubscriptionModel
	require.NoError(t, db.Where("sid = ?", "sub_test").First(&loaded).Error)
	assert.Equal(t, "menu_test", loaded.MenuSID)
	assert.True(t, decimal.RequireFromString("250.50").Equal(loaded.TotalPrice))

	meal := func() *models.DeliveryModel {
		return &models.DeliveryModel{
			SubscriptionID:  loaded.ID,
			SubscriptionSID: "sub_test",
			ChefID:          2,
			SubscriberID:    3,
			DeliveryDate:    now,
			DayOfWeek:       "Monday",
			MealType:        "Lunch",
			ItemName:        "Thali",
			Status:          "delivered",
		}
	}
	require.NoError(t, db.Create(meal()).Error)
	assert.Error(t, db.Create(meal()).Error, "one delivery per meal")

	require.NoError(t, strategy.MigrateDown(db, 4))
	assert.False(t, db.Migrator().HasTable("menus"))
}

func TestGooseStrategy_EmbeddedScripts(t *testing.T) {
	for _, driver := range []string{"mysql", "sqlite"} {
		strategy, err := NewGooseStrategy(driver, logger.NewNop())
		require.NoError(t, err)

		scripts, err := strategy.Scripts()
		require.NoError(t, err)
		assert.Len(t, scripts, 4, driver)
	}

	_, err := NewGooseStrategy("postgres", logger.NewNop())
	assert.Error(t, err)
}

func TestManager_AutoMigrate(t *testing.T) {
	db := openDB(t)

	manager, err := NewManager("sqlite", true, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", manager.GetStrategy().GetName())

	require.NoError(t, manager.Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.MenuModel{}))
	assert.True(t, db.Migrator().HasTable(&models.SubscriptionPeriodModel{}))
	assert.True(t, db.Migrator().HasIndex(&models.DeliveryModel{}, "idx_delivery_meal"))
}
