package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// Manager runs one migration strategy.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the goose strategy for driver, or gorm AutoMigrate when
// autoMigrate is set.
func NewManager(driver string, autoMigrate bool, log logger.Interface) (*Manager, error) {
	if autoMigrate {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy(log), log), nil
	}

	strategy, err := NewGooseStrategy(driver, log)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy, log), nil
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log,
	}
}

func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
