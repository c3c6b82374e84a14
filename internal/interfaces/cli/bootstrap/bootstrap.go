// Package bootstrap holds the start-up steps shared by the CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/tiffin-inc/tiffin/internal/domain/shared/events"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/config"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/database"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/email"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

const eventBufferSize = 256

// Init loads configuration, sets up the process logger and the business
// timezone. The gin mode derived from env is stored in cfg.Server.Mode.
func Init(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = MapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize business timezone for date boundary calculations
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// InitWithDatabase runs Init and opens the database. Callers close it with
// database.Close.
func InitWithDatabase(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, log, err := Init(env, configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}

// StartEvents starts the event dispatcher with the subscription e-mail
// notifier registered. Mail goes nowhere unless email.enabled is set.
func StartEvents(cfg *config.Config, log logger.Interface) (*events.Dispatcher, error) {
	var sender email.Sender = email.NopSender{}
	if cfg.Email.Enabled {
		sender = email.NewSMTPMailer(cfg.Email)
	}

	dispatcher := events.NewDispatcher(eventBufferSize, logger.WithComponent("events"))
	notifier := email.NewSubscriptionNotifier(sender, cfg.Subscription.Currency, logger.WithComponent("notifier"))
	if err := notifier.Register(dispatcher); err != nil {
		return nil, fmt.Errorf("failed to register notifier: %w", err)
	}
	if err := dispatcher.Start(); err != nil {
		return nil, fmt.Errorf("failed to start event dispatcher: %w", err)
	}

	log.Infow("event dispatcher started", "email_enabled", cfg.Email.Enabled)
	return dispatcher, nil
}

func MapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return "release"
	case constants.EnvTest, "testing":
		return "test"
	default:
		return "debug"
	}
}
