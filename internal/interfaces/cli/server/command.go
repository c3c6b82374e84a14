package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/config"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/database"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/migration"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/tiffin-inc/tiffin/internal/interfaces/http"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/handlers"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

var (
	env                string
	configPath         string
	autoMigrate        bool
	runMigrations      bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Tiffin HTTP server together with the event dispatcher and the subscription jobs.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Create tables with gorm AutoMigrate on startup (not recommended for production)")
	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "Apply pending goose migrations on startup")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, log, err := bootstrap.InitWithDatabase(env, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate, "migrate", runMigrations)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	if err := handleMigrations(cfg, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	dispatcher, err := bootstrap.StartEvents(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := dispatcher.Stop(); err != nil {
			log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	container, err := httpRouter.NewContainer(database.Get(), dispatcher, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()
	container.SetupRoutes()

	if err := container.StartScheduler(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	if autoMigrate || runMigrations {
		if autoMigrate && env == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}

		manager, err := migration.NewManager(cfg.Database.Driver, autoMigrate, log)
		if err != nil {
			return err
		}
		return manager.Migrate(database.Get(), migration.AutoMigrateModels()...)
	}

	log.Infow("checking migration status")

	strategy, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
	if err != nil {
		return err
	}
	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)

	return nil
}
