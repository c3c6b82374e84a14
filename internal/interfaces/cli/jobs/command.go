// Package jobs runs the subscription batch jobs once, for cron or manual use
// when the in-process scheduler is disabled.
package jobs

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/usecases"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/database"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/scheduler"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/tiffin-inc/tiffin/internal/interfaces/http"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Run subscription batch jobs once",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "renew-due",
			Short: "Renew subscriptions flagged for automatic renewal",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJob(cmd, "renew-due", (*httpRouter.Container).AutoRenewJob)
			},
		},
		&cobra.Command{
			Use:   "expire",
			Short: "Expire subscriptions whose end date has passed",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runJob(cmd, "expire", (*httpRouter.Container).ExpiryJob)
			},
		},
	)

	return cmd
}

func runJob(cmd *cobra.Command, name string, pick func(*httpRouter.Container) scheduler.BatchJob) error {
	cfg, log, err := bootstrap.InitWithDatabase(env, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	dispatcher, err := bootstrap.StartEvents(cfg, log)
	if err != nil {
		return err
	}
	// Stop drains queued notifications before exit.
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

	result, err := pick(container).Execute(context.Background())
	if err != nil {
		log.Errorw("job failed", "job", name, "error", err)
		return err
	}

	printResult(cmd, name, result)
	return nil
}

func printResult(cmd *cobra.Command, name string, result *usecases.BatchResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: processed=%d succeeded=%d skipped=%d failed=%d\n",
		name, result.Processed, result.Succeeded, result.Skipped, result.Failed)
}
