package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/database"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/persistence/seeds"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/tiffin-inc/tiffin/internal/interfaces/http"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

var (
	env        string
	configPath string
	seedFile   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo menus",
		Long:  `Create the menus listed in a YAML seed file. Each menu goes through the same validation as the API.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "./configs/seeds/menus.yaml", "Path to the menu seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.InitWithDatabase(env, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	f, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	container, err := httpRouter.NewContainer(database.Get(), nil, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	sids, err := seeds.SeedMenus(context.Background(), f, container.MenuCreator())
	for _, sid := range sids {
		fmt.Fprintln(cmd.OutOrStdout(), sid)
	}
	if err != nil {
		log.Errorw("menu seeding stopped", "created", len(sids), "error", err)
		return err
	}

	log.Infow("menus seeded", "count", len(sids), "file", seedFile)
	return nil
}
