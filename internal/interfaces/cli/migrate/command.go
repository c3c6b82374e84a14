// Package migrate exposes the goose migrations as `tiffin migrate ...`.
package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/database"
	"github.com/tiffin-inc/tiffin/internal/infrastructure/migration"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/bootstrap"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

// scriptsRoot is where `migrate create` writes, relative to the repository
// root. The binary embeds the same directory.
const scriptsRoot = "./internal/infrastructure/migration/scripts"

type options struct {
	env        string
	configPath string
}

func NewCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back and inspect schema migrations",
	}
	cmd.PersistentFlags().StringVarP(&opts.env, "env", "e", constants.EnvDevelopment, "environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./configs/config.yaml)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: opts.run(func(cmd *cobra.Command, s *migration.GooseStrategy, db *gorm.DB, log logger.Interface) error {
				return s.Migrate(db)
			}),
		},
		newDownCommand(opts),
		&cobra.Command{
			Use:   "status",
			Short: "Print the schema version and every script's state",
			RunE: opts.run(func(cmd *cobra.Command, s *migration.GooseStrategy, db *gorm.DB, log logger.Interface) error {
				version, err := s.GetVersion(db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "environment: %s\nschema version: %d\n", opts.env, version)
				return s.Status(db)
			}),
		},
		newCreateCommand(opts),
	)
	return cmd
}

func newDownCommand(opts *options) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migrations",
		RunE: opts.run(func(cmd *cobra.Command, s *migration.GooseStrategy, db *gorm.DB, log logger.Interface) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1")
			}
			log.Warnw("rolling back migrations", "steps", steps)
			return s.MigrateDown(db, steps)
		}),
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")
	return cmd
}

func newCreateCommand(opts *options) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write an empty SQL migration for the configured driver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := bootstrap.Init(opts.env, opts.configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			driver := cfg.Database.Driver
			if driver == "" {
				driver = database.DriverSQLite
			}
			dir := filepath.Join(scriptsRoot, driver)
			if err := migration.Create(dir, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %q in %s\n", name, dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "migration name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

type migrateFunc func(cmd *cobra.Command, s *migration.GooseStrategy, db *gorm.DB, log logger.Interface) error

// run opens the database, builds the goose strategy for its driver and
// closes everything once fn returns.
func (o *options) run(fn migrateFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap.InitWithDatabase(o.env, o.configPath)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer database.Close()

		strategy, err := migration.NewGooseStrategy(cfg.Database.Driver, log)
		if err != nil {
			return err
		}
		if err := fn(cmd, strategy, database.Get(), log.With("command", cmd.Name())); err != nil {
			log.Errorw("migrate command failed", "command", cmd.Name(), "error", err)
			return fmt.Errorf("migrate %s: %w", cmd.Name(), err)
		}
		return nil
	}
}
