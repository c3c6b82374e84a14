package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/jobs"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/migrate"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/seed"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/server"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tiffin",
		Short: "Tiffin - meal subscription engine",
		Long:  `Tiffin prices, tracks and renews meal subscriptions to chefs' weekly menus.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		jobs.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
