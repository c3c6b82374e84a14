// Package token mints access tokens for local testing. Identity is owned by
// an external service in production.
package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiffin-inc/tiffin/internal/infrastructure/auth"
	"github.com/tiffin-inc/tiffin/internal/interfaces/cli/bootstrap"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
)

var (
	env        string
	configPath string
	userID     uint
	role       string
	email      string
)

var validRoles = map[string]bool{
	constants.RoleSubscriber:  true,
	constants.RoleChef:        true,
	constants.RoleDeliveryman: true,
	constants.RoleAdmin:       true,
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token",
		Long:  `Sign an access token for the given user with the configured JWT secret.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().UintVar(&userID, "user-id", 0, "User ID (required)")
	cmd.Flags().StringVar(&role, "role", constants.RoleSubscriber, "Role: subscriber, chef, deliveryman or admin")
	cmd.Flags().StringVar(&email, "email", "", "Contact e-mail carried in the token")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if userID == 0 {
		return fmt.Errorf("user-id must be positive")
	}
	if !validRoles[role] {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, _, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}

	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	signed, err := svc.Generate(userID, email, role)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
