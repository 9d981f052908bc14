// Package migrate contains the CLI commands for schema migrations.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"iothub/internal/infrastructure/config"
	"iothub/internal/infrastructure/database"
	"iothub/internal/infrastructure/migration"
	"iothub/internal/shared/logger"
)

// NewCommand creates the migrate command with its subcommands.
func NewCommand() *cobra.Command {
	var env string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	cmd.PersistentFlags().StringVarP(&env, "env", "e", "default", "environment")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(env, migration.Up)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(env, migration.Down)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(env, migration.Status)
			},
		},
	)
	return cmd
}

func withDatabase(env string, fn func(db *gorm.DB) error) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return err
	}
	defer database.Close()

	return fn(database.Get())
}
