package main

import (
	"fmt"

	"github.com/shenikar/emergency_dispatch/internal/config"
	"github.com/shenikar/emergency_dispatch/internal/repository"
	"github.com/shenikar/emergency_dispatch/pkg/logger"
	"github.com/shenikar/emergency_dispatch/pkg/postgres"
	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo facilities, users and incidents",
		RunE: func(cmd *cobra.Command, args []string) error {
			reset, _ := cmd.Flags().GetBool("reset")

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(cfg.LogLevel)

			if err := runMigrations(cfg, log); err != nil {
				return err
			}

			dbpool, err := postgres.NewPostgresDB(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
			}
			defer dbpool.Close()

			return repository.NewSeeder(dbpool, log).Seed(cmd.Context(), reset)
		},
	}
	cmd.Flags().Bool("reset", false, "Truncate all tables before seeding")
	return cmd
}
