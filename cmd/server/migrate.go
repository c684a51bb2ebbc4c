package main

import (
	"errors"

	"github.com/spf13/cobra"

	"ssto/internal/platform/logger"
	"ssto/internal/platform/postgres"
)

var errNoDatabase = errors.New("database.dsn is not configured")

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Database.DSN == "" {
				return errNoDatabase
			}
			log := logger.New(cfg.Log)

			db, err := postgres.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			versions, err := postgres.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}
			log.Info("migrations applied", "versions", versions)
			return nil
		},
	}
}
