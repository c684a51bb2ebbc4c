package main

import (
	"os"

	"github.com/spf13/cobra"

	"ssto/internal/platform/config"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "ssto",
		Short:         "SSAS test signal reconciliation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFlag != "" {
				return os.Setenv("CONFIG_PATH", configFlag)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newTokenCommand())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	return config.Load()
}
