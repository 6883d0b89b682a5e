package cmd

import (
	"os"

	"github.com/myservicehub/ServiceHub-sub004/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// serverFlag holds the --server override. Resolution against the
// environment, the config file, and the built-in default happens when a
// command builds its client.
var serverFlag string

func Execute() {
	rootCmd := createRootCmd()
	initializeDatabase()
	defer closeDatabase()

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		os.Exit(1)
	}
}

func createRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "servicehub",
		Short: "A command-line client for the ServiceHub marketplace",
	}

	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Base URL of the ServiceHub API server")

	rootCmd.AddCommand(
		loginCmd(),
		logoutCmd(),
		statusCmd(),
		adminCmd(),
		catalogueCmd(),
		jobsCmd(),
		walletCmd(),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

func initializeDatabase() {
	if err := db.InitDB(); err != nil {
		log.Error().Err(err).Msg("Failed to initialize database")
		os.Exit(1)
	}
}

func closeDatabase() {
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
		os.Exit(1)
	}
}
