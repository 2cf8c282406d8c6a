package main

import (
	"os"

	"github.com/spf13/cobra"

	"medlog/internal/interfaces/cli/migrate"
	"medlog/internal/interfaces/cli/seed"
	"medlog/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medlog",
		Short: "Medlog - kiosk medicine logging service",
		Long:  `Medlog runs the kiosk medicine logging backend with built-in server, migration and seeding commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
