package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Manage the Kartavya patrol database",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd, loadCmd)
}
