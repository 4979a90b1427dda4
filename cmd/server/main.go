package main

import (
	"os"

	"github.com/spf13/cobra"

	// Embedded zone database so TIME_ZONE works on minimal images.
	_ "time/tzdata"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Visitor check-in kiosk",
	Long:  `Visitor check-in kiosk server. Configuration comes from the environment (and .env).`,
	// Running the binary without a subcommand serves, as before.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
