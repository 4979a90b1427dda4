package main

import (
	"github.com/spf13/cobra"
)

// migrateCmd applies the schema and exits. Replaces the -migrate-only flag.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Apply the SQL migrations (postgres) or gorm AutoMigrate (sqlite), then exit.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context(), migrateAlways)
		if err != nil {
			return err
		}
		defer rt.close()
		rt.log.Info("migrations completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
