package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepCompany string

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired visitor records once",
	Long:  `Delete checked-out visitors older than RETENTION_WINDOW, for one company or all of them.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context(), migrateIfConfigured)
		if err != nil {
			return err
		}
		defer rt.close()
		n, err := rt.reg.SweepExpired(cmd.Context(), sweepCompany)
		if err != nil {
			return err
		}
		rt.log.Info("sweep completed", zap.Int64("removed", n), zap.String("company_id", sweepCompany))
		cmd.Printf("removed %d expired visitors\n", n)
		return nil
	},
}

func init() {
	sweepCmd.Flags().StringVar(&sweepCompany, "company", "", "only sweep this company id")
	rootCmd.AddCommand(sweepCmd)
}
