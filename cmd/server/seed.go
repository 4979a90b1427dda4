package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-visitors/auth"
)

const superAdminCompanyName = "Platform administration"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the super admin account",
	Long:  `Create the super admin company and login from SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD when missing.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context(), migrateIfConfigured)
		if err != nil {
			return err
		}
		defer rt.close()
		if rt.spec.SuperAdminEmail == "" || rt.spec.SuperAdminPassword == "" {
			return fmt.Errorf("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD are required")
		}
		if err := seedSuperAdmin(cmd.Context(), rt); err != nil {
			return err
		}
		rt.log.Info("seeding completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedSuperAdmin is a no-op when the super admin variables are unset.
func seedSuperAdmin(ctx context.Context, rt *runtime) error {
	if rt.spec.SuperAdminEmail == "" || rt.spec.SuperAdminPassword == "" {
		return nil
	}
	hash, err := auth.HashPassword(rt.spec.SuperAdminPassword)
	if err != nil {
		return fmt.Errorf("hash super admin password: %w", err)
	}
	if err := rt.reg.EnsureSuperAdmin(ctx, rt.spec.SuperAdminEmail, hash, superAdminCompanyName); err != nil {
		return fmt.Errorf("seed super admin: %w", err)
	}
	return nil
}
