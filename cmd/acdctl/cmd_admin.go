package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/awsugahm/acd2026-api/internal/models"
	"github.com/awsugahm/acd2026-api/internal/repository"
	"github.com/awsugahm/acd2026-api/internal/service"
	"github.com/awsugahm/acd2026-api/pkg/database"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
	adminRole     string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or reset an organizer account",
	Long: `Creates an organizer account, or resets the password and role of an
existing one with the same email.

Flags default to ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_FULL_NAME from the
environment.`,
	RunE: runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "account email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "account password (min 8 characters)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "display name")
	createAdminCmd.Flags().StringVar(&adminRole, "role", string(models.RoleSuperAdmin), "SUPERADMIN or ADMIN")
}

func runCreateAdmin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := database.EnsureSchema(ctx, e.db); err != nil {
		return err
	}

	account := service.AdminAccount{
		Email:    firstNonEmpty(adminEmail, e.cfg.Admin.Email),
		Password: firstNonEmpty(adminPassword, e.cfg.Admin.Password),
		FullName: firstNonEmpty(adminName, e.cfg.Admin.FullName),
		Role:     models.UserRole(adminRole),
	}

	auth := service.NewAuthService(repository.NewUserRepository(e.db), validator.New(), e.logger, service.AuthConfig{
		AccessTokenSecret: e.cfg.JWT.Secret,
		AccessTokenExpiry: e.cfg.JWT.Expiration,
		Issuer:            e.cfg.JWT.Issuer,
	})
	user, err := auth.EnsureAdmin(ctx, account)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "organizer %s ready (role %s)\n", user.Email, user.Role)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
