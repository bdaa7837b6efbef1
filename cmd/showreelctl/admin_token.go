package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/artemmak/showreel/app/dto"
	"github.com/artemmak/showreel/app/services"
	"github.com/artemmak/showreel/config"
	"github.com/spf13/cobra"
)

func newAdminTokenCmd() *cobra.Command {
	var adminID uint

	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Mint an admin access/refresh token pair with the configured JWT keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if adminID == 0 {
				return fmt.Errorf("--admin-id must be positive")
			}

			cfg, err := config.LoadProductionConfig()
			if err != nil {
				return err
			}
			ts, err := services.NewTokenService(
				cfg.JWT.AccessTokenTTL,
				cfg.JWT.RefreshTokenTTL,
				cfg.JWT.Issuer,
				cfg.JWT.Audience,
				cfg.JWT.UseRSAKeys,
				cfg.JWT.PrivateKey,
				cfg.JWT.PublicKey,
				cfg.JWT.SecretKey,
			)
			if err != nil {
				return fmt.Errorf("failed to initialize token service: %w", err)
			}
			return writeAdminTokens(cmd, ts, adminID)
		},
	}

	cmd.Flags().UintVar(&adminID, "admin-id", 0, "Admin identifier embedded in the tokens")
	return cmd
}

func writeAdminTokens(cmd *cobra.Command, ts services.TokenService, adminID uint) error {
	access, refresh, err := ts.GenerateAdminTokens(adminID)
	if err != nil {
		return err
	}
	slog.Info("admin tokens issued", "admin_id", adminID)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dto.AdminTokenDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(ts.AccessTokenTTL().Seconds()),
	})
}
