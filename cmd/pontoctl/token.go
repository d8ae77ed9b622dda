package main

import (
	"fmt"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/config"
	"github.com/gruamaster/ponto-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

var (
	tokenUser     string
	tokenEmployee string
	tokenRole     string
	tokenLevel    int
	tokenTTL      string
)

// tokenCmd signs an access token with the shared secret. Production tokens
// come from the identity service; this one is for local testing.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a local access token",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user_id claim (required)")
	tokenCmd.Flags().StringVar(&tokenEmployee, "employee", "", "employee_id claim")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", "role claim, e.g. Supervisor")
	tokenCmd.Flags().IntVar(&tokenLevel, "level", 1, "level claim")
	tokenCmd.Flags().StringVar(&tokenTTL, "ttl", "", "Token lifetime, defaults to JWT_ACCESS_EXPIRATION_TIME")
	_ = tokenCmd.MarkFlagRequired("user")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ttl := cfg.JWT.AccessExpiration
	if tokenTTL != "" {
		ttl = tokenTTL
	}
	svc, err := jwt.NewJWTService(cfg.JWT.Secret, ttl, cfg.JWT.SSEExpiration)
	if err != nil {
		return err
	}

	token, expiresAt, err := svc.GenerateAccessToken(jwt.Claims{
		UserID:     tokenUser,
		EmployeeID: tokenEmployee,
		Role:       tokenRole,
		Level:      tokenLevel,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}
