package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gruamaster/ponto-backend-go/internal/app"
	"github.com/gruamaster/ponto-backend-go/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pontoctl",
	Short: "Maintenance commands for the ponto eletrônico service",
	Long: `pontoctl reads the same environment as the API server (.env, DB_*,
JWT_SECRET_KEY, PONTO_* policy overrides) and runs one-off maintenance tasks.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(recalculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tokenCmd)
}

// withApp loads configuration, wires the services and closes them after fn.
func withApp(ctx context.Context, fn func(*app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	application, err := app.New(ctx, cfg, app.NewLogger(cfg.App))
	if err != nil {
		return err
	}
	defer application.Close()
	return fn(application)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
