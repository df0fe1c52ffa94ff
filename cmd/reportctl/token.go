package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mr1hm/go-disaster-reports/internal/auth"
)

var (
	tokenName string
	tokenTTL  time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin token for the verification endpoints",
	Long: `Issue a signed admin token. ADMIN_JWT_SECRET must be set to the same
value the server runs with. Send it as "Authorization: Bearer <token>".`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Auth.Enabled() {
		return errors.New("ADMIN_JWT_SECRET is not set")
	}

	ttl := cfg.Auth.TokenTTL
	if tokenTTL > 0 {
		ttl = tokenTTL
	}
	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, ttl)
	if err != nil {
		return err
	}

	signed, err := tokens.Issue(tokenName)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
