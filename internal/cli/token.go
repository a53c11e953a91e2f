package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/upb/ai-proxy/config"
	"github.com/upb/ai-proxy/middleware"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a server started with AUTH_JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(cmd.Context())
			if err != nil {
				return withExitCode(ExitConfigError, err)
			}
			if !cfg.AuthEnabled() {
				return withExitCode(ExitConfigError, errors.New("AUTH_JWT_SECRET is not set"))
			}
			if ttl <= 0 {
				return errors.New("ttl must be positive")
			}

			token, err := middleware.NewHMACValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer).SignToken(subject, ttl)
			if err != nil {
				return withExitCode(ExitRuntimeError, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "ai-proxy-client", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
