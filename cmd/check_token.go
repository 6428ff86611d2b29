package main

import (
	"fmt"
	"time"

	"github.com/orgball2608/reel-publisher-bot/internal/app"
	"github.com/orgball2608/reel-publisher-bot/internal/domain"
	"github.com/orgball2608/reel-publisher-bot/internal/token"
	"github.com/orgball2608/reel-publisher-bot/pkg/config"
	"github.com/orgball2608/reel-publisher-bot/pkg/errors"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var checkTokenCmd = &cobra.Command{
	Use:   "check-token",
	Short: "Print validity and expiry of the Meta access token",
	RunE:  checkToken,
}

func init() {
	rootCmd.AddCommand(checkTokenCmd)
}

func checkToken(cmd *cobra.Command, _ []string) error {
	log := logger.New(logger.Opts{})

	var (
		cfg    *config.Config
		tokens token.Provider
	)
	application := fx.New(
		fx.Logger(log),
		app.Core,
		fx.Populate(&cfg, &tokens),
	)
	if err := start(cmd.Context(), application); err != nil {
		return err
	}
	defer stopApp(application, log)

	info, err := tokens.CheckExpiry(cmd.Context(), domain.Token{Value: cfg.Meta.Token})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "valid: %t\n", info.Valid)
	if info.ExpiresAt == nil {
		fmt.Fprintln(out, "expires: never")
	} else {
		fmt.Fprintf(out, "expires: %s (in %s)\n", info.ExpiresAt.Format(time.RFC3339), time.Until(*info.ExpiresAt).Round(time.Hour))
	}
	if len(info.Scopes) > 0 {
		fmt.Fprintf(out, "scopes: %v\n", info.Scopes)
	}
	if !info.Valid {
		return fmt.Errorf("%w: meta token is invalid", errors.ErrAuth)
	}
	return nil
}
