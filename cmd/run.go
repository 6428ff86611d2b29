package main

import (
	"context"
	"fmt"

	"github.com/orgball2608/reel-publisher-bot/internal/app"
	"github.com/orgball2608/reel-publisher-bot/internal/publisher"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one publish batch and exit",
	RunE:  runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, _ []string) error {
	log := logger.New(logger.Opts{})

	var pub publisher.Publisher
	application := fx.New(
		fx.Logger(log),
		app.Core,
		fx.Populate(&pub),
	)
	if err := start(cmd.Context(), application); err != nil {
		log.Error("Failed to start application", "error", err)
		return err
	}
	defer stopApp(application, log)

	report, err := pub.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	log.Info("Run finished", "status", report.Status, "candidate", report.Candidate, "attempts", report.Attempts)
	return nil
}

func start(ctx context.Context, application *fx.App) error {
	startCtx, cancel := context.WithTimeout(ctx, application.StartTimeout())
	defer cancel()
	return application.Start(startCtx)
}

func stopApp(application *fx.App, log logger.Logger) {
	stopCtx, cancel := context.WithTimeout(context.Background(), application.StopTimeout())
	defer cancel()
	if err := application.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application", "error", err)
	}
}
