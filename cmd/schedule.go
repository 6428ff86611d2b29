package main

import (
	"github.com/orgball2608/reel-publisher-bot/internal/app"
	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Publish at the posting times of the caption schedule and serve /healthz and /status",
	RunE:  runScheduled,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runScheduled(cmd *cobra.Command, _ []string) error {
	log := logger.New(logger.Opts{})

	application := fx.New(
		fx.Logger(log),
		app.Scheduled,
	)
	if err := start(cmd.Context(), application); err != nil {
		log.Error("Failed to start application", "error", err)
		return err
	}

	// Wait for interrupt signal
	<-cmd.Context().Done()
	log.Info("Shutting down")

	stopApp(application, log)
	return nil
}
