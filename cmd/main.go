package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reel-publisher",
	Short: "Publish media from cloud storage to Instagram and Facebook",
	Long: `reel-publisher takes one media file from a storage folder, posts it to the
configured platforms and reports every step to Telegram.`,
	SilenceUsage: true,
	RunE:         runOnce,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Flush()
	if err != nil {
		os.Exit(1)
	}
}
