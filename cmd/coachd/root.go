package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/stridelabs/coachd/internal/config"
	"github.com/stridelabs/coachd/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "coachd",
	Short: "coachd is an AI coaching pipeline",
	Long:  `coachd assembles memory, composes prompts, invokes the model and gates every response before it reaches a user.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
