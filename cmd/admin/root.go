package main

import (
	"context"
	"fmt"

	"learnmatch/internal/app"
	"learnmatch/internal/config"
	"learnmatch/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "learnmatch-admin"

var (
	debug   bool
	jsonLog bool

	rootCmd = &cobra.Command{
		Use:          appName,
		Short:        "learnmatch-admin runs maintenance tasks against the learnmatch database",
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")
}

func newLogger() (*zap.Logger, error) {
	format := "console"
	if jsonLog {
		format = "json"
	}
	level := "info"
	if debug {
		level = "debug"
	}
	return logger.New(format, level)
}

// withContainer loads config, connects and hands the container to fn. The
// container is closed afterwards.
func withContainer(ctx context.Context, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	lg, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = lg.Sync() }()

	c, err := app.NewContainer(cfg, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			lg.Warn("close container", zap.Error(err))
		}
	}()

	return fn(ctx, c)
}
