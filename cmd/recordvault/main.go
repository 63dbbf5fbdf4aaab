package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/recordvault/internal/cli"
	"github.com/dmitrijs2005/recordvault/internal/config"
	"github.com/dmitrijs2005/recordvault/internal/flagx"
	"github.com/dmitrijs2005/recordvault/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	args := flagx.RemoveArgs(os.Args[1:], config.KnownFlags)
	if cli.RunStandalone(os.Stdout, args) {
		return 0
	}

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdout, os.Stdin)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		return 1
	}
	defer app.Close()

	if err := app.Run(ctx, args); err != nil {
		logger.Error(ctx, "command failed", "error", err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
