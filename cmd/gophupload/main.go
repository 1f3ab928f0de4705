package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophupload/internal/buildinfo"
	"github.com/dmitrijs2005/gophupload/internal/client/cli"
	"github.com/dmitrijs2005/gophupload/internal/client/config"
	"github.com/dmitrijs2005/gophupload/internal/logging"
	"github.com/dmitrijs2005/gophupload/internal/tracing"
)

func main() {
	os.Exit(run())
}

func run() int {
	buildinfo.PrintBuildData(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		log.Printf("%v", err)
		return cli.ExitUsage
	}

	shutdown, err := tracing.Setup(ctx, "gophupload", cfg.OtelEndpoint)
	if err != nil {
		logger.Warn(ctx, "tracing disabled", "err", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn(context.Background(), "tracing shutdown", "err", err)
		}
	}()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "err", err)
		return cli.ExitUsage
	}

	return app.Run(ctx, config.Positional(os.Args[1:]))
}
