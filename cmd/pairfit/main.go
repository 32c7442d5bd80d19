package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/pairfit/adapter/cli"
	cliAuth "github.com/felixgeelhaar/pairfit/adapter/cli/auth"
	cliCouple "github.com/felixgeelhaar/pairfit/adapter/cli/couple"
	cliHabit "github.com/felixgeelhaar/pairfit/adapter/cli/habit"
	cliWorkout "github.com/felixgeelhaar/pairfit/adapter/cli/workout"
	"github.com/felixgeelhaar/pairfit/internal/app"
	"github.com/felixgeelhaar/pairfit/pkg/config"
	"github.com/felixgeelhaar/pairfit/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.IsDevelopment() {
		devCfg := observability.DefaultLogConfig()
		devCfg.Level = observability.LogLevelDebug
		logger = observability.NewLogger(devCfg)
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize client", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetContainer(container)

	cli.AddCommand(cliAuth.Cmd)
	cli.AddCommand(cliWorkout.Cmd)
	cli.AddCommand(cliHabit.Cmd)
	cli.AddCommand(cliCouple.Cmd)

	cli.ExecuteContext(ctx)
}
