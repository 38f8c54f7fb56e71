package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/hexlife/model"
	"github.com/sheikhrachel/hexlife/utils"
)

func main() {
	configPath := flag.String("config", "config.json", "path to a JSON or YAML config file")
	flag.Parse()

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		config = utils.DefaultConfig()
	}

	level, _ := config.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if err != nil {
		slog.Info("using default configuration", "missing", *configPath)
	}

	if err = run(config); err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(config utils.Config) error {
	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	game, err := initializeGame(config)
	if err != nil {
		return err
	}
	game.logGameInfo()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return game.run(ctx)
	})
	eg.Go(func() error {
		return game.report(ctx)
	})
	if err = eg.Wait(); err != nil {
		return err
	}

	slog.Info("shutting down",
		"elapsed", time.Since(game.stats.StartTime).Round(time.Millisecond),
		"stats", game.stats.Summary(),
	)

	if config.Dump {
		return model.Dump(os.Stdout, game.sim.Board())
	}
	return nil
}
