package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/slime-rts/internal/config"
	"github.com/Garsondee/slime-rts/internal/logs"
	"github.com/Garsondee/slime-rts/internal/sim"
	"github.com/Garsondee/slime-rts/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "config file (yaml, toml or json); SLIME_* env vars override it")
	seed := flag.Int64("seed", 0, "map seed, 0 keeps the configured value")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "slime-term.log"
	}
	// The terminal belongs to the UI, so logs only go to the file.
	if err := logs.Init("slime-term", cfg.Log, logs.Options{Quiet: true}); err != nil {
		return err
	}
	defer func() { _ = logs.Sync() }()

	s, err := sim.New(cfg.Params())
	if err != nil {
		return fmt.Errorf("create simulation: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logs.Info("terminal session started", zap.Int("width", s.Grid.W), zap.Int("height", s.Grid.H))
	err = term.New(screen, s, cfg).Run(ctx)
	logs.Info("terminal session ended", zap.Int("ticks", s.Ticks), zap.Int("resources", s.Resources))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
