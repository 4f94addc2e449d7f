package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/slime-rts/internal/config"
	"github.com/Garsondee/slime-rts/internal/game"
	"github.com/Garsondee/slime-rts/internal/logs"
	"github.com/Garsondee/slime-rts/internal/sim"
)

func main() {
	cfgPath := flag.String("config", "", "config file (yaml, toml or json); SLIME_* env vars override it")
	seed := flag.Int64("seed", 0, "map seed, 0 keeps the configured value")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := logs.Init("slime", cfg.Log, logs.Options{}); err != nil {
		log.Fatal(err)
	}

	s, err := sim.New(cfg.Params())
	if err != nil {
		logs.Fatal("create simulation", zap.Error(err))
	}
	logs.Info("map generated",
		zap.Int("width", s.Grid.W),
		zap.Int("height", s.Grid.H),
		zap.Int("walls", s.Grid.CountType(sim.CellWall)),
		zap.Int("wild", s.Grid.CountOwned(sim.OwnerWild)),
		zap.Int("resources", s.Resources))

	g := game.New(s, cfg)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Slime RTS")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err = ebiten.RunGame(g)
	logs.Info("shutting down", zap.Int("ticks", s.Ticks), zap.Int("resources", s.Resources))
	_ = logs.Sync()
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
