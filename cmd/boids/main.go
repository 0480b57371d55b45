package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/SeanRemedios/Boid-System/pkg/simulation"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configFile := flag.String("config", "", "JSON, YAML or TOML config file (defaults when empty)")
	flag.Parse()

	cfg, err := simulation.LoadConfigOrDefault(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := simulation.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	engine, err := simulation.NewEngine(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer func() { _ = engine.Stop(ctx) }()

	ebiten.SetWindowSize(int(cfg.ScreenWidth), int(cfg.ScreenHeight))
	ebiten.SetWindowTitle("Boids")
	ebiten.SetTPS(cfg.TicksPerSecond())

	if err := ebiten.RunGame(simulation.NewGame(ctx, engine, cfg)); err != nil {
		logger.Error(err)
	}
}
