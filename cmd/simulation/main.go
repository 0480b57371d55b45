package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SeanRemedios/Boid-System/pkg/simulation"
)

func main() {
	configFile := flag.String("config", "", "JSON, YAML or TOML config file (defaults when empty)")
	ticks := flag.Uint64("ticks", 0, "stop after this many ticks, 0 runs until interrupted")
	flag.Parse()

	cfg, err := simulation.LoadConfigOrDefault(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := simulation.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := simulation.NewEngine(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}

	runErr := make(chan error, 1)
	go func() { runErr <- engine.Run(ctx) }()

	var last *simulation.Snapshot
loop:
	for {
		select {
		case err := <-runErr:
			if err != nil {
				logger.Error(err)
			}
			break loop
		case snap := <-engine.Snapshots():
			last = snap
			if *ticks > 0 && snap.Tick >= *ticks {
				stop()
			}
		}
	}

	if last != nil {
		logger.Infof("Run %s finished at tick %d: %d boids, %d perching, checksum %016x",
			engine.RunID(), last.Tick, len(last.Positions), last.Perching, last.Checksum())
	}
	if err := engine.Stop(context.Background()); err != nil {
		logger.Error(err)
	}
}
