package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SeanRemedios/Boid-System/pkg/simulation"
	"github.com/SeanRemedios/Boid-System/pkg/terminal"
	"github.com/gdamore/tcell/v2"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "JSON, YAML or TOML config file (defaults when empty)")
	logFile := flag.String("log", "", "write logs to this file, the terminal is busy drawing")
	flag.Parse()

	cfg, err := simulation.LoadConfigOrDefault(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	var logger golog.Logger = golog.DiscardLogger
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if logger, err = simulation.NewLogger(cfg.LogLevel, f); err != nil {
			log.Fatal(err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to initialize screen: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := simulation.NewEngine(ctx, cfg, logger)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	defer func() { _ = engine.Stop(context.Background()) }()

	go func() {
		if err := engine.Run(ctx); err != nil {
			logger.Error(err)
			stop()
		}
	}()

	renderer := terminal.NewRenderer(screen, cfg.ScreenWidth, cfg.ScreenHeight)
	if err := renderer.Run(ctx, engine); err != nil {
		logger.Error(err)
	}
	stop()
}
