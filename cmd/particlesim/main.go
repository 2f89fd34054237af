// Command particlesim runs the particle sandbox in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akmonengine/particles"
	"github.com/akmonengine/particles/config"
	"github.com/akmonengine/particles/logging"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "YAML arena configuration")
	count := flag.Int("particles", 2, "particles spawned at start")
	workers := flag.Int("workers", particles.DEFAULT_WORKERS, "goroutines stepping the particles")
	logPath := flag.String("log", "particlesim.log", "log file")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	sound := flag.Bool("sound", false, "play a tone when particles bounce")
	flag.Parse()

	if err := run(*configPath, *count, *workers, *logPath, *logLevel, *sound); err != nil {
		fmt.Fprintf(os.Stderr, "particlesim: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, count, workers int, logPath, logLevel string, sound bool) error {
	arenaConfig, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: logLevel, OutputPaths: []string{logPath}})
	if err != nil {
		return err
	}
	defer logger.Sync()

	world := particles.NewWorld(arenaConfig, logger)
	world.Workers = workers

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	s := newSimulation(world, screen, logger)
	if sound {
		if err := s.initAudio(); err != nil {
			// Non-fatal, the simulation runs without sound
			logger.Warn("audio initialization failed", zap.Error(err))
		}
	}
	defer s.close()

	for range count {
		s.spawn()
	}

	logger.Info("simulation started",
		zap.Int("particles", len(world.Particles)),
		zap.Int("workers", world.Workers),
		zap.Float64("width", arenaConfig.Width),
		zap.Float64("height", arenaConfig.Height))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 100)

	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			// nil once the screen is finalized
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		defer screen.Fini()
		return s.run(ctx, events)
	})

	err = g.Wait()
	logger.Info("simulation stopped", zap.Int("particles", len(world.Particles)))

	return err
}
