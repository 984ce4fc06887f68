package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/milk9111/peanut/config"
	"github.com/milk9111/peanut/levels"
	"github.com/milk9111/peanut/prefabs"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	debug := flag.Bool("debug", false, "enable debug logging")
	ticks := flag.Int("ticks", 0, "number of ticks to simulate (0 runs until interrupted)")
	realtime := flag.Bool("realtime", false, "pace ticks on the wall clock")
	watch := flag.Bool("watch", false, "hot reload prefabs, scripts and levels from disk")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "level":
			cfg.Sim.Level = *levelName
		case "debug":
			cfg.Log.Debug = *debug
		case "ticks":
			cfg.Sim.Ticks = *ticks
		case "realtime":
			cfg.Sim.Realtime = *realtime
		case "watch":
			cfg.Prefabs.Watch = *watch
		}
	})

	logger, err := newLogger(cfg.Log.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Sim.Ticks == 0 && !cfg.Sim.Realtime {
		logger.Info("no tick limit, pacing on the wall clock")
		cfg.Sim.Realtime = true
	}

	prefabs.Dir = cfg.Prefabs.Dir
	levels.Dir = cfg.Prefabs.LevelsDir

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var watcher *prefabs.Watcher
	if cfg.Prefabs.Watch {
		watcher, err = prefabs.NewWatcher(watchDirs(cfg)...)
		if err != nil {
			logger.Fatal("start watcher", zap.Error(err))
		}
		defer watcher.Close()
	}

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}

	if err := game.Run(ctx, watcher); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("run", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// watchDirs lists the directories hot reload listens on.
func watchDirs(cfg *config.Config) []string {
	return []string{
		cfg.Prefabs.Dir,
		filepath.Join(cfg.Prefabs.Dir, "scripts"),
		cfg.Prefabs.LevelsDir,
	}
}
