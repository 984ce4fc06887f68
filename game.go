package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/milk9111/peanut/config"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/milk9111/peanut/ecs/entity"
	"github.com/milk9111/peanut/ecs/system"
	"github.com/milk9111/peanut/levels"
	"github.com/milk9111/peanut/prefabs"
	"go.uber.org/zap"
)

// Game owns the world and drives it with a fixed step.
type Game struct {
	cfg    *config.Config
	logger *zap.Logger

	world   *ecs.World
	ai      *system.AISystem
	spawned entity.Spawned
}

func NewGame(cfg *config.Config, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{cfg: cfg, logger: logger}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

// load builds a fresh world from the configured level. The current world is
// only replaced once the new one is complete.
func (g *Game) load() error {
	lvl, err := levels.Load(g.cfg.Sim.Level)
	if err != nil {
		return fmt.Errorf("game: load level %s: %w", g.cfg.Sim.Level, err)
	}

	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld())

	ai := system.NewAISystem(g.logger.Named("ai"))
	world.AddSystem(system.NewPhysicsSyncSystem())
	world.AddSystem(ai)
	world.AddSystem(system.NewCombatSystem(g.logger.Named("combat")))
	world.AddSystem(system.NewEventLogSystem(g.logger.Named("events")))

	spawned, err := entity.LoadLevelToWorld(world, lvl)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.world = world
	g.ai = ai
	g.spawned = spawned
	g.logger.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("enemies", len(spawned.Enemies)),
		zap.Int("walls", len(spawned.Walls)),
	)
	return nil
}

func (g *Game) Update() error {
	g.world.Update(g.cfg.Sim.Step())
	return nil
}

func (g *Game) World() *ecs.World {
	return g.world
}

// Reload reacts to a changed file. Scripts are recompiled in place; any other
// prefab or level change rebuilds the world.
func (g *Game) Reload(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".tengo") {
		g.ai.ReloadScripts()
		g.logger.Info("scripts reloaded", zap.String("path", path))
		return nil
	}
	if err := g.load(); err != nil {
		return err
	}
	g.logger.Info("world reloaded", zap.String("path", path))
	return nil
}

// Run steps the world until ctx ends or the configured tick count is reached.
// Reload requests from the watcher are applied between ticks.
func (g *Game) Run(ctx context.Context, watcher *prefabs.Watcher) error {
	var reloads <-chan string
	var watchErrs <-chan error
	if watcher != nil {
		reloads = watcher.Events
		watchErrs = watcher.Errors
	}

	var pace <-chan time.Time
	if g.cfg.Sim.Realtime {
		ticker := time.NewTicker(g.cfg.Sim.Interval())
		defer ticker.Stop()
		pace = ticker.C
	}

	for n := 0; g.cfg.Sim.Ticks == 0 || n < g.cfg.Sim.Ticks; {
		select {
		case <-ctx.Done():
			g.summarize()
			return ctx.Err()
		case path, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			if err := g.Reload(path); err != nil {
				g.logger.Error("reload failed", zap.String("path", path), zap.Error(err))
			}
			continue
		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			g.logger.Warn("watcher error", zap.Error(err))
			continue
		default:
		}

		if pace != nil {
			select {
			case <-ctx.Done():
				g.summarize()
				return ctx.Err()
			case <-pace:
			}
		}

		if err := g.Update(); err != nil {
			return err
		}
		n++
	}

	g.summarize()
	return nil
}

func (g *Game) summarize() {
	w := g.world
	counts := map[component.StateID]int{}
	for _, e := range g.spawned.Enemies {
		if st, ok := ecs.Get(w, e, component.AIStateComponent); ok {
			counts[st.Current()]++
		}
	}

	fields := []zap.Field{
		zap.Float64("elapsed", w.Elapsed()),
		zap.Uint64("ticks", w.Ticks()),
	}
	for st := component.StatePatrolling; st <= component.StateAttacking; st++ {
		fields = append(fields, zap.Int(st.String(), counts[st]))
	}
	if c, ok := ecs.Get(w, g.spawned.Player, component.CombatantComponent); ok {
		fields = append(fields, zap.Float64("player_health", c.Health))
	}
	g.logger.Info("simulation finished", fields...)
}
