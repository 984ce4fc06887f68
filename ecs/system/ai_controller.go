package system

import (
	"fmt"

	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/milk9111/peanut/prefabs"
	"go.uber.org/zap"
)

// AISystem drives every agent's patrol/detect/chase/attack state machine one
// step per tick.
type AISystem struct {
	provider SpatialQuery
	logger   *zap.Logger
	scripts  *scriptHooks
}

type AIOption func(*AISystem)

// WithSpatialQuery overrides the provider. Without it the system queries the
// world's PhysicsWorld, falling back to a scan of collider components.
func WithSpatialQuery(p SpatialQuery) AIOption {
	return func(s *AISystem) { s.provider = p }
}

// WithScriptLoader overrides where AIScript paths are read from.
func WithScriptLoader(load func(path string) ([]byte, error)) AIOption {
	return func(s *AISystem) { s.scripts.load = load }
}

func NewAISystem(logger *zap.Logger, opts ...AIOption) *AISystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AISystem{
		logger:  logger,
		scripts: newScriptHooks(logger, prefabs.LoadScript),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReloadScripts drops every compiled hook script; the next transition
// recompiles from the loader.
func (s *AISystem) ReloadScripts() {
	s.scripts.reset()
}

// agent bundles the components one state handler works on.
type agent struct {
	w      *ecs.World
	e      ecs.Entity
	ai     *component.AI
	state  *component.AIState
	ctx    *component.AIContext
	tf     *component.Transform
	route  *component.PatrolRoute
	name   string
	vision *VisibilityEvaluator
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	s.scripts.prune(w)

	dt := w.Delta()
	vision := NewVisibilityEvaluator(s.spatial(w), TransformLocator(w), s.logger)

	entities := w.Query(
		component.AITagComponent.Kind().ID(),
		component.AIComponent.Kind().ID(),
		component.AIStateComponent.Kind().ID(),
		component.AIContextComponent.Kind().ID(),
		component.TransformComponent.Kind().ID(),
		component.PatrolComponent.Kind().ID(),
	)
	for _, e := range entities {
		a, ok := s.bind(w, e)
		if !ok {
			continue
		}
		a.vision = vision

		if irq, ok := ecs.Get(w, e, component.AIStateInterruptComponent); ok {
			next := irq.State
			_ = ecs.Remove(w, e, component.AIStateInterruptComponent)
			s.transition(a, next)
		}

		a.ctx.StateTime += dt

		switch a.state.Current() {
		case component.StatePatrolling:
			s.patrol(a, dt)
		case component.StateDetecting:
			s.detect(a, dt)
		case component.StateChasing:
			s.chase(a, dt)
		case component.StateAttacking:
			s.attack(a)
		default:
			panic(fmt.Sprintf("ai: entity %v in unknown state %v", e, a.state.Current()))
		}
	}
}

func (s *AISystem) bind(w *ecs.World, e ecs.Entity) (*agent, bool) {
	ai, ok := ecs.Get(w, e, component.AIComponent)
	if !ok {
		return nil, false
	}
	state, ok := ecs.Get(w, e, component.AIStateComponent)
	if !ok {
		return nil, false
	}
	ctx, ok := ecs.Get(w, e, component.AIContextComponent)
	if !ok {
		return nil, false
	}
	tf, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return nil, false
	}
	patrol, ok := ecs.Get(w, e, component.PatrolComponent)
	if !ok || patrol.Route.Len() == 0 {
		s.logger.Warn("ai: agent without patrol route skipped", zap.Stringer("entity", e))
		return nil, false
	}

	if c, ok := ecs.Get(w, e, component.CombatantComponent); ok && c.HasDied() {
		return nil, false
	}

	return &agent{w: w, e: e, ai: ai, state: state, ctx: ctx, tf: tf, route: patrol.Route, name: entityName(w, e)}, true
}

func (s *AISystem) spatial(w *ecs.World) SpatialQuery {
	if s.provider != nil {
		return s.provider
	}
	if pw := w.PhysicsWorld(); pw != nil {
		return pw
	}
	return NewColliderScan(w)
}
