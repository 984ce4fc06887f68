package system

import (
	"testing"

	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/stretchr/testify/require"
)

type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }

// eventRecorder keeps every event seen at its point in the schedule.
type eventRecorder struct {
	events []ecs.Event
}

func (r *eventRecorder) Update(w *ecs.World) {
	r.events = append(r.events, w.Events().Snapshot()...)
}

func (r *eventRecorder) changes() []ecs.AIStateChanged {
	var out []ecs.AIStateChanged
	for _, evt := range r.events {
		if c, ok := evt.Data.(ecs.AIStateChanged); ok {
			out = append(out, c)
		}
	}
	return out
}

func (r *eventRecorder) attacks() []ecs.Attack {
	var out []ecs.Attack
	for _, evt := range r.events {
		if a, ok := evt.Data.(ecs.Attack); ok {
			out = append(out, a)
		}
	}
	return out
}

func newSimWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	return w
}

func testAI() component.AI {
	return component.AI{
		MoveSpeed:          2,
		DetectionRadius:    15,
		ViewAngleDegrees:   60,
		AttackRange:        1,
		TotalDetectionTime: 5,
		PollInterval:       1,
		TargetLayer:        component.LayerPlayer,
	}
}

func spawnAgent(t *testing.T, w *ecs.World, pos common.Vec3, ai component.AI, waypoints ...common.Vec3) ecs.Entity {
	t.Helper()
	route, err := component.NewPatrolRoute("test", waypoints...)
	require.NoError(t, err)

	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.AITagComponent, component.AITag{}))
	require.NoError(t, ecs.Add(w, e, component.AIComponent, ai))
	require.NoError(t, ecs.Add(w, e, component.AIStateComponent, component.NewAIState()))
	require.NoError(t, ecs.Add(w, e, component.AIContextComponent, component.AIContext{DetectionTimer: ai.TotalDetectionTime}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.Transform{Position: pos, Facing: common.Forward}))
	require.NoError(t, ecs.Add(w, e, component.PatrolComponent, component.Patrol{Route: route}))
	require.NoError(t, ecs.Add(w, e, component.CombatantComponent, component.Combatant{Kind: component.KindEnemy, Health: 50, MaxHealth: 50, Damage: 10}))
	require.NoError(t, ecs.Add(w, e, component.AttackCadenceComponent, component.NewAttackCadence(1)))
	registerCollider(t, w, e, pos, component.PhysicsBody{Radius: 0.4}, component.LayerEnemy)
	return e
}

func spawnTarget(t *testing.T, w *ecs.World, pos common.Vec3) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.Transform{Position: pos, Facing: common.Forward}))
	require.NoError(t, ecs.Add(w, e, component.CombatantComponent, component.Combatant{Kind: component.KindPlayer, Health: 100, MaxHealth: 100, Damage: 5}))
	registerCollider(t, w, e, pos, component.PhysicsBody{Radius: 0.5}, component.LayerPlayer)
	return e
}

func spawnWall(t *testing.T, w *ecs.World, center common.Vec3, width, depth float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.WallTagComponent, component.WallTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.Transform{Position: center}))
	registerCollider(t, w, e, center, component.PhysicsBody{Width: width, Depth: depth, Static: true}, component.LayerWorld)
	return e
}

func registerCollider(t *testing.T, w *ecs.World, e ecs.Entity, pos common.Vec3, body component.PhysicsBody, layer uint32) {
	t.Helper()
	cl := component.CollisionLayer{Category: layer}
	if pw := w.PhysicsWorld(); pw != nil {
		require.NoError(t, pw.Register(e, pos, &body, cl))
	}
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent, body))
	require.NoError(t, ecs.Add(w, e, component.CollisionLayerComponent, cl))
}

func currentState(t *testing.T, w *ecs.World, e ecs.Entity) component.StateID {
	t.Helper()
	st, ok := ecs.Get(w, e, component.AIStateComponent)
	require.True(t, ok)
	return st.Current()
}

func aiContext(t *testing.T, w *ecs.World, e ecs.Entity) *component.AIContext {
	t.Helper()
	ctx, ok := ecs.Get(w, e, component.AIContextComponent)
	require.True(t, ok)
	return ctx
}

func tick(w *ecs.World, dt float64, n int) {
	for range n {
		w.Update(dt)
	}
}
