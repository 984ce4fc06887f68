package system

import (
	"errors"
	"testing"

	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func scriptLoader(scripts map[string]string) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		src, ok := scripts[path]
		if !ok {
			return nil, errors.New("missing script " + path)
		}
		return []byte(src), nil
	}
}

func newScriptedWorld(t *testing.T, src string) (*ecs.World, ecs.Entity, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	w := newSimWorld()
	w.AddSystem(NewAISystem(zap.New(core), WithScriptLoader(scriptLoader(map[string]string{"guard.tengo": src}))))

	e := spawnAgent(t, w, common.Vec3{}, testAI(), common.Vec3{}, common.V3(0, 0, -10))
	require.NoError(t, ecs.Add(w, e, component.AIScriptComponent, component.AIScript{Path: "guard.tengo"}))
	return w, e, logs
}

func TestScriptHooksRunOnTransitions(t *testing.T) {
	w, _, logs := newScriptedWorld(t, `
onEnter := func(engine, state, current) {
	engine.log("enter", current, engine.waypoint)
}
onExit := func(engine, state, current) {
	engine.log("exit", current)
}
`)

	w.Update(0.25)

	assert.Equal(t, 1, logs.FilterMessage("exit patrolling").Len())
	entered := logs.FilterMessage("enter detecting 1")
	require.Equal(t, 1, entered.Len())
	assert.NotEmpty(t, entered.All()[0].ContextMap()["agent"])
}

func TestScriptInterruptAppliesNextUpdate(t *testing.T) {
	w, e, _ := newScriptedWorld(t, `
onEnter := func(engine, state, current) {
	if current == "detecting" {
		engine.interrupt("patrolling")
	}
}
onExit := func(engine, state, current) {}
`)

	w.Update(0.25)
	assert.Equal(t, component.StateDetecting, currentState(t, w, e))
	assert.True(t, ecs.Has(w, e, component.AIStateInterruptComponent))

	w.Update(0.25)
	assert.Equal(t, component.StatePatrolling, currentState(t, w, e))
	assert.False(t, ecs.Has(w, e, component.AIStateInterruptComponent))
}

func TestScriptStatePersistsBetweenHooks(t *testing.T) {
	w, _, logs := newScriptedWorld(t, `
onEnter := func(engine, state, current) {
	if state.entries == undefined {
		state.entries = 0
	}
	state.entries += 1
	engine.log("entries", state.entries)
}
onExit := func(engine, state, current) {}
`)

	tick(w, 0.25, 22)

	assert.Equal(t, 1, logs.FilterMessage("entries 1").Len())
	assert.Equal(t, 1, logs.FilterMessage("entries 2").Len())
}

func TestScriptSeesTimeInState(t *testing.T) {
	w, _, logs := newScriptedWorld(t, `
onEnter := func(engine, state, current) {
	engine.log("enter", current, engine.state_time)
}
onExit := func(engine, state, current) {
	if current == "detecting" {
		engine.log("left detecting", engine.state_time > 4)
	}
}
`)

	tick(w, 0.25, 22)

	assert.GreaterOrEqual(t, logs.FilterMessage("enter detecting 0").Len(), 1, "state time resets on entry")
	assert.Equal(t, 1, logs.FilterMessage("left detecting true").Len())
}

func TestBrokenScriptIsLoggedOnce(t *testing.T) {
	w, e, logs := newScriptedWorld(t, `this is not tengo`)

	tick(w, 0.25, 22)

	assert.Equal(t, component.StatePatrolling, currentState(t, w, e), "state machine unaffected")
	assert.Equal(t, 1, logs.FilterMessage("ai: load script failed").Len())
}

func TestScriptRuntimeErrorIsNotFatal(t *testing.T) {
	w, e, logs := newScriptedWorld(t, `
onEnter := func(engine, state, current) {
	x := 1 / 0
}
onExit := func(engine, state, current) {}
`)

	require.NotPanics(t, func() { w.Update(0.25) })
	assert.Equal(t, component.StateDetecting, currentState(t, w, e))
	failures := logs.FilterMessage("ai: script hook failed").All()
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].ContextMap()["error"], "divide by zero")

	require.NotPanics(t, func() { w.Update(0.25) })
}

func TestScriptCacheDropsDestroyedAgents(t *testing.T) {
	w := newSimWorld()
	ai := NewAISystem(zap.NewNop(), WithScriptLoader(scriptLoader(map[string]string{
		"guard.tengo": "onEnter := func(engine, state, current) {}\nonExit := func(engine, state, current) {}\n",
	})))
	w.AddSystem(ai)

	e := spawnAgent(t, w, common.Vec3{}, testAI(), common.Vec3{}, common.V3(0, 0, -10))
	require.NoError(t, ecs.Add(w, e, component.AIScriptComponent, component.AIScript{Path: "guard.tengo"}))

	w.Update(0.25)
	require.Contains(t, ai.scripts.cache, e)

	w.DestroyEntity(e)
	w.Update(0.25)
	assert.NotContains(t, ai.scripts.cache, e)
}
