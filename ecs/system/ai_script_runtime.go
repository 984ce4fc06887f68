package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"go.uber.org/zap"
)

// aiScriptRuntime is one compiled hook script bound to one agent. Scripts
// must define onEnter(engine, state, current) and onExit(engine, state, current).
type aiScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
	err        error
}

const aiLifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state, __current_state)
} else if __phase == "exit" {
	onExit(__engine, __state, __current_state)
}
`

type scriptHooks struct {
	logger *zap.Logger
	load   func(path string) ([]byte, error)
	cache  map[ecs.Entity]*aiScriptRuntime
}

func newScriptHooks(logger *zap.Logger, load func(string) ([]byte, error)) *scriptHooks {
	return &scriptHooks{logger: logger, load: load, cache: map[ecs.Entity]*aiScriptRuntime{}}
}

// run calls the agent's hook for phase, if it has a script. Script failures
// are logged and never stop the state machine.
func (h *scriptHooks) run(a *agent, phase string, st component.StateID) {
	if h == nil || a == nil {
		return
	}
	spec, ok := ecs.Get(a.w, a.e, component.AIScriptComponent)
	if !ok || strings.TrimSpace(spec.Path) == "" {
		return
	}

	rt := h.runtime(a.e, spec.Path)
	if rt.err != nil {
		return
	}
	if err := rt.runPhase(phase, st, buildAIScriptEngine(h, a)); err != nil {
		h.logger.Warn("ai: script hook failed",
			zap.String("agent", a.name),
			zap.String("phase", phase),
			zap.Stringer("state", st),
			zap.Error(err),
		)
	}
}

func (h *scriptHooks) reset() {
	clear(h.cache)
}

// prune drops runtimes of agents that no longer exist.
func (h *scriptHooks) prune(w *ecs.World) {
	if h == nil {
		return
	}
	for e := range h.cache {
		if !w.IsAlive(e) {
			delete(h.cache, e)
		}
	}
}

func (h *scriptHooks) runtime(e ecs.Entity, path string) *aiScriptRuntime {
	if rt, ok := h.cache[e]; ok && rt.scriptPath == path {
		return rt
	}
	rt, err := h.compile(path)
	if err != nil {
		h.logger.Warn("ai: load script failed", zap.String("path", path), zap.Error(err))
		rt = &aiScriptRuntime{scriptPath: path, err: err}
	}
	h.cache[e] = rt
	return rt
}

func (h *scriptHooks) compile(path string) (*aiScriptRuntime, error) {
	if h.load == nil {
		return nil, fmt.Errorf("no script loader")
	}
	scriptBytes, err := h.load(path)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + aiLifecycleDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__current_state", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	return &aiScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// runPhase runs one hook. A panic inside the VM (integer division by zero,
// for one) is returned as an error.
func (rt *aiScriptRuntime) runPhase(phase string, current component.StateID, engine *tengo.ImmutableMap) (err error) {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script %s: panic: %v", rt.scriptPath, r)
		}
	}()
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__current_state", current.String()); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildAIScriptEngine(h *scriptHooks, a *agent) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"entity":     &tengo.String{Value: a.name},
		"elapsed":    &tengo.Float{Value: a.w.Elapsed()},
		"waypoint":   &tengo.Int{Value: int64(a.ctx.WaypointIndex)},
		"timer":      &tengo.Float{Value: a.ctx.DetectionTimer},
		"state_time": &tengo.Float{Value: a.ctx.StateTime},
		"visible":    &tengo.Int{Value: int64(len(a.ctx.VisibleTargets))},
		"x":          &tengo.Float{Value: a.tf.Position.X},
		"y":          &tengo.Float{Value: a.tf.Position.Y},
		"z":          &tengo.Float{Value: a.tf.Position.Z},
	}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		h.logger.Info(strings.Join(parts, " "), zap.String("agent", a.name))
		return tengo.UndefinedValue, nil
	}}

	// interrupt queues a forced transition for the next AI update.
	values["interrupt"] = &tengo.UserFunction{Name: "interrupt", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		st, ok := parseStateName(objectAsString(args[0]))
		if !ok {
			return tengo.FalseValue, nil
		}
		if err := ecs.Add(a.w, a.e, component.AIStateInterruptComponent, component.AIStateInterrupt{State: st}); err != nil {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func parseStateName(name string) (component.StateID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for st := component.StatePatrolling; st <= component.StateAttacking; st++ {
		if st.String() == name {
			return st, true
		}
	}
	return 0, false
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj.(*tengo.String); ok {
		return s.Value
	}
	return obj.String()
}
