package system

import (
	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"go.uber.org/zap"
)

func (s *AISystem) patrol(a *agent, dt float64) {
	a.ctx.WaypointIndex %= a.route.Len()
	target := a.route.At(a.ctx.WaypointIndex)
	moveAgent(a, target, a.ai.MoveSpeed*dt)

	if common.Distance(a.tf.Position, target) < common.ArriveDistance {
		a.ctx.WaypointIndex = a.route.Next(a.ctx.WaypointIndex)
		s.transition(a, component.StateDetecting)
	}
}

func (s *AISystem) detect(a *agent, dt float64) {
	now := a.w.Elapsed()

	a.ctx.DetectionTimer -= dt
	if a.ctx.DetectionTimer < common.Epsilon {
		a.ctx.DetectionTimer = 0
	}

	if a.ctx.PollArmed && now+common.Epsilon >= a.ctx.PollDeadline {
		s.poll(a)
		a.ctx.PollDeadline = now + a.ai.PollInterval
	}

	if len(a.ctx.VisibleTargets) > 0 {
		a.ctx.Pursuit = a.ctx.VisibleTargets[0]
		s.transition(a, component.StateChasing)
		return
	}
	if a.ctx.DetectionTimer <= 0 {
		s.transition(a, component.StatePatrolling)
	}
}

// poll rebuilds the visible target list from scratch. Dead combatants are
// not worth chasing and are dropped.
func (s *AISystem) poll(a *agent) {
	a.ctx.VisibleTargets = a.ctx.VisibleTargets[:0]
	found := a.vision.FindVisible(a.tf.Position, a.tf.Facing, a.ai.DetectionRadius, a.ai.ViewAngleDegrees, a.ai.TargetLayer)
	for _, t := range found {
		if t == a.e {
			continue
		}
		if c, ok := ecs.Get(a.w, t, component.CombatantComponent); ok && c.HasDied() {
			continue
		}
		a.ctx.VisibleTargets = append(a.ctx.VisibleTargets, uint64(t))
	}
}

func (s *AISystem) chase(a *agent, dt float64) {
	_, pos, ok := pursuit(a)
	if !ok {
		s.transition(a, component.StateDetecting)
		return
	}
	moveAgent(a, pos, a.ai.MoveSpeed*dt)
	if common.Distance(a.tf.Position, pos) < a.ai.AttackRange {
		s.transition(a, component.StateAttacking)
	}
}

func (s *AISystem) attack(a *agent) {
	target, pos, ok := pursuit(a)
	if a.ai.AttackFallback {
		if !ok || targetDead(a.w, target) {
			s.transition(a, component.StateDetecting)
			return
		}
		if common.Distance(a.tf.Position, pos) >= a.ai.AttackRange {
			s.transition(a, component.StateChasing)
			return
		}
	}
	if !ok {
		return
	}

	face(a, pos)
	cadence, ok := ecs.Get(a.w, a.e, component.AttackCadenceComponent)
	if ok && !cadence.Allow(a.w.Elapsed()) {
		return
	}
	a.w.Events().Push(ecs.Event{
		Type: ecs.EventAttack,
		Data: ecs.Attack{Attacker: a.e, Target: target, At: a.w.Elapsed()},
	})
}

// transition is the only path that changes an agent's state. It runs the
// exit action of the old state and the entry action of the new one.
func (s *AISystem) transition(a *agent, next component.StateID) {
	prev := a.state.Current()
	s.exit(a, prev)
	a.state.Transition(next)
	a.ctx.StateTime = 0
	s.enter(a, next)

	a.w.Events().Push(ecs.Event{
		Type: ecs.EventAIStateChanged,
		Data: ecs.AIStateChanged{Entity: a.e, From: prev, To: next, At: a.w.Elapsed()},
	})
	s.logger.Debug("ai: transition",
		zap.String("agent", a.name),
		zap.Stringer("from", prev),
		zap.Stringer("to", next),
		zap.Int("waypoint", a.ctx.WaypointIndex),
	)
	if prev.Valid() {
		s.scripts.run(a, "exit", prev)
	}
	s.scripts.run(a, "enter", next)
}

func (s *AISystem) enter(a *agent, st component.StateID) {
	switch st {
	case component.StatePatrolling:
		a.ctx.Pursuit = 0
	case component.StateDetecting:
		a.ctx.DetectionTimer = max(a.ai.TotalDetectionTime, 0)
		a.ctx.VisibleTargets = a.ctx.VisibleTargets[:0]
		a.ctx.Pursuit = 0
		a.ctx.PollArmed = true
		a.ctx.PollDeadline = a.w.Elapsed()
	}
}

func (s *AISystem) exit(a *agent, st component.StateID) {
	if st == component.StateDetecting {
		// Any pending poll dies with the state.
		a.ctx.PollArmed = false
		a.ctx.PollDeadline = 0
		a.ctx.VisibleTargets = a.ctx.VisibleTargets[:0]
	}
}

func pursuit(a *agent) (ecs.Entity, common.Vec3, bool) {
	target := ecs.Entity(a.ctx.Pursuit)
	if !a.w.IsAlive(target) {
		return 0, common.Vec3{}, false
	}
	t, ok := ecs.Get(a.w, target, component.TransformComponent)
	if !ok {
		return 0, common.Vec3{}, false
	}
	return target, t.Position, true
}

func targetDead(w *ecs.World, target ecs.Entity) bool {
	c, ok := ecs.Get(w, target, component.CombatantComponent)
	return ok && c.HasDied()
}
