package system

import (
	"github.com/milk9111/peanut/common"
)

// moveAgent steps an agent toward target, turns it to face the direction of
// travel, and keeps its collider in sync so later queries this tick see the
// new position.
func moveAgent(a *agent, target common.Vec3, maxDelta float64) {
	next := common.MoveTowards(a.tf.Position, target, maxDelta)
	if step := next.Sub(a.tf.Position).Flat(); !step.IsZero() {
		a.tf.Facing = step.Normalize()
	}
	a.tf.Position = next
	if pw := a.w.PhysicsWorld(); pw != nil {
		pw.SetPosition(a.e, next)
	}
}

func face(a *agent, target common.Vec3) {
	if dir := target.Sub(a.tf.Position).Flat(); !dir.IsZero() {
		a.tf.Facing = dir.Normalize()
	}
}
