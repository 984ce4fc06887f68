package system

import (
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
)

// PhysicsSyncSystem copies every non-static transform into the physics space
// so spatial queries see positions written outside the AI system.
type PhysicsSyncSystem struct{}

func NewPhysicsSyncSystem() *PhysicsSyncSystem {
	return &PhysicsSyncSystem{}
}

func (s *PhysicsSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Static {
			return
		}
		pw.SetPosition(e, t.Position)
	})
}
