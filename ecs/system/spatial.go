package system

import (
	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
)

// SpatialQuery answers "what is near this point" and "is this segment
// blocked". *ecs.PhysicsWorld implements it.
type SpatialQuery interface {
	QueryInRadius(center common.Vec3, radius float64, layer uint32) ([]ecs.Entity, error)
	RaycastBlocked(from, to common.Vec3, excludeLayer uint32) (bool, error)
}

var _ SpatialQuery = (*ecs.PhysicsWorld)(nil)

// Locator resolves an entity to its world position.
type Locator func(e ecs.Entity) (common.Vec3, bool)

// TransformLocator reads positions from the Transform component.
func TransformLocator(w *ecs.World) Locator {
	return func(e ecs.Entity) (common.Vec3, bool) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return common.Vec3{}, false
		}
		return t.Position, true
	}
}
