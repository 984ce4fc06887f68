package component

import "github.com/milk9111/peanut/common"

// Transform is an entity's pose. Facing is a direction and need not be normalized.
type Transform struct {
	Position common.Vec3
	Facing   common.Vec3
}

var TransformComponent = NewComponent[Transform]()
