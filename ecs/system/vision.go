package system

import (
	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"go.uber.org/zap"
)

// VisibilityEvaluator filters spatial query candidates down to the ones an
// observer can actually see: inside the view cone and not occluded. It keeps
// no state between calls.
type VisibilityEvaluator struct {
	provider SpatialQuery
	locate   Locator
	logger   *zap.Logger
}

func NewVisibilityEvaluator(provider SpatialQuery, locate Locator, logger *zap.Logger) *VisibilityEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VisibilityEvaluator{provider: provider, locate: locate, logger: logger}
}

// FindVisible returns the targets on targetLayer within radius of origin that
// fall inside the viewAngleDegrees cone around facing and have a clear line
// of sight, in the provider's order. Query failures count as "nothing found".
func (v *VisibilityEvaluator) FindVisible(origin, facing common.Vec3, radius, viewAngleDegrees float64, targetLayer uint32) []ecs.Entity {
	if v == nil || v.provider == nil || v.locate == nil {
		return nil
	}

	candidates, err := v.provider.QueryInRadius(origin, radius, targetLayer)
	if err != nil {
		v.logger.Debug("vision: radius query failed", zap.Error(err))
		return nil
	}

	var visible []ecs.Entity
	for _, c := range candidates {
		pos, ok := v.locate(c)
		if !ok {
			continue
		}
		if !InViewCone(origin, facing, pos, viewAngleDegrees) {
			continue
		}
		blocked, err := v.provider.RaycastBlocked(origin, pos, targetLayer)
		if err != nil {
			v.logger.Debug("vision: occlusion query failed", zap.Stringer("candidate", c), zap.Error(err))
			blocked = false
		}
		if blocked {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}

// InViewCone reports whether point lies within half of viewAngleDegrees of
// facing, seen from origin. The boundary is inclusive. A zero facing is
// treated as common.Forward; a point at the origin is always inside.
func InViewCone(origin, facing, point common.Vec3, viewAngleDegrees float64) bool {
	if facing.IsZero() {
		facing = common.Forward
	}
	dir := point.Sub(origin)
	if dir.IsZero() {
		return true
	}
	return common.AngleDeg(facing, dir) <= viewAngleDegrees/2+common.Epsilon
}
