package system

import (
	"math"
	"slices"

	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
)

// ColliderScan answers spatial queries by walking every collider component
// on the ground plane. It serves worlds that carry no PhysicsWorld.
type ColliderScan struct {
	w *ecs.World
}

var _ SpatialQuery = (*ColliderScan)(nil)

func NewColliderScan(w *ecs.World) *ColliderScan {
	return &ColliderScan{w: w}
}

type collider struct {
	e     ecs.Entity
	pos   common.Vec3
	body  *component.PhysicsBody
	layer uint32
}

func (s *ColliderScan) colliders() []collider {
	if s == nil || s.w == nil {
		return nil
	}
	var out []collider
	ecs.ForEach2(s.w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		layer := component.LayerWorld
		if cl, ok := ecs.Get(s.w, e, component.CollisionLayerComponent); ok && cl.Category != 0 {
			layer = cl.Category
		}
		out = append(out, collider{e: e, pos: t.Position, body: body, layer: layer})
	})
	return out
}

func (s *ColliderScan) QueryInRadius(center common.Vec3, radius float64, layer uint32) ([]ecs.Entity, error) {
	if radius <= 0 || layer == 0 {
		return nil, nil
	}
	var out []ecs.Entity
	for _, c := range s.colliders() {
		if c.layer&layer == 0 {
			continue
		}
		if colliderDistance(c, center.X, center.Z) <= radius {
			out = append(out, c.e)
		}
	}
	slices.Sort(out)
	return out, nil
}

// RaycastBlocked reports whether any collider outside excludeLayer crosses
// the segment. Colliders that contain from are the caster's own and are skipped.
func (s *ColliderScan) RaycastBlocked(from, to common.Vec3, excludeLayer uint32) (bool, error) {
	x0, y0 := from.X, from.Z
	x1, y1 := to.X, to.Z
	dx, dy := x1-x0, y1-y0
	if dx == 0 && dy == 0 {
		return false, nil
	}

	for _, c := range s.colliders() {
		if c.layer&excludeLayer != 0 {
			continue
		}
		if colliderDistance(c, x0, y0) <= 0 {
			continue
		}
		if c.body.Radius > 0 {
			if segmentCircleHit(x0, y0, x1, y1, c.pos.X, c.pos.Z, c.body.Radius) {
				return true, nil
			}
			continue
		}
		minX, minY, maxX, maxY := bodyAABB(c)
		if hit, _ := segmentAABBHit(x0, y0, dx, dy, minX, minY, maxX, maxY); hit {
			return true, nil
		}
	}
	return false, nil
}

// colliderDistance is the distance from (x, y) to the collider's edge; zero
// or less means inside.
func colliderDistance(c collider, x, y float64) float64 {
	if c.body.Radius > 0 {
		return math.Hypot(x-c.pos.X, y-c.pos.Z) - c.body.Radius
	}
	minX, minY, maxX, maxY := bodyAABB(c)
	dx := math.Max(math.Max(minX-x, 0), x-maxX)
	dy := math.Max(math.Max(minY-y, 0), y-maxY)
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Hypot(dx, dy)
}

func bodyAABB(c collider) (minX, minY, maxX, maxY float64) {
	width := c.body.Width
	depth := c.body.Depth
	minX = c.pos.X - width/2
	minY = c.pos.Z - depth/2
	return minX, minY, minX + width, minY + depth
}

func segmentAABBHit(x0, y0, dx, dy, minX, minY, maxX, maxY float64) (bool, float64) {
	tmin := 0.0
	tmax := 1.0

	if dx != 0 {
		invD := 1.0 / dx
		t1 := (minX - x0) * invD
		t2 := (maxX - x0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if x0 < minX || x0 > maxX {
		return false, 0
	}

	if dy != 0 {
		invD := 1.0 / dy
		t1 := (minY - y0) * invD
		t2 := (maxY - y0) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	} else if y0 < minY || y0 > maxY {
		return false, 0
	}

	if tmax >= tmin {
		return true, tmin
	}
	return false, 0
}

func segmentCircleHit(x0, y0, x1, y1, cx, cy, r float64) bool {
	dx := x1 - x0
	dy := y1 - y0
	fx := x0 - cx
	fy := y0 - cy

	a := dx*dx + dy*dy
	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - r*r

	disc := b*b - 4*a*c
	if disc < 0 || a == 0 {
		return false
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	return (t1 >= 0 && t1 <= 1) || (t2 >= 0 && t2 <= 1)
}
