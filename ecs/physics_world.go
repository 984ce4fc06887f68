package ecs

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs/component"
)

var ErrNoSpace = errors.New("physics: no space")

type physicsEntry struct {
	body     *cp.Body
	shape    *cp.Shape
	category uint32
	order    uint64
}

// PhysicsWorld owns the Chipmunk space that answers spatial queries. Every
// collider is projected onto the ground plane (world X -> cp X, world Z -> cp Y).
type PhysicsWorld struct {
	space         *cp.Space
	entries       map[Entity]*physicsEntry
	shapeToEntity map[*cp.Shape]Entity
	nextOrder     uint64
}

// NewPhysicsWorld creates an empty top-down space with no gravity.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	return &PhysicsWorld{
		space:         space,
		entries:       make(map[Entity]*physicsEntry),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

func toCP(v common.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// Register creates the cp body and shape for e at pos and writes them back
// into body. Static bodies are for level geometry; everything else is
// kinematic and moved with SetPosition.
func (pw *PhysicsWorld) Register(e Entity, pos common.Vec3, body *component.PhysicsBody, layer component.CollisionLayer) error {
	if pw == nil || pw.space == nil {
		return ErrNoSpace
	}
	if body == nil {
		return component.ErrNilComponent
	}
	if _, exists := pw.entries[e]; exists {
		pw.Unregister(e)
	}

	var cpBody *cp.Body
	if body.Static {
		cpBody = cp.NewStaticBody()
	} else {
		cpBody = cp.NewKinematicBody()
	}
	cpBody.SetPosition(toCP(pos))

	var shape *cp.Shape
	switch {
	case body.Radius > 0:
		shape = cp.NewCircle(cpBody, body.Radius, cp.Vector{})
	case body.Width > 0 && body.Depth > 0:
		shape = cp.NewBox(cpBody, body.Width, body.Depth, 0)
	default:
		return fmt.Errorf("physics: entity %v has no collider size", e)
	}

	category := layer.Category
	if category == 0 {
		category = component.LayerWorld
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(category), cp.ALL_CATEGORIES))
	shape.UserData = e

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	shape.CacheBB()

	pw.nextOrder++
	pw.entries[e] = &physicsEntry{body: cpBody, shape: shape, category: category, order: pw.nextOrder}
	pw.shapeToEntity[shape] = e

	body.Body = cpBody
	body.Shape = shape
	return nil
}

// SetPosition moves e's body and refreshes the shape's cached bounds so the
// next query sees the new position without a space step.
func (pw *PhysicsWorld) SetPosition(e Entity, pos common.Vec3) {
	if pw == nil || pw.space == nil {
		return
	}
	entry, ok := pw.entries[e]
	if !ok {
		return
	}
	next := toCP(pos)
	if entry.body.Position() == next {
		return
	}
	entry.body.SetPosition(next)
	entry.shape.CacheBB()
}

// Unregister removes e's shape and body from the space.
func (pw *PhysicsWorld) Unregister(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	entry, ok := pw.entries[e]
	if !ok {
		return
	}
	pw.space.RemoveShape(entry.shape)
	pw.space.RemoveBody(entry.body)
	delete(pw.shapeToEntity, entry.shape)
	delete(pw.entries, e)
}

// ordered returns the registered entries sorted by registration order.
func (pw *PhysicsWorld) ordered() []*physicsEntry {
	entries := make([]*physicsEntry, 0, len(pw.entries))
	for _, entry := range pw.entries {
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, func(a, b *physicsEntry) int {
		switch {
		case a.order < b.order:
			return -1
		case a.order > b.order:
			return 1
		}
		return 0
	})
	return entries
}

// QueryInRadius returns entities whose shapes lie within radius of center and
// whose category matches layer, in registration order. The radius is measured
// on the XZ plane; height is ignored.
func (pw *PhysicsWorld) QueryInRadius(center common.Vec3, radius float64, layer uint32) ([]Entity, error) {
	if pw == nil || pw.space == nil {
		return nil, ErrNoSpace
	}
	if radius <= 0 || layer == 0 {
		return nil, nil
	}

	point := toCP(center)
	var hits []Entity
	for _, entry := range pw.ordered() {
		if entry.category&layer == 0 {
			continue
		}
		if entry.shape.PointQuery(point).Distance > radius {
			continue
		}
		hits = append(hits, pw.shapeToEntity[entry.shape])
	}
	return hits, nil
}

// RaycastBlocked reports whether anything outside excludeLayer lies on the
// segment from -> to. Shapes that contain the ray origin are skipped so a
// caster never occludes itself.
func (pw *PhysicsWorld) RaycastBlocked(from, to common.Vec3, excludeLayer uint32) (bool, error) {
	if pw == nil || pw.space == nil {
		return false, ErrNoSpace
	}
	start, end := toCP(from), toCP(to)
	if start == end {
		return false, nil
	}

	var info cp.SegmentQueryInfo
	for _, entry := range pw.entries {
		if entry.category&^excludeLayer == 0 {
			continue
		}
		if entry.shape.PointQuery(start).Distance <= 0 {
			continue
		}
		if entry.shape.SegmentQuery(start, end, 0, &info) {
			return true, nil
		}
	}
	return false, nil
}

// Len reports how many entities have registered shapes.
func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.entries)
}
