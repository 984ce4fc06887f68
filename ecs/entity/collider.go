package entity

import (
	"fmt"

	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/milk9111/peanut/prefabs"
)

// addCollider attaches the physics components and, when the world has a
// physics space, registers the shape with it.
func addCollider(w *ecs.World, e ecs.Entity, pos common.Vec3, spec prefabs.ColliderSpec, layer uint32, static bool) error {
	body := component.PhysicsBody{
		Radius: spec.Radius,
		Width:  spec.Width,
		Depth:  spec.Depth,
		Static: static,
	}
	cl := component.CollisionLayer{Category: layer}

	if pw := w.PhysicsWorld(); pw != nil {
		if err := pw.Register(e, pos, &body, cl); err != nil {
			return fmt.Errorf("register collider: %w", err)
		}
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent, body); err != nil {
		return fmt.Errorf("add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionLayerComponent, cl); err != nil {
		return fmt.Errorf("add collision layer: %w", err)
	}
	return nil
}
