package entity

import (
	"fmt"

	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/milk9111/peanut/prefabs"
)

// NewWall adds a static box that blocks line of sight.
func NewWall(w *ecs.World, center common.Vec3, width, depth float64) (ecs.Entity, error) {
	if width <= 0 || depth <= 0 {
		return 0, fmt.Errorf("wall: %w: size %vx%v", prefabs.ErrInvalidSpec, width, depth)
	}

	entity := w.CreateEntity()
	ok := false
	defer func() {
		if !ok {
			w.DestroyEntity(entity)
		}
	}()

	if err := ecs.Add(w, entity, component.WallTagComponent, component.WallTag{}); err != nil {
		return 0, fmt.Errorf("wall: add wall tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, component.Transform{Position: center}); err != nil {
		return 0, fmt.Errorf("wall: add transform: %w", err)
	}

	if err := addCollider(w, entity, center, prefabs.ColliderSpec{Width: width, Depth: depth}, component.LayerWorld, true); err != nil {
		return 0, fmt.Errorf("wall: %w", err)
	}

	ok = true
	return entity, nil
}
