package entity

import (
	"fmt"

	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/milk9111/peanut/prefabs"
)

// NewPlayer spawns the target agents hunt for, on the player query layer.
func NewPlayer(w *ecs.World, pos common.Vec3) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	entity := w.CreateEntity()
	ok := false
	defer func() {
		if !ok {
			w.DestroyEntity(entity)
		}
	}()

	if err := ecs.Add(w, entity, component.PlayerTagComponent, component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.IdentityComponent, component.Identity{Name: spec.Name}); err != nil {
		return 0, fmt.Errorf("player: add identity: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, component.Transform{
		Position: pos,
		Facing:   common.Forward,
	}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.CombatantComponent, component.Combatant{
		Kind:      component.KindPlayer,
		Health:    spec.Health,
		MaxHealth: spec.Health,
		Damage:    spec.Damage,
	}); err != nil {
		return 0, fmt.Errorf("player: add combatant: %w", err)
	}

	if err := addCollider(w, entity, pos, spec.Collider, component.LayerPlayer, false); err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	ok = true
	return entity, nil
}
