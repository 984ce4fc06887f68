package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/milk9111/peanut/common"
	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/milk9111/peanut/prefabs"
)

// EnemyPlacement says where and how one enemy enters the world.
type EnemyPlacement struct {
	Prefab    string
	Position  common.Vec3
	Facing    common.Vec3
	Route     *component.PatrolRoute
	Overrides map[string]any
}

// NewEnemy builds an agent from its prefab. It starts in Patrolling at
// waypoint 0 with a full detection timer. Nothing is added to the world
// unless the whole configuration is valid.
func NewEnemy(w *ecs.World, p EnemyPlacement) (ecs.Entity, error) {
	base, err := prefabs.LoadEnemySpec(p.Prefab)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}
	spec, err := prefabs.ApplyOverrides(*base, p.Overrides)
	if err != nil {
		return 0, fmt.Errorf("enemy: %s: %w", p.Prefab, err)
	}
	if err := spec.Validate(); err != nil {
		return 0, fmt.Errorf("enemy: %s: %w", p.Prefab, err)
	}

	if p.Route.Len() == 0 {
		return 0, fmt.Errorf("enemy: %s: %w", spec.Name, component.ErrEmptyRoute)
	}

	ai, err := buildAI(&spec)
	if err != nil {
		return 0, fmt.Errorf("enemy: %s: %w", spec.Name, err)
	}

	kind, err := component.ParseEntityKind(spec.Kind)
	if err != nil {
		return 0, fmt.Errorf("enemy: %s: %w", spec.Name, err)
	}

	var weapon *component.Weapon
	if spec.Weapon != "" {
		weapon, err = buildWeapon(spec.Weapon)
		if err != nil {
			return 0, fmt.Errorf("enemy: %s: %w", spec.Name, err)
		}
	}

	facing := p.Facing
	if facing.IsZero() {
		facing = common.Forward
	}

	entity := w.CreateEntity()
	ok := false
	defer func() {
		if !ok {
			w.DestroyEntity(entity)
		}
	}()

	if err := ecs.Add(w, entity, component.AITagComponent, component.AITag{}); err != nil {
		return 0, fmt.Errorf("enemy: add ai tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.IdentityComponent, component.Identity{
		Name:    spec.Name,
		SpawnID: uuid.NewString(),
	}); err != nil {
		return 0, fmt.Errorf("enemy: add identity: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIComponent, ai); err != nil {
		return 0, fmt.Errorf("enemy: add ai: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIStateComponent, component.NewAIState()); err != nil {
		return 0, fmt.Errorf("enemy: add ai state: %w", err)
	}

	if err := ecs.Add(w, entity, component.AIContextComponent, component.AIContext{
		DetectionTimer: ai.TotalDetectionTime,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add ai context: %w", err)
	}

	if err := ecs.Add(w, entity, component.PatrolComponent, component.Patrol{Route: p.Route}); err != nil {
		return 0, fmt.Errorf("enemy: add patrol: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent, component.Transform{
		Position: p.Position,
		Facing:   facing,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.CombatantComponent, component.Combatant{
		Kind:      kind,
		Health:    spec.Health,
		MaxHealth: spec.Health,
		Damage:    spec.Damage,
	}); err != nil {
		return 0, fmt.Errorf("enemy: add combatant: %w", err)
	}

	perSecond := spec.AttacksPerSecond
	if weapon != nil {
		if err := ecs.Add(w, entity, component.WeaponComponent, *weapon); err != nil {
			return 0, fmt.Errorf("enemy: add weapon: %w", err)
		}
		if rate := weapon.AttacksPerSecond(); rate > 0 {
			perSecond = rate
		}
	}
	if err := ecs.Add(w, entity, component.AttackCadenceComponent, component.NewAttackCadence(perSecond)); err != nil {
		return 0, fmt.Errorf("enemy: add attack cadence: %w", err)
	}

	if spec.Script != "" {
		if err := ecs.Add(w, entity, component.AIScriptComponent, component.AIScript{Path: spec.Script}); err != nil {
			return 0, fmt.Errorf("enemy: add ai script: %w", err)
		}
	}

	if err := addCollider(w, entity, p.Position, spec.Collider, component.LayerEnemy, false); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}

	ok = true
	return entity, nil
}

func buildAI(spec *prefabs.EnemySpec) (component.AI, error) {
	layer, err := component.ParseLayer(spec.TargetLayer)
	if err != nil {
		return component.AI{}, err
	}
	ai := component.AI{
		MoveSpeed:          spec.MoveSpeed,
		DetectionRadius:    spec.DetectionRadius,
		ViewAngleDegrees:   spec.ViewAngle,
		AttackRange:        spec.AttackRange,
		TotalDetectionTime: spec.DetectionTime,
		PollInterval:       spec.EffectivePollInterval(),
		TargetLayer:        layer,
		AttackFallback:     spec.AttackFallback,
	}
	if err := ai.Validate(); err != nil {
		return component.AI{}, err
	}
	return ai, nil
}

func buildWeapon(file string) (*component.Weapon, error) {
	spec, err := prefabs.LoadWeaponSpec(file)
	if err != nil {
		return nil, err
	}
	kind, err := component.ParseWeaponKind(spec.Kind)
	if err != nil {
		return nil, fmt.Errorf("weapon %s: %w", spec.Name, err)
	}
	return &component.Weapon{
		Kind:       kind,
		Name:       spec.Name,
		Damage:     spec.Damage,
		MagSize:    spec.MagSize,
		CurrentMag: spec.MagSize,
		FireRate:   spec.FireRate,
		ReloadTime: spec.ReloadTime,
		MeleeSpeed: spec.MeleeSpeed,
	}, nil
}
