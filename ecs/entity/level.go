package entity

import (
	"fmt"

	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/milk9111/peanut/levels"
)

// Spawned lists what LoadLevelToWorld created.
type Spawned struct {
	Player  ecs.Entity
	Enemies []ecs.Entity
	Walls   []ecs.Entity
}

// LoadLevelToWorld creates every placement in lvl. Routes are built once and
// shared by the enemies that name them.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level) (Spawned, error) {
	var out Spawned

	routes := make(map[string]*component.PatrolRoute, len(lvl.Routes))
	for _, r := range lvl.Routes {
		route, err := component.NewPatrolRoute(r.Name, r.Waypoints...)
		if err != nil {
			return out, fmt.Errorf("level %s: route %s: %w", lvl.Name, r.Name, err)
		}
		routes[r.Name] = route
	}

	for i, placed := range lvl.Entities {
		switch placed.Type {
		case "player":
			e, err := NewPlayer(w, placed.Position())
			if err != nil {
				return out, fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
			}
			out.Player = e
		case "wall":
			width, _ := placed.FloatProp("width")
			depth, _ := placed.FloatProp("depth")
			e, err := NewWall(w, placed.Position(), width, depth)
			if err != nil {
				return out, fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
			}
			out.Walls = append(out.Walls, e)
		case "enemy":
			name := placed.StringProp("route")
			route, ok := routes[name]
			if !ok {
				return out, fmt.Errorf("level %s: entity %d: unknown route %q: %w", lvl.Name, i, name, component.ErrEmptyRoute)
			}
			facing, _ := placed.VecProp("facing")
			e, err := NewEnemy(w, EnemyPlacement{
				Prefab:    placed.StringProp("prefab"),
				Position:  placed.Position(),
				Facing:    facing,
				Route:     route,
				Overrides: placed.MapProp("overrides"),
			})
			if err != nil {
				return out, fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
			}
			out.Enemies = append(out.Enemies, e)
		default:
			return out, fmt.Errorf("level %s: entity %d: %w: type %q", lvl.Name, i, levels.ErrInvalidLevel, placed.Type)
		}
	}
	return out, nil
}
