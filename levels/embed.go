package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/peanut/common"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is a ground-plane arena: shared patrol routes plus the entities
// placed on it.
type Level struct {
	Name     string   `json:"name"`
	Routes   []Route  `json:"routes"`
	Entities []Entity `json:"entities,omitempty"`
}

type Route struct {
	Name      string        `json:"name"`
	Waypoints []common.Vec3 `json:"waypoints"`
}

// Entity is one placement. Type is "player", "enemy" or "wall"; Props carry
// the type specific settings (prefab, route, facing, overrides, width, depth).
type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Z     float64        `json:"z"`
	Props map[string]any `json:"props,omitempty"`
}

func (e Entity) Position() common.Vec3 {
	return common.V3(e.X, e.Y, e.Z)
}

// Dir is where on-disk levels are looked up before the embedded copies.
var Dir = "levels"

// Load reads a level by basename; the .json extension is optional.
func Load(name string) (*Level, error) {
	clean := filepath.ToSlash(strings.TrimSpace(name))
	clean = strings.TrimPrefix(clean, "levels/")
	if !strings.HasSuffix(clean, ".json") {
		clean += ".json"
	}

	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean)))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
	}
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	seen := make(map[string]bool, len(l.Routes))
	for _, r := range l.Routes {
		if r.Name == "" {
			return fmt.Errorf("%w: route without a name", ErrInvalidLevel)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: duplicate route %q", ErrInvalidLevel, r.Name)
		}
		seen[r.Name] = true
	}
	for i, e := range l.Entities {
		switch e.Type {
		case "player", "enemy", "wall":
		default:
			return fmt.Errorf("%w: entity %d has unknown type %q", ErrInvalidLevel, i, e.Type)
		}
	}
	return nil
}

// Route returns the named route.
func (l *Level) Route(name string) (Route, bool) {
	for _, r := range l.Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// StringProp reads a string prop.
func (e Entity) StringProp(key string) string {
	s, _ := e.Props[key].(string)
	return s
}

// FloatProp reads a numeric prop. JSON numbers decode as float64.
func (e Entity) FloatProp(key string) (float64, bool) {
	switch v := e.Props[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// MapProp reads a nested object prop.
func (e Entity) MapProp(key string) map[string]any {
	m, _ := e.Props[key].(map[string]any)
	return m
}

// VecProp reads a nested {"x", "y", "z"} prop; missing axes are zero.
func (e Entity) VecProp(key string) (common.Vec3, bool) {
	m := e.MapProp(key)
	if m == nil {
		return common.Vec3{}, false
	}
	axis := func(k string) float64 {
		f, _ := m[k].(float64)
		return f
	}
	return common.V3(axis("x"), axis("y"), axis("z")), true
}
