package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ApplyOverrides returns a copy of base with the keys in overrides written
// over it, as if they had been part of the original YAML. Levels use it to
// tune a single spawn without a new prefab.
func ApplyOverrides[T any](base T, overrides map[string]any) (T, error) {
	if len(overrides) == 0 {
		return base, nil
	}
	b, err := yaml.Marshal(overrides)
	if err != nil {
		return base, fmt.Errorf("prefabs: marshal overrides: %w", err)
	}
	out := base
	if err := yaml.Unmarshal(b, &out); err != nil {
		return base, fmt.Errorf("prefabs: apply overrides: %w", err)
	}
	return out, nil
}
