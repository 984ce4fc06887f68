package component

import (
	"fmt"
	"strings"
)

const (
	LayerWorld uint32 = 1 << iota
	LayerPlayer
	LayerEnemy
)

var layerNames = map[string]uint32{
	"world":  LayerWorld,
	"player": LayerPlayer,
	"enemy":  LayerEnemy,
}

// ParseLayer maps a layer name from a prefab to its bit.
func ParseLayer(name string) (uint32, error) {
	bit, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown collision layer %q", name)
	}
	return bit, nil
}

// CollisionLayer declares the category an entity's shape belongs to. Spatial
// queries filter candidates by it.
type CollisionLayer struct {
	// Category is a bitmask of this entity's collision category. If zero,
	// the physics world will treat it as LayerWorld.
	Category uint32
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
