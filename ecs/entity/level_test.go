package entity

import (
	"testing"

	"github.com/milk9111/peanut/ecs"
	"github.com/milk9111/peanut/ecs/component"
	"github.com/milk9111/peanut/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArenaToWorld(t *testing.T) {
	lvl, err := levels.Load("arena")
	require.NoError(t, err)

	w := newWorld()
	spawned, err := LoadLevelToWorld(w, lvl)
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, spawned.Player, component.PlayerTagComponent))
	assert.Len(t, spawned.Enemies, 3)
	assert.Len(t, spawned.Walls, 2)
	assert.Equal(t, 6, w.PhysicsWorld().Len())

	grunt, scout := spawned.Enemies[0], spawned.Enemies[2]
	pg, _ := ecs.Get(w, grunt, component.PatrolComponent)
	ps, _ := ecs.Get(w, scout, component.PatrolComponent)
	assert.Same(t, pg.Route, ps.Route, "courtyard is shared")

	tf, _ := ecs.Get(w, grunt, component.TransformComponent)
	assert.Equal(t, 1.0, tf.Facing.X)

	ai, _ := ecs.Get(w, scout, component.AIComponent)
	assert.Equal(t, 4.0, ai.MoveSpeed, "level override applied")
}

func TestLoadLevelUnknownRoute(t *testing.T) {
	lvl, err := levels.Parse([]byte(`{
		"name": "broken",
		"entities": [{"type": "enemy", "props": {"prefab": "grunt.yaml", "route": "nowhere"}}]
	}`))
	require.NoError(t, err)

	_, err = LoadLevelToWorld(newWorld(), lvl)
	assert.ErrorIs(t, err, component.ErrEmptyRoute)
}
