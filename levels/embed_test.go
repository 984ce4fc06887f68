package levels

import (
	"errors"
	"testing"

	"github.com/milk9111/peanut/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedLevels(t *testing.T) {
	for _, name := range []string{"arena", "arena.json", "levels/corridor.json"} {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			require.NoError(t, err)
			assert.NotEmpty(t, lvl.Routes)
			assert.NotEmpty(t, lvl.Entities)
		})
	}

	_, err := Load("missing")
	assert.Error(t, err)
}

func TestArenaLayout(t *testing.T) {
	lvl, err := Load("arena")
	require.NoError(t, err)

	hall, ok := lvl.Route("hall")
	require.True(t, ok)
	assert.Equal(t, []common.Vec3{common.V3(0, 0, -12), common.V3(0, 0, 12)}, hall.Waypoints)

	var grunt Entity
	for _, e := range lvl.Entities {
		if e.StringProp("prefab") == "grunt.yaml" {
			grunt = e
		}
	}
	assert.Equal(t, "courtyard", grunt.StringProp("route"))
	facing, ok := grunt.VecProp("facing")
	require.True(t, ok)
	assert.Equal(t, common.V3(1, 0, 0), facing)
	assert.Equal(t, common.V3(-8, 0, -8), grunt.Position())
}

func TestParseRejectsBadLevels(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unnamed route", data: `{"routes":[{"waypoints":[{"x":1}]}]}`},
		{name: "duplicate route", data: `{"routes":[{"name":"a"},{"name":"a"}]}`},
		{name: "unknown entity", data: `{"entities":[{"type":"dragon"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}

	_, err := Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestEntityProps(t *testing.T) {
	e := Entity{Props: map[string]any{
		"prefab": "grunt.yaml",
		"width":  2.5,
		"count":  3,
		"nested": map[string]any{"a": 1.0},
	}}
	assert.Equal(t, "grunt.yaml", e.StringProp("prefab"))
	assert.Empty(t, e.StringProp("width"))

	f, ok := e.FloatProp("width")
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)
	f, ok = e.FloatProp("count")
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
	_, ok = e.FloatProp("prefab")
	assert.False(t, ok)

	assert.Equal(t, 1.0, e.MapProp("nested")["a"])
	_, ok = e.VecProp("missing")
	assert.False(t, ok)
}
