package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-habitat/engine/camera"
	"github.com/Carmen-Shannon/oxy-habitat/engine/habitat"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutTOML = `
[viewport]
max_distance = 120.0
double_click_ms = 250
follow_cursor = false

[viewport.window]
title = "Lunar Outpost"
width = 1600
height = 900

[habitat]
name = "Outpost"
shape = "cube"
crew_size = 3
mission_duration = 90
mission_type = "mars"
dimension_x = 10.0
dimension_y = 3.0
dimension_z = 8.0

[[modules]]
kind = "galley"
position = [1.0, 0.0, -1.0]
size = [2.0, 2.0, 2.0]

[[modules]]
kind = "airlock"
position = [9.0, 0.0, 0.0]
size = [2.0, 2.5, 2.0]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habitat.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 300*time.Millisecond, cfg.Viewport.DoubleClickInterval())
	assert.Empty(t, cfg.Objects())
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, layoutTOML))
	require.NoError(t, err)

	assert.Equal(t, float32(120), cfg.Viewport.MaxDistance)
	assert.Equal(t, float32(0.5), cfg.Viewport.MinDistance, "keys absent from the file keep their defaults")
	assert.False(t, cfg.Viewport.FollowCursor)
	assert.Equal(t, 250*time.Millisecond, cfg.Viewport.DoubleClickInterval())
	assert.Equal(t, Window{Title: "Lunar Outpost", Width: 1600, Height: 900}, cfg.Viewport.Window)

	assert.Equal(t, habitat.ShapeCube, cfg.Habitat.Shape)
	assert.Equal(t, 3, cfg.Habitat.CrewSize)
	require.Len(t, cfg.Modules, 2)

	objects := cfg.Objects()
	require.Len(t, objects, 2)
	assert.Equal(t, uint64(1), objects[0].ID())
	assert.Equal(t, "galley", objects[0].Kind())
	assert.Equal(t, mgl32.Vec3{1, 0, -1}, objects[0].Position())
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, objects[1].Position(), "out-of-bounds modules are clamped")
	assert.Equal(t, mgl32.Vec3{2, 2.5, 2}, objects[1].Size())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HABITAT_MAX_DISTANCE", "80")
	t.Setenv("HABITAT_FOLLOW_CURSOR", "true")
	t.Setenv("HABITAT_WINDOW_WIDTH", "1024")

	cfg, err := Load(writeConfig(t, layoutTOML))
	require.NoError(t, err)
	assert.Equal(t, float32(80), cfg.Viewport.MaxDistance)
	assert.True(t, cfg.Viewport.FollowCursor)
	assert.Equal(t, 1024, cfg.Viewport.Window.Width)
	assert.Equal(t, 900, cfg.Viewport.Window.Height)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantIs  error
		wantMsg string
	}{
		{
			name:    "env parse",
			env:     map[string]string{"HABITAT_ZOOM_SPEED": "fast"},
			wantMsg: "parse env:",
		},
		{
			name:    "unknown key",
			content: "[viewport]\nzoom_sped = 2.0\n",
			wantMsg: "decode config:",
		},
		{
			name:    "bad distance bounds",
			content: "[viewport]\nmin_distance = 10.0\nmax_distance = 5.0\n",
			wantIs:  ErrInvalidViewport,
		},
		{
			name:    "bad habitat",
			content: "[habitat]\nshape = \"pyramid\"\n",
			wantIs:  habitat.ErrUnknownShape,
		},
		{
			name:    "module without size",
			content: "[[modules]]\nkind = \"lab\"\nposition = [0.0, 0.0, 0.0]\n",
			wantIs:  ErrInvalidModule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.content != "" {
				path = writeConfig(t, tt.content)
			}
			_, err := Load(path)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMsg != "" {
				assert.True(t, strings.Contains(err.Error(), tt.wantMsg), "got %v", err)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestViewportRigOptions(t *testing.T) {
	v := DefaultViewport()
	v.Radius = 20
	v.MinDistance = 5
	v.MaxDistance = 30

	r := camera.NewRig(v.RigOptions()...)
	assert.Equal(t, float32(20), r.Radius())
	assert.Equal(t, float32(5), r.MinDistance())
	assert.Equal(t, float32(30), r.MaxDistance())
	assert.InDelta(t, math.Pi/3, r.Polar(), 1e-6)
	assert.InDelta(t, math.Pi/4, r.Azimuth(), 1e-6)

	for range 100 {
		r.Wheel(1)
	}
	assert.Equal(t, float32(30), r.Radius())
}

func TestViewportOptionCounts(t *testing.T) {
	v := DefaultViewport()
	assert.Len(t, v.CameraOptions(), 2)
	assert.Len(t, v.SceneOptions(), 3)
	v.ComputeWorkers = 2
	assert.Len(t, v.SceneOptions(), 4)
	assert.Len(t, v.WindowOptions(), 3)
}
