package config

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-habitat/engine/camera"
	"github.com/Carmen-Shannon/oxy-habitat/engine/scene"
	"github.com/Carmen-Shannon/oxy-habitat/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// Viewport holds the navigation and interaction tuning. Angles are in degrees.
type Viewport struct {
	Radius     float32 `toml:"radius" env:"RADIUS"`
	PolarDeg   float32 `toml:"polar_deg" env:"POLAR_DEG"`
	AzimuthDeg float32 `toml:"azimuth_deg" env:"AZIMUTH_DEG"`

	MinDistance   float32 `toml:"min_distance" env:"MIN_DISTANCE"`
	MaxDistance   float32 `toml:"max_distance" env:"MAX_DISTANCE"`
	ZoomSpeed     float32 `toml:"zoom_speed" env:"ZOOM_SPEED"`
	WheelFactor   float32 `toml:"wheel_factor" env:"WHEEL_FACTOR"`
	KeyZoomFactor float32 `toml:"key_zoom_factor" env:"KEY_ZOOM_FACTOR"`
	ZoomDamping   float32 `toml:"zoom_damping" env:"ZOOM_DAMPING"`

	OrbitSensitivity float32 `toml:"orbit_sensitivity" env:"ORBIT_SENSITIVITY"`
	PolarEpsilon     float32 `toml:"polar_epsilon" env:"POLAR_EPSILON"`
	PanFactor        float32 `toml:"pan_factor" env:"PAN_FACTOR"`

	FollowCursor  bool    `toml:"follow_cursor" env:"FOLLOW_CURSOR"`
	FollowSpeed   float32 `toml:"follow_speed" env:"FOLLOW_SPEED"`
	FollowScale   float32 `toml:"follow_scale" env:"FOLLOW_SCALE"`
	FollowDamping float32 `toml:"follow_damping" env:"FOLLOW_DAMPING"`

	DoubleClickMS int     `toml:"double_click_ms" env:"DOUBLE_CLICK_MS"`
	FovDeg        float32 `toml:"fov_deg" env:"FOV_DEG"`
	BobAmplitude  float32 `toml:"bob_amplitude" env:"BOB_AMPLITUDE"`
	BobFrequency  float32 `toml:"bob_frequency" env:"BOB_FREQUENCY"`

	ComputeWorkers int     `toml:"compute_workers" env:"COMPUTE_WORKERS"`
	FrameLimit     float64 `toml:"frame_limit" env:"FRAME_LIMIT"`
	Profiling      bool    `toml:"profiling" env:"PROFILING"`

	Window Window `toml:"window" envPrefix:"WINDOW_"`
}

// Window is the initial window geometry.
type Window struct {
	Title  string `toml:"title" env:"TITLE"`
	Width  int    `toml:"width" env:"WIDTH"`
	Height int    `toml:"height" env:"HEIGHT"`
}

// DefaultViewport returns the tuning the viewer ships with.
func DefaultViewport() Viewport {
	return Viewport{
		Radius:     15,
		PolarDeg:   60,
		AzimuthDeg: 45,

		MinDistance:   0.5,
		MaxDistance:   500,
		ZoomSpeed:     2,
		WheelFactor:   0.05,
		KeyZoomFactor: 0.1,
		ZoomDamping:   0.1,

		OrbitSensitivity: 0.005,
		PolarEpsilon:     0.1,
		PanFactor:        0.002,

		FollowCursor:  true,
		FollowSpeed:   0.05,
		FollowScale:   0.3,
		FollowDamping: 0.05,

		DoubleClickMS: 300,
		FovDeg:        50,
		BobAmplitude:  0.1,
		BobFrequency:  3,

		FrameLimit: 60,

		Window: Window{Title: "Habitat Layout", Width: 1280, Height: 720},
	}
}

// Validate rejects tuning the rig or camera cannot work with.
func (v Viewport) Validate() error {
	switch {
	case v.MinDistance <= 0 || v.MaxDistance < v.MinDistance:
		return fmt.Errorf("%w: distance bounds [%g, %g]", ErrInvalidViewport, v.MinDistance, v.MaxDistance)
	case v.FovDeg <= 0 || v.FovDeg >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalidViewport, v.FovDeg)
	case v.ZoomDamping <= 0 || v.ZoomDamping > 1:
		return fmt.Errorf("%w: zoom damping %g", ErrInvalidViewport, v.ZoomDamping)
	case v.FollowDamping < 0 || v.FollowDamping > 1:
		return fmt.Errorf("%w: follow damping %g", ErrInvalidViewport, v.FollowDamping)
	case v.DoubleClickMS < 0:
		return fmt.Errorf("%w: double click interval %dms", ErrInvalidViewport, v.DoubleClickMS)
	case v.Window.Width <= 0 || v.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidViewport, v.Window.Width, v.Window.Height)
	}
	return nil
}

// DoubleClickInterval returns the double-click window as a duration.
func (v Viewport) DoubleClickInterval() time.Duration {
	return time.Duration(v.DoubleClickMS) * time.Millisecond
}

// RigOptions converts the tuning into rig options.
//
// Returns:
//   - []camera.RigBuilderOption: options for camera.NewRig
func (v Viewport) RigOptions() []camera.RigBuilderOption {
	return []camera.RigBuilderOption{
		camera.WithRadius(v.Radius),
		camera.WithAngles(mgl32.DegToRad(v.PolarDeg), mgl32.DegToRad(v.AzimuthDeg)),
		camera.WithDistanceBounds(v.MinDistance, v.MaxDistance),
		camera.WithZoom(v.ZoomSpeed, v.WheelFactor, v.KeyZoomFactor, v.ZoomDamping),
		camera.WithOrbitSensitivity(v.OrbitSensitivity),
		camera.WithPolarEpsilon(v.PolarEpsilon),
		camera.WithPanFactor(v.PanFactor),
		camera.WithCursorFollow(v.FollowCursor, v.FollowSpeed, v.FollowScale, v.FollowDamping),
	}
}

// CameraOptions converts the tuning into camera options.
func (v Viewport) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithFov(mgl32.DegToRad(v.FovDeg)),
		camera.WithAspect(float32(v.Window.Width) / float32(v.Window.Height)),
	}
}

// SceneOptions converts the interaction tuning into scene options. The rig and
// camera are built separately from RigOptions and CameraOptions.
func (v Viewport) SceneOptions() []scene.SceneBuilderOption {
	opts := []scene.SceneBuilderOption{
		scene.WithViewport(v.Window.Width, v.Window.Height),
		scene.WithDoubleClickInterval(v.DoubleClickInterval()),
		scene.WithSelectionBob(v.BobAmplitude, v.BobFrequency),
	}
	if v.ComputeWorkers > 0 {
		opts = append(opts, scene.WithComputeWorkers(v.ComputeWorkers))
	}
	return opts
}

// WindowOptions converts the window geometry into window options.
func (v Viewport) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(v.Window.Title),
		window.WithWidth(v.Window.Width),
		window.WithHeight(v.Window.Height),
	}
}
