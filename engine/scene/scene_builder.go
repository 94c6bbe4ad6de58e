package scene

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-habitat/engine/camera"
	"github.com/Carmen-Shannon/oxy-habitat/engine/game_object"
	"github.com/Carmen-Shannon/oxy-habitat/engine/habitat"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRig sets the camera rig. Its arbiter becomes the scene's arbiter.
//
// Parameters:
//   - r: the rig to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRig(r camera.Rig) SceneBuilderOption {
	return func(s *scene) {
		s.rig = r
	}
}

// WithCamera sets the camera the rig's pose is applied to.
//
// Parameters:
//   - cam: the camera to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithHabitat sets the initial habitat configuration. It is not validated here;
// use SetHabitat to apply untrusted configuration.
//
// Parameters:
//   - cfg: the habitat configuration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithHabitat(cfg habitat.Config) SceneBuilderOption {
	return func(s *scene) {
		s.habitat = cfg
	}
}

// WithObjects adds initial objects to the scene without selecting them.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.PlacedObject) SceneBuilderOption {
	return func(s *scene) {
		s.pending = append(s.pending, objects...)
	}
}

// WithViewport sets the initial viewport size in pixels.
//
// Parameters:
//   - width, height: viewport size
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithViewport(width, height int) SceneBuilderOption {
	return func(s *scene) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
		}
	}
}

// WithComputeWorkers sets the number of worker goroutines used to build frame instances.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithCullingDisabled marks every enabled object visible regardless of the camera frustum.
//
// Parameters:
//   - disabled: true to disable frustum culling
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}

// WithDoubleClickInterval sets the double-click interval given to every drag controller.
//
// Parameters:
//   - d: the interval; zero keeps the controller default
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDoubleClickInterval(d time.Duration) SceneBuilderOption {
	return func(s *scene) {
		s.doubleClickInterval = d
	}
}

// WithSelectionBob sets the vertical bob applied to the selected object when rendering.
// The committed position never changes.
//
// Parameters:
//   - amplitude: bob height in meters
//   - frequency: angular frequency in radians per second
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSelectionBob(amplitude, frequency float32) SceneBuilderOption {
	return func(s *scene) {
		s.bobAmplitude = amplitude
		s.bobFrequency = frequency
	}
}

// WithClock sets the time source used to timestamp pointer-downs.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClock(now func() time.Time) SceneBuilderOption {
	return func(s *scene) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the structured logger for the scene and the components it creates.
//
// Parameters:
//   - logger: the logger to use (nil keeps slog.Default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnPositionChange registers a callback fired after a drag commits a new position.
//
// Parameters:
//   - fn: callback receiving the object ID and position
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithOnPositionChange(fn func(id uint64, pos mgl32.Vec3)) SceneBuilderOption {
	return func(s *scene) {
		s.onPositionChange = fn
	}
}
