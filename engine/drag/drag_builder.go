package drag

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-habitat/engine/habitat"
	"github.com/go-gl/mathgl/mgl32"
)

// ControllerBuilderOption is a functional option for configuring a drag Controller.
type ControllerBuilderOption func(*controllerImpl)

// WithBounds sets the initial habitat bounds.
//
// Parameters:
//   - b: the bounds the object is confined to
//
// Returns:
//   - ControllerBuilderOption: functional option to set the bounds
func WithBounds(b habitat.Bounds) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.bounds = b
	}
}

// WithDoubleClickInterval sets the longest gap between two downs treated as a double-click.
// Non-positive values keep the default of 300ms.
//
// Parameters:
//   - d: the interval
//
// Returns:
//   - ControllerBuilderOption: functional option to set the interval
func WithDoubleClickInterval(d time.Duration) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if d > 0 {
			c.doubleClickInterval = d
		}
	}
}

// WithOnDoubleClick registers the callback fired when the object is double-clicked.
//
// Parameters:
//   - fn: callback receiving the object ID
//
// Returns:
//   - ControllerBuilderOption: functional option to set the callback
func WithOnDoubleClick(fn func(id uint64)) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.onDoubleClick = fn
	}
}

// WithOnPositionChange registers the callback fired after every committed move.
//
// Parameters:
//   - fn: callback receiving the object ID and its new position
//
// Returns:
//   - ControllerBuilderOption: functional option to set the callback
func WithOnPositionChange(fn func(id uint64, pos mgl32.Vec3)) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.onPositionChange = fn
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger to use (nil keeps slog.Default)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}
