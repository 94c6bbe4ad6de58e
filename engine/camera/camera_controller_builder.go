package camera

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-habitat/engine/gesture"
)

// RigBuilderOption is a functional option for configuring a Rig.
type RigBuilderOption func(*rigImpl)

// WithArbiter shares a gesture arbiter between the rig and drag controllers.
//
// Parameters:
//   - a: the arbiter owning gesture state
//
// Returns:
//   - RigBuilderOption: functional option to set the arbiter
func WithArbiter(a gesture.Arbiter) RigBuilderOption {
	return func(r *rigImpl) {
		r.arbiter = a
	}
}

// WithLogger sets the structured logger used by the rig.
//
// Parameters:
//   - logger: the logger to use (nil keeps the default)
//
// Returns:
//   - RigBuilderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) RigBuilderOption {
	return func(r *rigImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - RigBuilderOption: functional option to set the radius
func WithRadius(radius float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.desiredRadius = radius
	}
}

// WithAngles sets the initial polar angle and azimuth.
//
// Parameters:
//   - polar: angle from +Y in radians
//   - azimuth: angle around +Y in radians
//
// Returns:
//   - RigBuilderOption: functional option to set the angles
func WithAngles(polar, azimuth float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.polar = polar
		r.azimuth = azimuth
	}
}

// WithDistanceBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - RigBuilderOption: functional option to set radius bounds
func WithDistanceBounds(min, max float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.minDistance = min
		r.maxDistance = max
	}
}

// WithZoom sets the zoom tuning.
//
// Parameters:
//   - speed: base zoom speed multiplier for wheel input
//   - wheelFactor: fraction of the radius moved per wheel event, scaled by speed
//   - keyFactor: fraction of the radius moved per +/- key press
//   - damping: per-frame interpolation factor of the smoothed radius, in (0, 1]
//
// Returns:
//   - RigBuilderOption: functional option to set zoom tuning
func WithZoom(speed, wheelFactor, keyFactor, damping float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.zoomSpeed = speed
		r.wheelFactor = wheelFactor
		r.keyZoomFactor = keyFactor
		if damping > 0 && damping <= 1 {
			r.zoomDamping = damping
		}
	}
}

// WithOrbitSensitivity sets radians of rotation per pixel of pointer motion.
//
// Parameters:
//   - k: radians per pixel
//
// Returns:
//   - RigBuilderOption: functional option to set orbit sensitivity
func WithOrbitSensitivity(k float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.orbitSensitivity = k
	}
}

// WithPolarEpsilon sets how close the polar angle may approach either pole.
//
// Parameters:
//   - eps: minimum angular distance from 0 and π
//
// Returns:
//   - RigBuilderOption: functional option to set the epsilon
func WithPolarEpsilon(eps float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.polarEpsilon = eps
	}
}

// WithPanFactor sets world units panned per pixel per unit of radius.
//
// Parameters:
//   - factor: pan scale
//
// Returns:
//   - RigBuilderOption: functional option to set the pan factor
func WithPanFactor(factor float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.panFactor = factor
	}
}

// WithCursorFollow configures the look-toward-cursor bias.
//
// Parameters:
//   - enabled: whether the bias is applied
//   - speed: bias strength relative to radius
//   - scale: additional scale on the bias
//   - damping: per-frame interpolation factor toward the bias goal
//
// Returns:
//   - RigBuilderOption: functional option to set cursor follow
func WithCursorFollow(enabled bool, speed, scale, damping float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.followCursor = enabled
		r.followSpeed = speed
		r.followScale = scale
		r.followDamping = damping
	}
}
