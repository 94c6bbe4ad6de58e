package camera

import (
	"github.com/Carmen-Shannon/oxy-habitat/engine/gesture"
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is the per-frame camera state produced by Rig.Tick. It is a plain value;
// the renderer reads it and never writes back.
type Pose struct {
	// Radius is the desired orbit distance after zoom input, clamped to the rig bounds.
	Radius float32
	// SmoothedRadius is the eased distance actually used to place the eye.
	SmoothedRadius float32
	// Polar is the angle from the +Y axis in radians, kept inside (0, π).
	Polar float32
	// Azimuth is the angle around the Y axis in radians.
	Azimuth float32
	// PanOffset is the accumulated explicit pan translation.
	PanOffset mgl32.Vec3
	// FollowOffset is the eased cursor-follow bias.
	FollowOffset mgl32.Vec3
	// Target is the look-at point, PanOffset + FollowOffset.
	Target mgl32.Vec3
	// Eye is the spherical offset of the camera from its target.
	Eye mgl32.Vec3
	// Position is the world-space camera position, Eye + Target.
	Position mgl32.Vec3
}

// Rig defines a gesture-driven orbit camera on spherical coordinates
// (radius, polar angle, azimuth) around a pannable target.
// The rig reads and claims gesture ownership through a shared gesture.Arbiter.
// It is not safe for concurrent use; drive it from the input/frame thread.
type Rig interface {
	// Wheel adjusts the desired radius by a step proportional to the current
	// radius. Positive deltaY zooms out, negative zooms in.
	//
	// Parameters:
	//   - deltaY: wheel delta, only its sign is used
	Wheel(deltaY float32)

	// KeyZoom adjusts the desired radius by radius × key zoom factor.
	//
	// Parameters:
	//   - direction: +1 zooms in, -1 zooms out
	KeyZoom(direction int)

	// PointerDown starts an orbit (left button) or pan (middle button) if no
	// other component owns the gesture. The right button is consumed without effect.
	//
	// Parameters:
	//   - button: mouse button index (see common.MouseButton*)
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - bool: true if the rig took ownership of the gesture
	PointerDown(button int, x, y float32) bool

	// PointerMove applies pixel deltas to the active orbit or pan gesture.
	// Does nothing when the rig does not own the gesture.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerMove(x, y float32)

	// PointerUp ends an orbit or pan gesture.
	PointerUp()

	// PointerLeave ends an orbit or pan gesture when the pointer leaves the viewport.
	PointerLeave()

	// SetPointerNDC records the pointer position in normalized device coordinates
	// for the cursor-follow bias.
	//
	// Parameters:
	//   - x, y: pointer position in [-1, 1], +Y up
	SetPointerNDC(x, y float32)

	// Tick advances easing by one frame and returns the resulting pose.
	//
	// Returns:
	//   - Pose: the camera pose for this frame
	Tick() Pose

	// Pose returns the pose computed by the last Tick.
	//
	// Returns:
	//   - Pose: the last computed pose
	Pose() Pose

	// Radius returns the desired orbit radius.
	//
	// Returns:
	//   - float32: desired distance from target
	Radius() float32

	// SetRadius sets the desired orbit radius, clamped to the distance bounds.
	//
	// Parameters:
	//   - radius: new desired distance from target
	SetRadius(radius float32)

	// MinDistance returns the minimum allowed orbit radius.
	//
	// Returns:
	//   - float32: minimum zoom distance
	MinDistance() float32

	// MaxDistance returns the maximum allowed orbit radius.
	//
	// Returns:
	//   - float32: maximum zoom distance
	MaxDistance() float32

	// Polar returns the polar angle in radians.
	//
	// Returns:
	//   - float32: angle from +Y
	Polar() float32

	// Azimuth returns the azimuth in radians.
	//
	// Returns:
	//   - float32: angle around +Y
	Azimuth() float32

	// SetAngles sets polar and azimuth directly. Polar is clamped away from the poles.
	//
	// Parameters:
	//   - polar: angle from +Y in radians
	//   - azimuth: angle around +Y in radians
	SetAngles(polar, azimuth float32)

	// PolarEpsilon returns the minimum distance kept between the polar angle and the poles.
	//
	// Returns:
	//   - float32: epsilon in radians
	PolarEpsilon() float32

	// PanOffset returns the accumulated pan translation.
	//
	// Returns:
	//   - mgl32.Vec3: pan offset in world units
	PanOffset() mgl32.Vec3

	// Arbiter returns the gesture arbiter shared with drag controllers.
	//
	// Returns:
	//   - gesture.Arbiter: the arbiter
	Arbiter() gesture.Arbiter

	// Reset restores the initial radius, angles, and clears pan and follow offsets.
	Reset()
}
