package camera

import (
	"log/slog"
	"math"

	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/Carmen-Shannon/oxy-habitat/engine/gesture"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// radiusSnap is the distance under which the smoothed radius snaps onto the desired radius.
const radiusSnap = 1e-4

const minZoomBase = 1e-3

// rigImpl is the single implementation of Rig.
type rigImpl struct {
	arbiter gesture.Arbiter
	logger  *slog.Logger

	// Spherical coordinates around the target
	desiredRadius  float32
	smoothedRadius float32
	polar          float32
	azimuth        float32

	panOffset    mgl32.Vec3
	followOffset mgl32.Vec3
	pointerNDC   [2]float32

	// Zoom
	minDistance   float32
	maxDistance   float32
	zoomSpeed     float32
	wheelFactor   float32
	keyZoomFactor float32
	zoomDamping   float32

	// Orbit and pan
	orbitSensitivity float32
	polarEpsilon     float32
	panFactor        float32

	// Cursor follow
	followCursor  bool
	followSpeed   float32
	followScale   float32
	followDamping float32

	initialRadius  float32
	initialPolar   float32
	initialAzimuth float32

	pose Pose
}

// Compile-time interface compliance check
var _ Rig = &rigImpl{}

// NewRig creates a camera rig with the habitat viewer defaults. When no arbiter is
// supplied through WithArbiter the rig creates its own.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(options ...RigBuilderOption) Rig {
	r := &rigImpl{
		logger: slog.Default(),

		desiredRadius: 15,
		polar:         math.Pi / 3,
		azimuth:       math.Pi / 4,

		minDistance:   0.5,
		maxDistance:   500,
		zoomSpeed:     2.0,
		wheelFactor:   0.05,
		keyZoomFactor: 0.1,
		zoomDamping:   0.1,

		orbitSensitivity: 0.005,
		polarEpsilon:     0.1,
		panFactor:        0.002,

		followCursor:  true,
		followSpeed:   0.05,
		followScale:   0.3,
		followDamping: 0.05,
	}

	for _, option := range options {
		option(r)
	}

	if r.arbiter == nil {
		r.arbiter = gesture.NewArbiter(gesture.WithLogger(r.logger))
	}
	if r.minDistance > r.maxDistance {
		r.minDistance, r.maxDistance = r.maxDistance, r.minDistance
	}
	r.polarEpsilon = common.Clamp(r.polarEpsilon, 1e-4, math.Pi/2-1e-4)
	r.desiredRadius = r.clampRadius(r.desiredRadius)
	r.polar = r.clampPolar(r.polar)
	r.smoothedRadius = r.desiredRadius

	r.initialRadius = r.desiredRadius
	r.initialPolar = r.polar
	r.initialAzimuth = r.azimuth

	r.updatePose()
	return r
}

// --- internal helpers ---

func (r *rigImpl) clampRadius(radius float32) float32 {
	return common.Clamp(radius, r.minDistance, r.maxDistance)
}

func (r *rigImpl) clampPolar(polar float32) float32 {
	return common.Clamp(polar, r.polarEpsilon, math.Pi-r.polarEpsilon)
}

// zoomBase is the radius that zoom steps scale with. It is floored at the minimum
// distance, and at minZoomBase when that is zero, so a rig at radius 0 can still zoom out.
func (r *rigImpl) zoomBase() float32 {
	return math32.Max(r.desiredRadius, math32.Max(r.minDistance, minZoomBase))
}

// eyeOffset converts (radius, polar, azimuth) into a cartesian offset from the target.
func (r *rigImpl) eyeOffset(radius float32) mgl32.Vec3 {
	sinP, cosP := math32.Sin(r.polar), math32.Cos(r.polar)
	sinA, cosA := math32.Sin(r.azimuth), math32.Cos(r.azimuth)
	return mgl32.Vec3{
		radius * sinP * cosA,
		radius * cosP,
		radius * sinP * sinA,
	}
}

// localAxes computes the camera's right and up axes consistent with the LookAt matrix.
// The backward axis is the unit eye direction, so the result is independent of radius.
func (r *rigImpl) localAxes() (right, up mgl32.Vec3) {
	b := r.eyeOffset(1)

	// right = normalize(cross(worldUp, backward)) where worldUp = (0, 1, 0)
	right = mgl32.Vec3{b[2], 0, -b[0]}
	rLen := right.Len()
	if rLen < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Mul(1 / rLen)

	// up = cross(backward, right), matching LookAt's y-axis
	up = b.Cross(right)
	return right, up
}

func (r *rigImpl) updatePose() Pose {
	eye := r.eyeOffset(r.smoothedRadius)
	target := r.panOffset.Add(r.followOffset)
	r.pose = Pose{
		Radius:         r.desiredRadius,
		SmoothedRadius: r.smoothedRadius,
		Polar:          r.polar,
		Azimuth:        r.azimuth,
		PanOffset:      r.panOffset,
		FollowOffset:   r.followOffset,
		Target:         target,
		Eye:            eye,
		Position:       eye.Add(target),
	}
	return r.pose
}

// --- Rig implementation ---

func (r *rigImpl) Wheel(deltaY float32) {
	if deltaY == 0 || math32.IsNaN(deltaY) {
		return
	}
	step := r.zoomSpeed * r.wheelFactor * r.zoomBase()
	if deltaY < 0 {
		step = -step
	}
	r.desiredRadius = r.clampRadius(r.desiredRadius + step)
}

func (r *rigImpl) KeyZoom(direction int) {
	if direction == 0 {
		return
	}
	step := r.keyZoomFactor * r.zoomBase()
	if direction > 0 {
		step = -step
	}
	r.desiredRadius = r.clampRadius(r.desiredRadius + step)
}

func (r *rigImpl) PointerDown(button int, x, y float32) bool {
	switch button {
	case common.MouseButtonLeft:
		return r.arbiter.BeginOrbit(x, y)
	case common.MouseButtonMiddle:
		return r.arbiter.BeginPan(x, y)
	default:
		// Right button: navigation-only surface, no context menu and no gesture.
		return false
	}
}

func (r *rigImpl) PointerMove(x, y float32) {
	switch r.arbiter.Mode() {
	case gesture.ModeOrbiting:
		dx, dy := r.arbiter.Track(x, y)
		r.azimuth -= dx * r.orbitSensitivity
		r.polar = r.clampPolar(r.polar - dy*r.orbitSensitivity)
	case gesture.ModePanning:
		dx, dy := r.arbiter.Track(x, y)
		right, up := r.localAxes()
		scale := r.panFactor * math32.Max(r.smoothedRadius, 1)
		r.panOffset = r.panOffset.Add(right.Mul(-dx * scale)).Add(up.Mul(dy * scale))
	}
}

func (r *rigImpl) PointerUp() {
	if r.arbiter.State().Camera() {
		r.arbiter.Release()
	}
}

func (r *rigImpl) PointerLeave() {
	r.PointerUp()
}

func (r *rigImpl) SetPointerNDC(x, y float32) {
	r.pointerNDC = [2]float32{
		common.Clamp(x, -1, 1),
		common.Clamp(y, -1, 1),
	}
}

func (r *rigImpl) Tick() Pose {
	r.smoothedRadius = common.Lerp(r.smoothedRadius, r.desiredRadius, r.zoomDamping)
	if math32.Abs(r.smoothedRadius-r.desiredRadius) < radiusSnap {
		r.smoothedRadius = r.desiredRadius
	}

	// Cursor follow shares the target accumulator with panning but only runs
	// while nobody owns the gesture.
	if r.followCursor && r.arbiter.Idle() {
		k := r.followSpeed * r.smoothedRadius * r.followScale
		goalX := r.pointerNDC[0] * k
		goalY := r.pointerNDC[1] * k
		r.followOffset[0] = common.Lerp(r.followOffset[0], goalX, r.followDamping)
		r.followOffset[1] = common.Lerp(r.followOffset[1], goalY, r.followDamping)
	}

	return r.updatePose()
}

func (r *rigImpl) Pose() Pose {
	return r.pose
}

func (r *rigImpl) Radius() float32 {
	return r.desiredRadius
}

func (r *rigImpl) SetRadius(radius float32) {
	r.desiredRadius = r.clampRadius(radius)
}

func (r *rigImpl) MinDistance() float32 {
	return r.minDistance
}

func (r *rigImpl) MaxDistance() float32 {
	return r.maxDistance
}

func (r *rigImpl) Polar() float32 {
	return r.polar
}

func (r *rigImpl) Azimuth() float32 {
	return r.azimuth
}

func (r *rigImpl) SetAngles(polar, azimuth float32) {
	r.polar = r.clampPolar(polar)
	r.azimuth = azimuth
}

func (r *rigImpl) PolarEpsilon() float32 {
	return r.polarEpsilon
}

func (r *rigImpl) PanOffset() mgl32.Vec3 {
	return r.panOffset
}

func (r *rigImpl) Arbiter() gesture.Arbiter {
	return r.arbiter
}

func (r *rigImpl) Reset() {
	r.desiredRadius = r.initialRadius
	r.smoothedRadius = r.initialRadius
	r.polar = r.initialPolar
	r.azimuth = r.initialAzimuth
	r.panOffset = mgl32.Vec3{}
	r.followOffset = mgl32.Vec3{}
	r.updatePose()
	r.logger.Debug("camera reset")
}
