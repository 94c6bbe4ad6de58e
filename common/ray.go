package common

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line starting at Origin and extending along Direction.
// Direction is expected to be normalized but is not required to be.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay builds a ray and normalizes its direction. A zero direction is kept as-is.
//
// Parameters:
//   - origin: ray start point
//   - direction: ray direction
//
// Returns:
//   - Ray: the constructed ray
func NewRay(origin, direction mgl32.Vec3) Ray {
	if l := direction.Len(); l > 0 {
		direction = direction.Mul(1 / l)
	}
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB builds a box centered at center with the given full extents.
//
// Parameters:
//   - center: box center
//   - size: full width, height, depth
//
// Returns:
//   - AABB: the box
func NewAABB(center, size mgl32.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Radius returns the radius of the sphere enclosing the box.
func (b AABB) Radius() float32 {
	return b.Max.Sub(b.Min).Len() * 0.5
}

// IntersectAABB tests the ray against a box using the slab method.
//
// Parameters:
//   - b: the box to test
//
// Returns:
//   - float32: distance along the ray to the entry point (0 when the origin is inside)
//   - bool: true if the ray hits the box
func (r Ray) IntersectAABB(b AABB) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if math32.Abs(d) < parallelEpsilon {
			if o < b.Min[axis] || o > b.Max[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[axis] - o) * inv
		t2 := (b.Max[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math32.Max(tMin, t1)
		tMax = math32.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
