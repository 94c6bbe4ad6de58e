package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// parallelEpsilon is the smallest |normal·direction| treated as a real intersection.
const parallelEpsilon = 1e-6

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// HorizontalPlane returns the plane y = height with an upward normal.
//
// Parameters:
//   - height: world-space Y of the plane
//
// Returns:
//   - Plane: the horizontal plane
func HorizontalPlane(height float32) Plane {
	return Plane{Normal: mgl32.Vec3{0, 1, 0}, Distance: -height}
}

// SignedDistance returns the signed distance from p to the plane.
// Only meaningful for planes with a unit-length normal.
func (pl Plane) SignedDistance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.Distance
}

// IntersectRay intersects a ray with the plane. Rays parallel to the plane and
// planes lying behind the ray origin report no intersection.
//
// Parameters:
//   - r: the ray to intersect
//
// Returns:
//   - mgl32.Vec3: the intersection point, zero when there is none
//   - bool: true if the ray hits the plane in front of its origin
func (pl Plane) IntersectRay(r Ray) (mgl32.Vec3, bool) {
	denom := pl.Normal.Dot(r.Direction)
	if math32.Abs(denom) < parallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := -(pl.Normal.Dot(r.Origin) + pl.Distance) / denom
	if t < 0 || math32.IsNaN(t) || math32.IsInf(t, 0) {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix.
// Uses the Gribb/Hartmann method for plane extraction.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	var f Frustum

	// Column-major: M[row][col] = viewProj[col*4 + row].
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	set := func(idx int, sign float32, r [4]float32) {
		f.Planes[idx].Normal = mgl32.Vec3{r3[0] + sign*r[0], r3[1] + sign*r[1], r3[2] + sign*r[2]}
		f.Planes[idx].Distance = r3[3] + sign*r[3]
	}

	set(FrustumLeft, 1, r0)
	set(FrustumRight, -1, r0)
	set(FrustumBottom, 1, r1)
	set(FrustumTop, -1, r1)
	// Clip depth is [0, 1], so the near plane is row2 alone.
	f.Planes[FrustumNear].Normal = mgl32.Vec3{r2[0], r2[1], r2[2]}
	f.Planes[FrustumNear].Distance = r2[3]
	set(FrustumFar, -1, r2)

	for i := range f.Planes {
		f.normalizePlane(i)
	}

	return f
}

// ContainsSphere reports whether a sphere is at least partially inside the frustum.
//
// Parameters:
//   - center: world-space sphere center
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere lies fully outside one of the planes
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := p.Normal.Len()
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
}
