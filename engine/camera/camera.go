package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	pose Pose

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera holds perspective intrinsics and derives view/projection matrices from
// a rig Pose each frame via Update. It also turns pixel coordinates into world
// rays for picking and dragging.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Pose returns the pose applied by the last Update.
	//
	// Returns:
	//   - Pose: the applied pose
	Pose() Pose

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Frustum returns the view frustum planes of the current view-projection matrix.
	//
	// Returns:
	//   - common.Frustum: normalized frustum planes
	Frustum() common.Frustum

	// Update applies a pose and recomputes matrices. Call once per frame with the
	// pose returned by Rig.Tick.
	//
	// Parameters:
	//   - pose: the camera pose for this frame
	Update(pose Pose)

	// ScreenToNDC converts pixel coordinates into normalized device coordinates.
	//
	// Parameters:
	//   - x, y: pointer position in pixels, origin top-left
	//   - width, height: viewport size in pixels
	//
	// Returns:
	//   - nx, ny: coordinates in [-1, 1] with +Y up
	ScreenToNDC(x, y float32, width, height int) (nx, ny float32)

	// ScreenRay builds a world-space ray from the camera through a pixel.
	//
	// Parameters:
	//   - x, y: pointer position in pixels, origin top-left
	//   - width, height: viewport size in pixels
	//
	// Returns:
	//   - common.Ray: normalized world ray starting at the camera position
	ScreenRay(x, y float32, width, height int) common.Ray

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings (50° vertical
// field of view) looking at the origin from +Z until the first Update.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    50.0 * (math.Pi / 180.0),
		aspect: 1.0,
		near:   0.1,
		far:    1000.0,
		pose: Pose{
			Eye:      mgl32.Vec3{0, 0, 15},
			Position: mgl32.Vec3{0, 0, 15},
		},
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Pose() Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.viewProjectionMatrix[:])
}

func (c *cameraImpl) Update(pose Pose) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = pose
	c.updateMatrices()
}

func (c *cameraImpl) ScreenToNDC(x, y float32, width, height int) (nx, ny float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx = x/float32(width)*2 - 1
	ny = -(y/float32(height))*2 + 1
	return
}

func (c *cameraImpl) ScreenRay(x, y float32, width, height int) common.Ray {
	nx, ny := c.ScreenToNDC(x, y, width, height)

	c.mu.Lock()
	defer c.mu.Unlock()

	forward := c.pose.Target.Sub(c.pose.Position)
	if forward.Len() < 1e-8 {
		forward = mgl32.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()

	right := forward.Cross(mgl32.Vec3(c.up))
	if right.Len() < 1e-8 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	camUp := right.Cross(forward)

	tanHalf := math32.Tan(c.fov / 2)
	dir := forward.
		Add(right.Mul(nx * tanHalf * c.aspect)).
		Add(camUp.Mul(ny * tanHalf))

	return common.NewRay(c.pose.Position, dir)
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 || math32.IsNaN(aspect) || math32.IsInf(aspect, 0) {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices from the current pose.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.viewMatrix[:], c.pose.Position, c.pose.Target, c.up)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
