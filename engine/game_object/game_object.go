package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/go-gl/mathgl/mgl32"
)

type placedObject struct {
	id       uint64
	kind     string
	enabled  atomic.Bool
	position mgl32.Vec3
	size     mgl32.Vec3 // width, height, depth
}

// PlacedObject defines the interface for a habitat module instance placed in the layout.
// The position is the center of the module's box; Y is its resting elevation and is
// never changed by dragging.
type PlacedObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Kind returns the module type, e.g. "life_support".
	//
	// Returns:
	//   - string: the module type
	Kind() string

	// Enabled returns whether this object is shown and pickable.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Position returns the center of the object.
	//
	// Returns:
	//   - mgl32.Vec3: the center position
	Position() mgl32.Vec3

	// Elevation returns the height of the horizontal plane the object is dragged on.
	//
	// Returns:
	//   - float32: the object's Y coordinate
	Elevation() float32

	// Footprint returns the horizontal extent of the object.
	//
	// Returns:
	//   - width: extent along X
	//   - depth: extent along Z
	Footprint() (width, depth float32)

	// Height returns the vertical extent of the object.
	//
	// Returns:
	//   - float32: extent along Y
	Height() float32

	// Size returns width, height and depth as a vector.
	//
	// Returns:
	//   - mgl32.Vec3: the object's extents
	Size() mgl32.Vec3

	// Bounds returns the object's axis-aligned bounding box, used for picking.
	//
	// Returns:
	//   - common.AABB: the bounding box
	Bounds() common.AABB

	// Volume returns the object's box volume in m³.
	//
	// Returns:
	//   - float64: width * height * depth
	Volume() float64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is shown and pickable.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition moves the object's center.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetSize changes the object's extents. Non-positive components are ignored.
	//
	// Parameters:
	//   - width, height, depth: new extents
	SetSize(width, height, depth float32)
}

var _ PlacedObject = &placedObject{}

// NewPlacedObject creates a new PlacedObject configured with the given options.
// Objects default to enabled with a 1 m cube footprint at the origin.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - PlacedObject: the newly created object
func NewPlacedObject(options ...PlacedObjectBuilderOption) PlacedObject {
	obj := &placedObject{
		size: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (p *placedObject) ID() uint64 {
	return p.id
}

func (p *placedObject) Kind() string {
	return p.kind
}

func (p *placedObject) Enabled() bool {
	return p.enabled.Load()
}

func (p *placedObject) Position() mgl32.Vec3 {
	return p.position
}

func (p *placedObject) Elevation() float32 {
	return p.position[1]
}

func (p *placedObject) Footprint() (width, depth float32) {
	return p.size[0], p.size[2]
}

func (p *placedObject) Height() float32 {
	return p.size[1]
}

func (p *placedObject) Size() mgl32.Vec3 {
	return p.size
}

func (p *placedObject) Bounds() common.AABB {
	return common.NewAABB(p.position, p.size)
}

func (p *placedObject) Volume() float64 {
	return float64(p.size[0]) * float64(p.size[1]) * float64(p.size[2])
}

func (p *placedObject) SetID(id uint64) {
	p.id = id
}

func (p *placedObject) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

func (p *placedObject) SetPosition(x, y, z float32) {
	p.position = mgl32.Vec3{x, y, z}
}

func (p *placedObject) SetSize(width, height, depth float32) {
	if width > 0 {
		p.size[0] = width
	}
	if height > 0 {
		p.size[1] = height
	}
	if depth > 0 {
		p.size[2] = depth
	}
}
