package game_object

import "github.com/go-gl/mathgl/mgl32"

// PlacedObjectBuilderOption is a functional option for configuring a PlacedObject during construction.
type PlacedObjectBuilderOption func(*placedObject)

// WithID sets the ID of the PlacedObject.
//
// Parameters:
//   - id: unique identifier for the object
//
// Returns:
//   - PlacedObjectBuilderOption: functional option to set the ID
func WithID(id uint64) PlacedObjectBuilderOption {
	return func(obj *placedObject) {
		obj.id = id
	}
}

// WithKind sets the module type of the PlacedObject.
//
// Parameters:
//   - kind: module type such as "sleeping" or "airlock"
//
// Returns:
//   - PlacedObjectBuilderOption: functional option to set the kind
func WithKind(kind string) PlacedObjectBuilderOption {
	return func(obj *placedObject) {
		obj.kind = kind
	}
}

// WithEnabled sets whether the PlacedObject is shown and pickable.
//
// Parameters:
//   - enabled: true to show the object, false to hide it
//
// Returns:
//   - PlacedObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) PlacedObjectBuilderOption {
	return func(obj *placedObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial center of the PlacedObject.
//
// Parameters:
//   - x: the x position
//   - y: the elevation
//   - z: the z position
//
// Returns:
//   - PlacedObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float32) PlacedObjectBuilderOption {
	return func(obj *placedObject) {
		obj.position = mgl32.Vec3{x, y, z}
	}
}

// WithSize sets the extents of the PlacedObject. Non-positive components keep the default.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//
// Returns:
//   - PlacedObjectBuilderOption: functional option to set the size
func WithSize(width, height, depth float32) PlacedObjectBuilderOption {
	return func(obj *placedObject) {
		obj.SetSize(width, height, depth)
	}
}
