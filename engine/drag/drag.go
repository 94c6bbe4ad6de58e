// Package drag moves a single placed object across the habitat floor in response
// to pointer rays, under exclusive gesture ownership.
package drag

import (
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/Carmen-Shannon/oxy-habitat/engine/game_object"
	"github.com/Carmen-Shannon/oxy-habitat/engine/gesture"
	"github.com/Carmen-Shannon/oxy-habitat/engine/habitat"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDoubleClickInterval is the longest gap between two pointer-downs that
// still counts as a double-click.
const DefaultDoubleClickInterval = 300 * time.Millisecond

// Result reports what a pointer-down did.
type Result int

const (
	// ResultIgnored means another gesture owns the pointer.
	ResultIgnored Result = iota
	// ResultDragStarted means the controller now owns the gesture.
	ResultDragStarted
	// ResultDoubleClick means the down completed a double-click; no drag was started.
	ResultDoubleClick
)

func (r Result) String() string {
	switch r {
	case ResultIgnored:
		return "ignored"
	case ResultDragStarted:
		return "drag_started"
	case ResultDoubleClick:
		return "double_click"
	default:
		return "unknown"
	}
}

// Controller defines the interface for dragging one placed object on the horizontal
// plane through its elevation, confined to the habitat bounds.
type Controller interface {
	// Object returns the object this controller moves.
	//
	// Returns:
	//   - game_object.PlacedObject: the controlled object
	Object() game_object.PlacedObject

	// PointerDown claims drag ownership for the object, or reports a double-click when
	// it follows the previous down within the double-click interval. A double-click
	// never enters the drag state.
	//
	// Parameters:
	//   - at: event time
	//   - ray: world-space pointer ray at the time of the down
	//
	// Returns:
	//   - Result: what the down did
	PointerDown(at time.Time, ray common.Ray) Result

	// PointerMove repositions the object while it owns the gesture. Rays that miss the
	// drag plane leave the position unchanged.
	//
	// Parameters:
	//   - ray: world-space pointer ray
	//
	// Returns:
	//   - bool: true if the object's position changed
	PointerMove(ray common.Ray) bool

	// PointerUp releases ownership if this controller holds it.
	PointerUp()

	// Dragging reports whether this controller currently owns the gesture.
	//
	// Returns:
	//   - bool: true while dragging
	Dragging() bool

	// Bounds returns the habitat bounds the object is confined to.
	//
	// Returns:
	//   - habitat.Bounds: the current bounds
	Bounds() habitat.Bounds

	// SetBounds replaces the habitat bounds. Call Confine to pull the object back
	// inside; every drag start does so as well.
	//
	// Parameters:
	//   - b: the new bounds
	SetBounds(b habitat.Bounds)

	// Confine clamps the object's position into the current bounds.
	//
	// Returns:
	//   - bool: true if the object's position changed
	Confine() bool
}

type controllerImpl struct {
	obj     game_object.PlacedObject
	arbiter gesture.Arbiter
	bounds  habitat.Bounds
	logger  *slog.Logger

	doubleClickInterval time.Duration
	lastDown            time.Time

	// grab anchor: object position and plane hit at the start of the drag
	anchored  bool
	anchorPos mgl32.Vec3
	anchorHit mgl32.Vec3

	onDoubleClick    func(id uint64)
	onPositionChange func(id uint64, pos mgl32.Vec3)
}

var _ Controller = &controllerImpl{}

// NewController creates a drag controller for obj that arbitrates through arbiter.
//
// Parameters:
//   - obj: the object to move
//   - arbiter: the gesture arbiter shared with the camera rig and other controllers
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(obj game_object.PlacedObject, arbiter gesture.Arbiter, options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		obj:                 obj,
		arbiter:             arbiter,
		logger:              slog.Default(),
		doubleClickInterval: DefaultDoubleClickInterval,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controllerImpl) Object() game_object.PlacedObject {
	return c.obj
}

func (c *controllerImpl) PointerDown(at time.Time, ray common.Ray) Result {
	if !c.arbiter.Idle() {
		return ResultIgnored
	}

	if gap := at.Sub(c.lastDown); !c.lastDown.IsZero() && gap >= 0 && gap <= c.doubleClickInterval {
		c.lastDown = time.Time{}
		c.logger.Info("object double-click", "id", c.obj.ID(), "kind", c.obj.Kind())
		if c.onDoubleClick != nil {
			c.onDoubleClick(c.obj.ID())
		}
		return ResultDoubleClick
	}

	if !c.arbiter.BeginDrag(c.obj.ID()) {
		return ResultIgnored
	}
	c.lastDown = at
	c.anchored = false
	c.Confine()
	c.anchor(ray)
	return ResultDragStarted
}

func (c *controllerImpl) PointerMove(ray common.Ray) bool {
	if !c.arbiter.OwnedBy(c.obj.ID()) {
		return false
	}
	if !c.anchored {
		// the down ray missed the plane; the first hit becomes the anchor
		c.anchor(ray)
		return false
	}

	hit, ok := c.plane().IntersectRay(ray)
	if !ok {
		return false
	}

	w, d := c.obj.Footprint()
	x, z := c.bounds.Clamp(
		c.anchorPos[0]+(hit[0]-c.anchorHit[0]),
		c.anchorPos[2]+(hit[2]-c.anchorHit[2]),
		w, d,
	)

	return c.commit(x, z)
}

func (c *controllerImpl) PointerUp() {
	c.anchored = false
	if c.arbiter.OwnedBy(c.obj.ID()) {
		c.arbiter.Release()
	}
}

func (c *controllerImpl) Dragging() bool {
	return c.arbiter.OwnedBy(c.obj.ID())
}

func (c *controllerImpl) Bounds() habitat.Bounds {
	return c.bounds
}

func (c *controllerImpl) SetBounds(b habitat.Bounds) {
	c.bounds = b
}

func (c *controllerImpl) Confine() bool {
	pos := c.obj.Position()
	w, d := c.obj.Footprint()
	x, z := c.bounds.Clamp(pos[0], pos[2], w, d)
	return c.commit(x, z)
}

// commit moves the object to (x, z) at its current elevation and reports whether it moved.
func (c *controllerImpl) commit(x, z float32) bool {
	pos := c.obj.Position()
	if x == pos[0] && z == pos[2] {
		return false
	}
	c.obj.SetPosition(x, pos[1], z)
	if c.onPositionChange != nil {
		c.onPositionChange(c.obj.ID(), c.obj.Position())
	}
	return true
}

func (c *controllerImpl) plane() common.Plane {
	return common.HorizontalPlane(c.obj.Elevation())
}

func (c *controllerImpl) anchor(ray common.Ray) {
	hit, ok := c.plane().IntersectRay(ray)
	if !ok {
		return
	}
	c.anchored = true
	c.anchorPos = c.obj.Position()
	c.anchorHit = hit
}
