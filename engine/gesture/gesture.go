package gesture

import (
	"log/slog"
)

// Mode identifies which component owns the current pointer gesture.
type Mode int

const (
	// ModeIdle means no gesture is in progress.
	ModeIdle Mode = iota
	// ModeOrbiting means the camera rig is rotating around its target.
	ModeOrbiting
	// ModePanning means the camera rig is translating its target.
	ModePanning
	// ModeDraggingObject means a placed object owns the gesture.
	ModeDraggingObject
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeOrbiting:
		return "orbiting"
	case ModePanning:
		return "panning"
	case ModeDraggingObject:
		return "dragging_object"
	default:
		return "unknown"
	}
}

// State is a snapshot of the gesture ownership. ObjectID is only meaningful in
// ModeDraggingObject; LastX/LastY are the last tracked pointer coordinates.
type State struct {
	Mode     Mode
	ObjectID uint64
	LastX    float32
	LastY    float32
}

// Camera reports whether the camera rig owns the gesture.
func (s State) Camera() bool {
	return s.Mode == ModeOrbiting || s.Mode == ModePanning
}

// Arbiter is the single owner of gesture state shared by the camera rig and every
// drag controller. Transitions out of idle only succeed from idle, which is what
// keeps camera gestures and object drags mutually exclusive.
type Arbiter interface {
	// State returns a copy of the current gesture state.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Mode returns the current gesture mode.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// Idle reports whether no gesture is in progress.
	//
	// Returns:
	//   - bool: true when the mode is ModeIdle
	Idle() bool

	// BeginOrbit claims the gesture for a camera orbit starting at (x, y).
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - bool: true if ownership was granted
	BeginOrbit(x, y float32) bool

	// BeginPan claims the gesture for a camera pan starting at (x, y).
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - bool: true if ownership was granted
	BeginPan(x, y float32) bool

	// BeginDrag claims the gesture for the object with the given id.
	//
	// Parameters:
	//   - id: the placed object's identifier
	//
	// Returns:
	//   - bool: true if ownership was granted
	BeginDrag(id uint64) bool

	// Track records a new pointer position and returns the delta from the previous one.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	//
	// Returns:
	//   - dx, dy: movement since the last tracked position
	Track(x, y float32) (dx, dy float32)

	// OwnedBy reports whether the object with the given id owns the gesture.
	//
	// Parameters:
	//   - id: the placed object's identifier
	//
	// Returns:
	//   - bool: true if that object is being dragged
	OwnedBy(id uint64) bool

	// Release returns the arbiter to idle. Safe to call at any time.
	Release()
}

type arbiterImpl struct {
	state        State
	logger       *slog.Logger
	onTransition func(from, to State)
}

var _ Arbiter = &arbiterImpl{}

// NewArbiter creates an idle Arbiter.
//
// Parameters:
//   - options: functional options to configure the arbiter
//
// Returns:
//   - Arbiter: the newly created arbiter
func NewArbiter(options ...ArbiterBuilderOption) Arbiter {
	a := &arbiterImpl{
		logger: slog.Default(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *arbiterImpl) State() State {
	return a.state
}

func (a *arbiterImpl) Mode() Mode {
	return a.state.Mode
}

func (a *arbiterImpl) Idle() bool {
	return a.state.Mode == ModeIdle
}

func (a *arbiterImpl) BeginOrbit(x, y float32) bool {
	return a.transition(State{Mode: ModeOrbiting, LastX: x, LastY: y})
}

func (a *arbiterImpl) BeginPan(x, y float32) bool {
	return a.transition(State{Mode: ModePanning, LastX: x, LastY: y})
}

func (a *arbiterImpl) BeginDrag(id uint64) bool {
	return a.transition(State{Mode: ModeDraggingObject, ObjectID: id})
}

func (a *arbiterImpl) Track(x, y float32) (dx, dy float32) {
	dx = x - a.state.LastX
	dy = y - a.state.LastY
	a.state.LastX = x
	a.state.LastY = y
	return
}

func (a *arbiterImpl) OwnedBy(id uint64) bool {
	return a.state.Mode == ModeDraggingObject && a.state.ObjectID == id
}

func (a *arbiterImpl) Release() {
	if a.state.Mode == ModeIdle {
		return
	}
	from := a.state
	a.state = State{}
	a.notify(from, a.state)
}

// transition moves from idle into next. Any other starting mode is rejected.
func (a *arbiterImpl) transition(next State) bool {
	if a.state.Mode != ModeIdle {
		a.logger.Debug("gesture rejected",
			slog.String("owner", a.state.Mode.String()),
			slog.String("requested", next.Mode.String()),
		)
		return false
	}
	from := a.state
	a.state = next
	a.notify(from, next)
	return true
}

func (a *arbiterImpl) notify(from, to State) {
	a.logger.Debug("gesture transition",
		slog.String("from", from.Mode.String()),
		slog.String("to", to.Mode.String()),
		slog.Uint64("object_id", to.ObjectID),
	)
	if a.onTransition != nil {
		a.onTransition(from, to)
	}
}
