package scene

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/Carmen-Shannon/oxy-habitat/engine/camera"
	"github.com/Carmen-Shannon/oxy-habitat/engine/drag"
	"github.com/Carmen-Shannon/oxy-habitat/engine/game_object"
	"github.com/Carmen-Shannon/oxy-habitat/engine/gesture"
	"github.com/Carmen-Shannon/oxy-habitat/engine/habitat"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene binds the camera rig and the per-object drag controllers to one habitat layout.
// It routes raw pointer, wheel and key input to whichever component owns the current
// gesture and produces a value snapshot of the viewport once per frame.
//
// A Scene is driven from a single thread: every input handler and Frame run to
// completion before the next event is processed. Frame fans instance preparation
// out to a worker pool but returns only after all workers are done.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Rig returns the camera rig.
	Rig() camera.Rig

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Arbiter returns the gesture arbiter shared by the rig and every drag controller.
	Arbiter() gesture.Arbiter

	// Habitat returns the current habitat configuration.
	Habitat() habitat.Config

	// SetHabitat validates and applies a new habitat configuration, updating the bounds of
	// every drag controller and clamping objects left outside the new footprint.
	//
	// Parameters:
	//   - cfg: the new habitat configuration
	//
	// Returns:
	//   - error: a wrapped habitat validation error, in which case nothing changes
	SetHabitat(cfg habitat.Config) error

	// Metrics returns volume metrics for the habitat and the placed objects.
	Metrics() habitat.Metrics

	// Viewport returns the viewport size in pixels.
	Viewport() (width, height int)

	// SetViewport updates the viewport size and the camera aspect ratio.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// Count returns the number of placed objects.
	Count() int

	// Add places an object and creates its drag controller. Objects without an ID are
	// assigned one. The new object becomes the selection.
	//
	// Parameters:
	//   - obj: the object to place
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.PlacedObject) uint64

	// Get returns the object with the given ID, or nil.
	Get(id uint64) game_object.PlacedObject

	// Objects returns all placed objects ordered by ID.
	Objects() []game_object.PlacedObject

	// Remove deletes an object. A drag in progress on it is released.
	//
	// Parameters:
	//   - id: the object's ID
	Remove(id uint64)

	// Clear removes every object.
	Clear()

	// Selected returns the selected object's ID.
	//
	// Returns:
	//   - uint64: the selected ID
	//   - bool: false when nothing is selected
	Selected() (uint64, bool)

	// Select selects an object. Unknown IDs clear the selection.
	//
	// Parameters:
	//   - id: the object's ID
	Select(id uint64)

	// ClearSelection deselects the current object.
	ClearSelection()

	// Hovered returns the ID of the object under the pointer, updated while no gesture is active.
	//
	// Returns:
	//   - uint64: the hovered ID
	//   - bool: false when the pointer is over no object
	Hovered() (uint64, bool)

	// PointerDown routes a button press. A left press on an object goes to that object's
	// drag controller and never starts an orbit; elsewhere it goes to the camera rig.
	//
	// Parameters:
	//   - button: the mouse button (common.MouseButton*)
	//   - x, y: pointer position in pixels
	PointerDown(button int, x, y float32)

	// PointerMove routes pointer motion to the owner of the current gesture.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerMove(x, y float32)

	// PointerUp ends the current gesture. The arbiter is always idle afterwards.
	PointerUp()

	// ButtonUp ends the current gesture only when button is the one that started it:
	// left for orbits and object drags, middle for pans. Other releases are ignored.
	//
	// Parameters:
	//   - button: the released mouse button (common.MouseButton*)
	ButtonUp(button int)

	// PointerLeave ends the current gesture when the pointer leaves the viewport.
	PointerLeave()

	// Wheel forwards a wheel event to the rig. Positive deltaY zooms out.
	Wheel(deltaY float32)

	// Key handles a key press: +/= zoom in, - zooms out, N requests the module library,
	// R resets the camera and Escape clears the selection.
	//
	// Parameters:
	//   - key: the key code (common.Key*)
	Key(key int)

	// Frame advances the camera by one tick and builds the per-object render state.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - Frame: a snapshot safe to hand to a renderer
	Frame(dt float32) Frame

	// OnDoubleClick registers a callback fired when an object is double-clicked.
	OnDoubleClick(fn func(id uint64))

	// OnLibraryRequest registers a callback fired when the module library is requested.
	OnLibraryRequest(fn func())

	// Close stops the scene's worker pool. Frame keeps working serially afterwards.
	Close()
}

type scene struct {
	name   string
	active bool
	logger *slog.Logger

	rig     camera.Rig
	cam     camera.Camera
	arbiter gesture.Arbiter
	habitat habitat.Config

	registry    map[uint64]game_object.PlacedObject
	controllers map[uint64]drag.Controller
	nextID      uint64
	pending     []game_object.PlacedObject

	selected    uint64
	hasSelected bool
	hovered     uint64
	hasHovered  bool

	width  int
	height int

	now                 func() time.Time
	doubleClickInterval time.Duration
	cullingDisabled     bool
	elapsed             float32
	bobAmplitude        float32
	bobFrequency        float32

	onDoubleClick    []func(id uint64)
	onLibraryRequest []func()
	onPositionChange func(id uint64, pos mgl32.Vec3)

	// instancePool builds per-object frame data in parallel; workers persist across frames.
	instancePool   worker.DynamicWorkerPool
	computeWorkers int
	closed         bool
}

var _ Scene = &scene{}

// NewScene creates a new Scene. A rig, camera and habitat are created with defaults
// unless supplied through options.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:           name,
		logger:         slog.Default(),
		habitat:        habitat.DefaultConfig(),
		registry:       make(map[uint64]game_object.PlacedObject),
		controllers:    make(map[uint64]drag.Controller),
		nextID:         1,
		width:          1280,
		height:         720,
		now:            time.Now,
		bobAmplitude:   0.1,
		bobFrequency:   3,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	if s.rig == nil {
		s.rig = camera.NewRig(camera.WithLogger(s.logger))
	}
	s.arbiter = s.rig.Arbiter()
	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	s.cam.SetAspect(float32(s.width) / float32(max(s.height, 1)))
	s.cam.Update(s.rig.Pose())

	// Queue size of 256 leaves headroom for one batch per worker.
	s.instancePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	for _, obj := range s.pending {
		s.add(obj)
	}
	s.pending = nil

	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Rig() camera.Rig {
	return s.rig
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Arbiter() gesture.Arbiter {
	return s.arbiter
}

func (s *scene) Habitat() habitat.Config {
	return s.habitat
}

func (s *scene) SetHabitat(cfg habitat.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("scene %q: set habitat: %w", s.name, err)
	}
	s.habitat = cfg
	bounds := cfg.Bounds()
	confined := 0
	for _, c := range s.controllers {
		c.SetBounds(bounds)
		if c.Confine() {
			confined++
		}
	}
	s.logger.Info("habitat updated",
		"scene", s.name,
		"shape", cfg.Shape,
		"half_width", bounds.HalfWidth,
		"half_depth", bounds.HalfDepth,
		"confined", confined,
	)
	return nil
}

func (s *scene) Metrics() habitat.Metrics {
	volumes := make([]float64, 0, len(s.registry))
	for _, obj := range s.registry {
		volumes = append(volumes, obj.Volume())
	}
	return habitat.ComputeMetrics(s.habitat, volumes...)
}

func (s *scene) Viewport() (width, height int) {
	return s.width, s.height
}

func (s *scene) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.cam.SetAspect(float32(width) / float32(height))
}

func (s *scene) Count() int {
	return len(s.registry)
}

func (s *scene) Add(obj game_object.PlacedObject) uint64 {
	id := s.add(obj)
	s.Select(id)
	return id
}

func (s *scene) add(obj game_object.PlacedObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	id := obj.ID()
	if _, exists := s.registry[id]; exists {
		s.Remove(id)
	}
	if id >= s.nextID {
		s.nextID = id + 1
	}

	s.registry[id] = obj
	s.controllers[id] = drag.NewController(obj, s.arbiter,
		drag.WithBounds(s.habitat.Bounds()),
		drag.WithDoubleClickInterval(s.doubleClickInterval),
		drag.WithLogger(s.logger),
		drag.WithOnDoubleClick(s.fireDoubleClick),
		drag.WithOnPositionChange(s.onPositionChange),
	)
	return id
}

func (s *scene) Get(id uint64) game_object.PlacedObject {
	return s.registry[id]
}

func (s *scene) Objects() []game_object.PlacedObject {
	ids := make([]uint64, 0, len(s.registry))
	for id := range s.registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	objs := make([]game_object.PlacedObject, len(ids))
	for i, id := range ids {
		objs[i] = s.registry[id]
	}
	return objs
}

func (s *scene) Remove(id uint64) {
	c, ok := s.controllers[id]
	if !ok {
		return
	}
	c.PointerUp()
	delete(s.controllers, id)
	delete(s.registry, id)
	if s.hasSelected && s.selected == id {
		s.ClearSelection()
	}
	if s.hasHovered && s.hovered == id {
		s.hasHovered = false
	}
}

func (s *scene) Clear() {
	for id := range s.registry {
		s.Remove(id)
	}
}

func (s *scene) Selected() (uint64, bool) {
	return s.selected, s.hasSelected
}

func (s *scene) Select(id uint64) {
	if _, ok := s.registry[id]; !ok {
		s.ClearSelection()
		return
	}
	s.selected, s.hasSelected = id, true
}

func (s *scene) ClearSelection() {
	s.selected, s.hasSelected = 0, false
}

func (s *scene) Hovered() (uint64, bool) {
	return s.hovered, s.hasHovered
}

func (s *scene) PointerDown(button int, x, y float32) {
	if button != common.MouseButtonLeft {
		s.rig.PointerDown(button, x, y)
		return
	}

	ray := s.cam.ScreenRay(x, y, s.width, s.height)
	id, hit := s.pick(ray)
	if !hit {
		s.rig.PointerDown(button, x, y)
		return
	}
	// the object consumes the press even when it cannot take the gesture
	if s.controllers[id].PointerDown(s.now(), ray) != drag.ResultIgnored {
		s.Select(id)
	}
}

func (s *scene) PointerMove(x, y float32) {
	nx, ny := s.cam.ScreenToNDC(x, y, s.width, s.height)
	s.rig.SetPointerNDC(nx, ny)

	state := s.arbiter.State()
	switch state.Mode {
	case gesture.ModeIdle:
		s.hovered, s.hasHovered = s.pick(s.cam.ScreenRay(x, y, s.width, s.height))
	case gesture.ModeDraggingObject:
		c, ok := s.controllers[state.ObjectID]
		if !ok {
			s.logger.Warn("releasing drag of unknown object", "id", state.ObjectID)
			s.arbiter.Release()
			return
		}
		c.PointerMove(s.cam.ScreenRay(x, y, s.width, s.height))
	default:
		s.rig.PointerMove(x, y)
	}
}

func (s *scene) PointerUp() {
	s.release(s.rig.PointerUp)
}

func (s *scene) ButtonUp(button int) {
	if startedBy(s.arbiter.Mode()) == button {
		s.PointerUp()
	}
}

// startedBy returns the button that begins a gesture in mode, or -1 when idle.
func startedBy(mode gesture.Mode) int {
	switch mode {
	case gesture.ModeOrbiting, gesture.ModeDraggingObject:
		return common.MouseButtonLeft
	case gesture.ModePanning:
		return common.MouseButtonMiddle
	default:
		return -1
	}
}

func (s *scene) PointerLeave() {
	s.release(s.rig.PointerLeave)
	s.hasHovered = false
}

func (s *scene) release(rigRelease func()) {
	state := s.arbiter.State()
	if state.Mode == gesture.ModeDraggingObject {
		if c, ok := s.controllers[state.ObjectID]; ok {
			c.PointerUp()
		}
	} else {
		rigRelease()
	}
	if !s.arbiter.Idle() {
		s.arbiter.Release()
	}
}

func (s *scene) Wheel(deltaY float32) {
	s.rig.Wheel(deltaY)
}

func (s *scene) Key(key int) {
	switch key {
	case common.KeyEqual, common.KeyKPAdd:
		s.rig.KeyZoom(1)
	case common.KeyMinus, common.KeyKPSubtract:
		s.rig.KeyZoom(-1)
	case common.KeyN:
		for _, fn := range s.onLibraryRequest {
			fn()
		}
	case common.KeyR:
		if s.arbiter.Idle() {
			s.rig.Reset()
		}
	case common.KeyEsc:
		s.ClearSelection()
	}
}

func (s *scene) OnDoubleClick(fn func(id uint64)) {
	if fn != nil {
		s.onDoubleClick = append(s.onDoubleClick, fn)
	}
}

func (s *scene) OnLibraryRequest(fn func()) {
	if fn != nil {
		s.onLibraryRequest = append(s.onLibraryRequest, fn)
	}
}

func (s *scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.instancePool.Stop()
}

func (s *scene) fireDoubleClick(id uint64) {
	s.Select(id)
	for _, fn := range s.onDoubleClick {
		fn(id)
	}
}

// pick returns the nearest enabled object hit by ray.
func (s *scene) pick(ray common.Ray) (uint64, bool) {
	var (
		best    uint64
		bestT   float32
		matched bool
	)
	for id, obj := range s.registry {
		if !obj.Enabled() {
			continue
		}
		t, ok := ray.IntersectAABB(obj.Bounds())
		if !ok {
			continue
		}
		if !matched || t < bestT || (t == bestT && id < best) {
			best, bestT, matched = id, t, true
		}
	}
	return best, matched
}
