package engine

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-habitat/engine/profiler"
	"github.com/Carmen-Shannon/oxy-habitat/engine/scene"
	"github.com/Carmen-Shannon/oxy-habitat/engine/window"
)

// maxTicksPerFrame bounds fixed-rate catch-up after a long stall.
const maxTicksPerFrame = 5

// engine implements the Engine interface.
// Input handling, the fixed-rate tick and every scene frame run on the window thread.
type engine struct {
	logger *slog.Logger
	now    func() time.Time

	running     bool
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickAccum      time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(key int, frame scene.Frame)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
	sleep            func(time.Duration)
}

// Engine is the main entry point for the viewport.
// It binds window input to the active scenes and drives one frame per window loop iteration.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the fixed rate of the tick callback in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called at the fixed tick rate, before the
	// frame's scenes are advanced.
	//
	// Parameters:
	//   - callback: function receiving the fixed tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function that receives each active scene's frame.
	//
	// Parameters:
	//   - callback: function receiving the scene key and its frame snapshot
	SetRenderCallback(callback func(key int, frame scene.Frame))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are advanced in ascending key order; input goes to the highest active key.
	//
	// Parameters:
	//   - key: the z-index
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run binds input and runs the window loop (blocks until the window closes or Quit is called).
	Run()

	// Step advances one frame as the window loop would. Exposed for hosts that own the loop.
	//
	// Returns:
	//   - bool: false once Quit has been called
	Step() bool

	// Quit stops the loop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:         slog.Default(),
		now:            time.Now,
		sleep:          time.Sleep,
		quitChannel:    make(chan struct{}),
		scenes:         make(map[int]scene.Scene),
		engineTickRate: time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		for _, s := range e.scenes {
			s.SetViewport(e.window.Width(), e.window.Height())
		}
		e.bindInput()
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	if e.window == nil {
		e.logger.Error("engine: Run called without a window")
		return
	}
	e.running = true
	e.lastFrame = e.now()
	e.window.SetUpdateCallback(func() {
		e.Step()
	})
	e.window.ProcessMessages()
	e.running = false
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				e.logger.Warn("engine: close window", "err", err)
			}
		}
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

func (e *engine) Step() (ok bool) {
	if e.quitting() {
		return false
	}
	// Recover from panics inside a frame so the window can be shut down cleanly.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("engine: frame recovered from panic", "panic", r)
			e.Quit()
			ok = false
		}
	}()

	start := e.now()
	if e.lastFrame.IsZero() {
		e.lastFrame = start
	}
	elapsed := start.Sub(e.lastFrame)
	e.lastFrame = start
	dt := float32(elapsed.Seconds())

	e.runTicks(elapsed)

	for _, key := range e.sortedKeys() {
		s := e.scenes[key]
		if !s.Active() {
			continue
		}
		f := s.Frame(dt)
		if e.renderCallback != nil {
			e.renderCallback(key, f)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
	return !e.quitting()
}

// runTicks fires the tick callback at the fixed tick rate for the elapsed wall time.
func (e *engine) runTicks(elapsed time.Duration) {
	if e.tickCallback == nil || e.engineTickRate <= 0 {
		return
	}
	e.tickAccum += elapsed
	step := float32(e.engineTickRate.Seconds())
	for n := 0; e.tickAccum >= e.engineTickRate; n++ {
		if n == maxTicksPerFrame {
			e.tickAccum = 0
			break
		}
		e.tickCallback(step)
		e.tickAccum -= e.engineTickRate
	}
}

func (e *engine) sortedKeys() []int {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// inputScene returns the active scene with the highest key, or nil.
func (e *engine) inputScene() scene.Scene {
	keys := e.sortedKeys()
	for i := len(keys) - 1; i >= 0; i-- {
		if s := e.scenes[keys[i]]; s.Active() {
			return s
		}
	}
	return nil
}

// bindInput routes window events to the input scene.
func (e *engine) bindInput() {
	w := e.window
	withScene := func(fn func(s scene.Scene)) {
		if s := e.inputScene(); s != nil {
			fn(s)
		}
	}

	w.SetResizeCallback(func(width, height int) {
		for _, s := range e.scenes {
			s.SetViewport(width, height)
		}
	})
	w.SetMouseDownCallback(func(button int, x, y float32) {
		withScene(func(s scene.Scene) { s.PointerDown(button, x, y) })
	})
	w.SetMouseUpCallback(func(button int, _, _ float32) {
		withScene(func(s scene.Scene) { s.ButtonUp(button) })
	})
	w.SetMouseMoveCallback(func(x, y float32) {
		withScene(func(s scene.Scene) { s.PointerMove(x, y) })
	})
	w.SetMouseLeaveCallback(func() {
		withScene(func(s scene.Scene) { s.PointerLeave() })
	})
	w.SetScrollCallback(func(deltaY float32) {
		withScene(func(s scene.Scene) { s.Wheel(deltaY) })
	})
	w.SetKeyDownCallback(func(keyCode int) {
		withScene(func(s scene.Scene) { s.Key(keyCode) })
	})
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(key int, frame scene.Frame)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

// AddScene sizes the scene to the window before registering it.
func (e *engine) AddScene(key int, s scene.Scene) {
	if e.window != nil {
		s.SetViewport(e.window.Width(), e.window.Height())
	}
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
