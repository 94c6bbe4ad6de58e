package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-habitat/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// Pointer coordinates are reported in framebuffer pixels with the origin at the
// top-left corner, matching Width and Height.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical wheel delta (positive = scroll down/zoom out)
	SetScrollCallback(callback func(deltaY float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode int))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode int))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button (see common.MouseButton*) and pointer position
	SetMouseDownCallback(callback func(button int, x, y float32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and pointer position
	SetMouseUpCallback(callback func(button int, x, y float32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving the pointer position
	SetMouseMoveCallback(callback func(x, y float32))

	// SetMouseLeaveCallback sets the callback fired when the pointer leaves the window.
	//
	// Parameters:
	//   - callback: function to call
	SetMouseLeaveCallback(callback func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// cursorScale converts GLFW screen coordinates to framebuffer pixels (high-DPI displays).
	cursorScaleX float64
	cursorScaleY float64

	// closeOnEscape closes the window on Escape instead of forwarding the key.
	closeOnEscape bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate     func()
	onResize     func(width, height int)
	onScroll     func(deltaY float32)
	onKeyDown    func(keyCode int)
	onKeyUp      func(keyCode int)
	onMouseDown  func(button int, x, y float32)
	onMouseUp    func(button int, x, y float32)
	onMouseMove  func(x, y float32)
	onMouseLeave func()
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:        "Habitat Layout",
		maxWidth:     3840,
		maxHeight:    2160,
		minWidth:     600,
		minHeight:    200,
		width:        1280,
		height:       720,
		cursorScaleX: 1,
		cursorScaleY: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(deltaY float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode int)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode int)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button int, x, y float32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button int, x, y float32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetMouseLeaveCallback(callback func()) {
	w.onMouseLeave = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// The emit* methods translate raw platform events into the Window callback contract.

// emitScroll converts a platform wheel offset (positive = away from the user) into a
// deltaY where positive zooms out.
func (w *engineWindow) emitScroll(yoff float64) {
	if yoff == 0 || w.onScroll == nil {
		return
	}
	w.onScroll(float32(-yoff))
}

// emitKey reports whether the window should close.
func (w *engineWindow) emitKey(key int, pressed bool) (closeRequested bool) {
	if pressed && w.closeOnEscape && key == common.KeyEsc {
		return true
	}
	if pressed {
		if w.onKeyDown != nil {
			w.onKeyDown(key)
		}
	} else if w.onKeyUp != nil {
		w.onKeyUp(key)
	}
	return false
}

func (w *engineWindow) emitMouseButton(button int, pressed bool, sx, sy float64) {
	x, y := w.toPixels(sx, sy)
	if pressed {
		if w.onMouseDown != nil {
			w.onMouseDown(button, x, y)
		}
	} else if w.onMouseUp != nil {
		w.onMouseUp(button, x, y)
	}
}

func (w *engineWindow) emitCursorPos(sx, sy float64) {
	if w.onMouseMove == nil {
		return
	}
	x, y := w.toPixels(sx, sy)
	w.onMouseMove(x, y)
}

func (w *engineWindow) emitCursorEnter(entered bool) {
	if !entered && w.onMouseLeave != nil {
		w.onMouseLeave()
	}
}

func (w *engineWindow) emitFramebufferSize(width, height, windowWidth, windowHeight int) {
	w.width, w.height = width, height
	w.updateCursorScale(windowWidth, windowHeight)
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) updateCursorScale(windowWidth, windowHeight int) {
	w.cursorScaleX, w.cursorScaleY = 1, 1
	if windowWidth > 0 && w.width > 0 {
		w.cursorScaleX = float64(w.width) / float64(windowWidth)
	}
	if windowHeight > 0 && w.height > 0 {
		w.cursorScaleY = float64(w.height) / float64(windowHeight)
	}
}

func (w *engineWindow) toPixels(sx, sy float64) (x, y float32) {
	return float32(sx * w.cursorScaleX), float32(sy * w.cursorScaleY)
}
