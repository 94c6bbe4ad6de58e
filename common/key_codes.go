package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyN     = 78  // N key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	KeyEqual = 61 // '=' / '+' key (ASCII)
	KeyMinus = 45 // '-' / '_' key (ASCII)
)

// Keypad keys
const (
	KeyKPSubtract = 333 // Keypad '-' (GLFW)
	KeyKPAdd      = 334 // Keypad '+' (GLFW)
)

// Mouse buttons, matching GLFW button indices.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)
