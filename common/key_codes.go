package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA         = 65  // A key (ASCII)
	KeyC         = 67  // C key (ASCII)
	KeyD         = 68  // D key (ASCII)
	KeyE         = 69  // E key (ASCII)
	KeyG         = 71  // G key (ASCII)
	KeyH         = 72  // H key (ASCII)
	KeyI         = 73  // I key (ASCII)
	KeyK         = 75  // K key (ASCII)
	KeyL         = 76  // L key (ASCII)
	KeyM         = 77  // M key (ASCII)
	KeyN         = 78  // N key (ASCII)
	KeyO         = 79  // O key (ASCII)
	KeyP         = 80  // P key (ASCII)
	KeyU         = 85  // U key (ASCII)
	KeyX         = 88  // X key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyEnter     = 257 // Enter key (GLFW)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyDelete    = 261 // Delete key (GLFW)
	KeyRight     = 262 // Right arrow (GLFW)
	KeyLeft      = 263 // Left arrow (GLFW)
	KeyDown      = 264 // Down arrow (GLFW)
	KeyUp        = 265 // Up arrow (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key9 = 57 // 9 key (ASCII)
)

