package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyA     = 65  // A key (ASCII), picks images to append to the ring
	KeyE     = 69  // E key (ASCII), cycles export framing
	KeyH     = 72  // H key (ASCII), toggles the frame statistics log
	KeyT     = 84  // T key (ASCII), toggles continuous/stepped motion
	KeyU     = 85  // U key (ASCII), picks images to replace the ring
	KeyV     = 86  // V key (ASCII), toggles vertical sync
	Key4     = 52  // 4 key (ASCII), resets the ring
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)
