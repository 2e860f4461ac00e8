// Package input turns raw pointer events into the drag and wheel deltas consumed by the camera controller.
package input

// DefaultWheelStep is the camera distance change of one wheel notch.
const DefaultWheelStep = 100.0

// DragTracker converts absolute cursor positions into drag deltas while a button is held.
// The zero value is ready to use.
type DragTracker struct {
	active       bool
	lastX, lastY float64
	// IgnoreBelow excludes presses whose y is at or beyond this value (0 disables the check).
	IgnoreBelow float64
}

// Press starts a drag at (x, y) unless the press falls in the ignored strip.
//
// Parameters:
//   - x, y: cursor position in pixels
//
// Returns:
//   - bool: true if a drag started
func (d *DragTracker) Press(x, y float64) bool {
	if d.IgnoreBelow > 0 && y >= d.IgnoreBelow {
		return false
	}
	d.active = true
	d.lastX, d.lastY = x, y
	return true
}

// Release ends the current drag.
func (d *DragTracker) Release() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *DragTracker) Active() bool {
	return d.active
}

// Move records a cursor position and returns the delta since the previous one while dragging.
//
// Parameters:
//   - x, y: cursor position in pixels
//
// Returns:
//   - dx, dy: pointer delta in pixels
//   - ok: false when no drag is active
func (d *DragTracker) Move(x, y float64) (dx, dy float64, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	dx, dy = x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	return dx, dy, true
}

// WheelDelta converts a scroll offset into a camera distance change. Scrolling up (positive offset)
// brings the camera closer.
//
// Parameters:
//   - yOffset: vertical scroll offset reported by the platform
//   - step: distance per notch
//
// Returns:
//   - float64: the distance delta
func WheelDelta(yOffset, step float64) float64 {
	return -yOffset * step
}
