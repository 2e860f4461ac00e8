package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the initial title bar text. The engine replaces it with a status line once frames run.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		if title != "" {
			w.title = title
		}
	}
}

// WithSize sets the requested window size. Values outside the size limits are clamped by the platform.
//
// Parameters:
//   - width, height: requested size in screen units
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds how far the user can resize the window.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size
//   - maxWidth, maxHeight: largest allowed size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = max(maxWidth, minWidth), max(maxHeight, minHeight)
	}
}

// WithDragStrip sets the height of the strip along the bottom edge in which presses do not start a drag.
//
// Parameters:
//   - height: strip height in pixels (0 disables it)
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithDragStrip(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.dragStrip = height
	}
}

// WithWheelStep sets the camera distance change of one wheel notch.
func WithWheelStep(step float64) WindowBuilderOption {
	return func(w *engineWindow) {
		w.wheelStep = step
	}
}
