package engine

import (
	"time"

	"github.com/Carmen-Shannon/kinetic-ring/engine/clock"
	"github.com/Carmen-Shannon/kinetic-ring/engine/export"
	"github.com/Carmen-Shannon/kinetic-ring/engine/loader"
	"github.com/Carmen-Shannon/kinetic-ring/engine/profiler"
	"github.com/Carmen-Shannon/kinetic-ring/engine/renderer"
	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
	"github.com/Carmen-Shannon/kinetic-ring/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to tick every frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine runs in. Without one the engine can still step frames headlessly.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are drawn with.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene sets the ring scene.
//
// Parameters:
//   - s: the Scene to drive
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithLoader sets the image loader used by the picker keys.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}

// WithViewport sets the initial viewport size, used when no window is configured.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.width, e.height = width, height
	}
}

// WithMode sets the initial motion mode.
//
// Parameters:
//   - m: the motion mode
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMode(m clock.Mode) EngineBuilderOption {
	return func(e *engine) {
		e.controls.Mode = m
	}
}

// WithFov sets the initial field of view in degrees. It is clamped to the camera's bounds.
//
// Parameters:
//   - degrees: vertical field of view
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFov(degrees float64) EngineBuilderOption {
	return func(e *engine) {
		e.controls.FovDegrees = degrees
	}
}

// WithFovStep sets how far one Up/Down key press moves the field of view.
//
// Parameters:
//   - degrees: step in degrees
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFovStep(degrees float64) EngineBuilderOption {
	return func(e *engine) {
		if degrees > 0 {
			e.fovStep = degrees
		}
	}
}

// WithExportPreset sets the initial export framing.
//
// Parameters:
//   - p: the preset
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithExportPreset(p export.Preset) EngineBuilderOption {
	return func(e *engine) {
		e.preset = p
	}
}

// WithTitle sets the prefix of the window title.
//
// Parameters:
//   - title: the title prefix
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTitle(title string) EngineBuilderOption {
	return func(e *engine) {
		if title != "" {
			e.baseTitle = title
		}
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop.
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
