package renderer

import (
	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	if m == PresentModeUncapped {
		return "uncapped"
	}
	return "vsync"
}

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ClearColor is the RGBA color the frame is cleared to, each channel in [0, 1].
type ClearColor [4]float64

// White is the default background.
var White = ClearColor{1, 1, 1, 1}

// RendererBackend is the top-level backend interface for the Renderer.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain, MSAA and depth targets for a surface size.
	//
	// Parameters:
	//   - width, height: surface size in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode changes the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// DrawFrame uploads per-draw data and records, submits and presents one frame.
	//
	// Parameters:
	//   - frame: the scene frame to draw
	//
	// Returns:
	//   - int: number of planes drawn
	//   - error: error if the surface texture could not be acquired or resources failed to allocate
	DrawFrame(frame scene.Frame) (int, error)

	// Release frees every GPU resource held by the backend.
	Release()
}
