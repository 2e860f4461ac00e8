package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/kinetic-ring/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultTextureIdleFrames is how many frames an image may go undrawn before its texture is freed.
const DefaultTextureIdleFrames = 120

// SurfaceSource provides what the renderer needs from a window.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	lastDraws     int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           ClearColor
	textureIdleFrames    uint64
}

// Renderer draws scene frames to a window surface.
//
// The Renderer owns every GPU resource: one textured-plane pipeline, per-draw uniform and vertex buffers, and a
// texture per ring image, uploaded on first use and freed once the image stops being drawn.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Render draws one frame and presents it. Frames with no commands still clear the surface.
	//
	// Parameters:
	//   - frame: the frame produced by the scene
	//
	// Returns:
	//   - error: error if the surface could not be acquired or GPU resources could not be created
	Render(frame scene.Frame) error

	// LastDrawCount returns the number of planes drawn by the most recent Render.
	//
	// Returns:
	//   - int: the draw count
	LastDrawCount() int

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// The surface is reconfigured immediately.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release frees every GPU resource. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type for the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the surface source, typically the engine window
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
//   - error: error if the GPU device or pipeline could not be created
func NewRenderer(backendType RendererBackendType, window SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:                &sync.Mutex{},
		backendType:       backendType,
		presentMode:       PresentModeVSync,
		msaa:              MSAA4x,
		clearColor:        White,
		textureIdleFrames: DefaultTextureIdleFrames,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor, r.textureIdleFrames)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = b
	}

	r.backend.SetPresentMode(r.presentMode)
	r.Resize(window.Width(), window.Height())
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Render(frame scene.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.width <= 0 || r.height <= 0 {
		// Minimized windows have no surface to draw to.
		r.lastDraws = 0
		return nil
	}
	draws, err := r.backend.DrawFrame(frame)
	r.lastDraws = draws
	return err
}

func (r *renderer) LastDrawCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastDraws
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
